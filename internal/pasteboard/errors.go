package pasteboard

import "errors"

// Sentinel errors returned by Context operations. Use errors.Is to match them.
var (
	// ErrPlatformUnsupported means the NSPasteboard class could not be
	// resolved, typically because the process is not running on macOS.
	ErrPlatformUnsupported = errors.New("pasteboard: platform unsupported")

	// ErrServiceUnavailable means +[NSPasteboard generalPasteboard] returned nil.
	ErrServiceUnavailable = errors.New("pasteboard: general pasteboard unavailable")

	// ErrNoTextContent means the pasteboard holds no plain text. This is an
	// expected outcome (empty clipboard, image on the clipboard), not a fault.
	ErrNoTextContent = errors.New("pasteboard: no text content")

	ErrEncodingConversionFailed = errors.New("pasteboard: utf-8 conversion failed")
	ErrWriteRejected            = errors.New("pasteboard: write rejected")
	ErrClosed                   = errors.New("pasteboard: context closed")
)

// Error records the pasteboard message that failed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Package clip reads and writes plain text on the macOS system clipboard.
// It talks to NSPasteboard directly through the Objective-C runtime and
// does not need cgo.
//
// On other platforms New fails with ErrPlatformUnsupported.
package clip

import (
	"log/slog"

	"github.com/tinyrange/clip/internal/pasteboard"
)

// -----------------------------------------------------------------------------
// Type Aliases - These re-export types from internal/pasteboard
// -----------------------------------------------------------------------------

// Context holds a reference to the general pasteboard. It is not safe for
// concurrent use; serialize calls externally when sharing one.
type Context = pasteboard.Context

// Option configures a Context.
type Option = pasteboard.Option

// Error records the pasteboard message that failed.
type Error = pasteboard.Error

// Sentinel errors.
var (
	ErrPlatformUnsupported      = pasteboard.ErrPlatformUnsupported
	ErrServiceUnavailable       = pasteboard.ErrServiceUnavailable
	ErrEncodingConversionFailed = pasteboard.ErrEncodingConversionFailed
	ErrWriteRejected            = pasteboard.ErrWriteRejected
	ErrClosed                   = pasteboard.ErrClosed

	// ErrNoTextContent is returned by ReadText when the clipboard is empty or
	// holds something other than plain text. Treat it as "nothing to read".
	ErrNoTextContent = pasteboard.ErrNoTextContent
)

// New opens the system clipboard.
func New(opts ...Option) (*Context, error) {
	return pasteboard.New(opts...)
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return pasteboard.WithLogger(l)
}

// ReadText opens the clipboard, reads its text and closes it again.
func ReadText() (string, error) {
	c, err := New()
	if err != nil {
		return "", err
	}
	defer c.Close()
	return c.ReadText()
}

// WriteText opens the clipboard, replaces its contents with text and closes
// it again.
func WriteText(text string) error {
	c, err := New()
	if err != nil {
		return err
	}
	defer c.Close()
	return c.WriteText(text)
}

// Package pasteboard reads and writes plain text on the macOS general
// pasteboard through the Objective-C runtime, without cgo.
//
// A Context is not safe for concurrent use. The pasteboard contents are
// global to the login session; callers that share a Context between
// goroutines must serialize access themselves.
package pasteboard

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// WithService replaces the native pasteboard service.
func WithService(s Service) Option {
	return func(c *Context) { c.svc = s }
}

// Context holds a reference to the general pasteboard.
type Context struct {
	svc    Service
	log    *slog.Logger
	pb     Object
	closed bool
}

// New resolves the general pasteboard and returns a Context holding it.
func New(opts ...Option) (*Context, error) {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.svc == nil {
		svc, err := defaultService()
		if err != nil {
			return nil, &Error{Op: "load runtime", Err: fmt.Errorf("%w: %v", ErrPlatformUnsupported, err)}
		}
		c.svc = svc
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := c.svc.PushPool()
	defer c.svc.PopPool(pool)

	cls := c.svc.Class("NSPasteboard")
	if cls == 0 {
		return nil, &Error{Op: "objc_getClass(NSPasteboard)", Err: ErrPlatformUnsupported}
	}
	pb := c.svc.GeneralPasteboard(cls)
	if pb == 0 {
		return nil, &Error{Op: "generalPasteboard", Err: ErrServiceUnavailable}
	}
	c.pb = c.svc.Retain(pb)

	c.log.Debug("resolved general pasteboard", "handle", fmt.Sprintf("%#x", uintptr(c.pb)))
	return c, nil
}

// ReadText returns the plain text currently on the pasteboard. It returns
// ErrNoTextContent when the pasteboard holds no text.
//
// Bytes that are not valid UTF-8 are replaced with U+FFFD instead of failing
// the read.
func (c *Context) ReadText() (string, error) {
	if c.closed {
		return "", ErrClosed
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := c.svc.PushPool()
	defer c.svc.PopPool(pool)

	str := c.svc.StringForType(c.pb, TypeString)
	if str == 0 {
		return "", &Error{Op: "stringForType:", Err: ErrNoTextContent}
	}
	defer c.svc.Release(str)

	n := c.svc.LengthOfBytes(str, utf8StringEncoding)

	// One extra byte for the terminator written by getCString.
	buf := c.svc.Alloc(n + 1)
	if buf.Ptr == nil {
		return "", &Error{Op: "malloc", Err: fmt.Errorf("%w: cannot allocate %d bytes", ErrEncodingConversionFailed, n+1)}
	}
	defer c.svc.Free(buf)

	if !c.svc.GetCString(str, buf, utf8StringEncoding) {
		return "", &Error{Op: "getCString:maxLength:encoding:", Err: ErrEncodingConversionFailed}
	}

	text := decodeLossy(cString(buf.Bytes(), n))
	c.log.Debug("read pasteboard text", "bytes", n)
	return text, nil
}

// WriteText replaces the entire pasteboard contents, of every type, with text.
// If the write is rejected after the clear, the pasteboard is left empty.
func (c *Context) WriteText(text string) error {
	if c.closed {
		return ErrClosed
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := c.svc.PushPool()
	defer c.svc.PopPool(pool)

	str := c.svc.NewString(text)
	if str == 0 {
		return &Error{Op: "initWithBytes:length:encoding:", Err: ErrWriteRejected}
	}
	defer c.svc.Release(str)

	array := c.svc.NewArray(str)
	if array == 0 {
		return &Error{Op: "initWithObjects:count:", Err: ErrWriteRejected}
	}
	defer c.svc.Release(array)

	count := c.svc.ClearContents(c.pb)
	if !c.svc.WriteObjects(c.pb, array) {
		return &Error{Op: "writeObjects:", Err: ErrWriteRejected}
	}

	c.log.Debug("wrote pasteboard text", "bytes", len(text), "changeCount", count)
	return nil
}

// Close releases the Context's reference to the pasteboard. The pasteboard
// itself is owned by the system and stays alive. Close is idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.svc.Release(c.pb)
	c.pb = 0
	return nil
}

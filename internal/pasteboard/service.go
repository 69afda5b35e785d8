package pasteboard

import "unsafe"

// Object is an opaque reference to a native object. The zero value is nil.
type Object uintptr

// Encoding is an NSStringEncoding value.
type Encoding uint

// TextType names a pasteboard type.
type TextType string

// TypeString is NSPasteboardTypeString.
const TypeString TextType = "public.utf8-plain-text"

// Buffer is native memory obtained from Service.Alloc.
type Buffer struct {
	Ptr unsafe.Pointer
	Len int
}

// Bytes views the buffer as a byte slice. The slice is only valid until the
// buffer is freed.
func (b Buffer) Bytes() []byte {
	if b.Ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.Ptr), b.Len)
}

// Service is the subset of NSPasteboard, NSString and the Objective-C runtime
// that a Context needs. Objects documented as owned carry a +1 retain count
// that the caller must balance with Release.
type Service interface {
	// Class resolves an Objective-C class by name, returning 0 if unknown.
	Class(name string) Object

	// GeneralPasteboard returns the shared pasteboard (not owned).
	GeneralPasteboard(class Object) Object

	// StringForType returns the pasteboard's string for typ (owned), or 0.
	StringForType(pb Object, typ TextType) Object

	// LengthOfBytes returns the number of bytes str needs in enc, without
	// a terminator.
	LengthOfBytes(str Object, enc Encoding) int

	// GetCString fills buf with the NUL-terminated representation of str,
	// writing at most buf.Len bytes. It reports whether the conversion fit.
	GetCString(str Object, buf Buffer, enc Encoding) bool

	// NewString returns a new string holding a copy of s (owned).
	NewString(s string) Object

	// NewArray returns a new ordered collection of objs (owned).
	NewArray(objs ...Object) Object

	// ClearContents empties the pasteboard and returns its new change count.
	ClearContents(pb Object) int

	// WriteObjects writes the objects in array as the pasteboard's contents.
	WriteObjects(pb Object, array Object) bool

	Retain(obj Object) Object
	Release(obj Object)

	// Alloc returns n bytes of native memory. Ptr is nil on failure.
	Alloc(n int) Buffer
	Free(buf Buffer)

	// PushPool installs an autorelease pool on the current thread and
	// PopPool drains it.
	PushPool() Object
	PopPool(pool Object)
}

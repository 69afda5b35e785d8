//go:build darwin

package pasteboard

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
)

var (
	initOnce sync.Once
	initErr  error

	libcMalloc func(size uintptr) unsafe.Pointer
	libcFree   func(ptr unsafe.Pointer)

	// NSPasteboardTypeString, read from AppKit.
	typeStringConst objc.ID

	selAlloc                objc.SEL
	selInit                 objc.SEL
	selRetain               objc.SEL
	selRelease              objc.SEL
	selGeneralPasteboard    objc.SEL
	selStringForType        objc.SEL
	selLengthOfBytes        objc.SEL
	selGetCString           objc.SEL
	selInitWithBytes        objc.SEL
	selInitWithObjects      objc.SEL
	selClearContents        objc.SEL
	selWriteObjects         objc.SEL
	selStringWithUTF8String objc.SEL
)

func ensureRuntime() error {
	initOnce.Do(func() {
		if err := loadLibraries(); err != nil {
			initErr = err
			return
		}
		loadSelectors()
	})
	return initErr
}

func loadLibraries() error {
	// Load libobjc and AppKit so NSPasteboard is visible to objc_getClass.
	if _, err := purego.Dlopen("/usr/lib/libobjc.A.dylib", purego.RTLD_GLOBAL); err != nil {
		return err
	}
	appKit, err := purego.Dlopen("/System/Library/Frameworks/AppKit.framework/AppKit", purego.RTLD_GLOBAL)
	if err != nil {
		return err
	}
	libc, err := purego.Dlopen("/usr/lib/libSystem.B.dylib", purego.RTLD_GLOBAL)
	if err != nil {
		return err
	}

	purego.RegisterLibFunc(&libcMalloc, libc, "malloc")
	purego.RegisterLibFunc(&libcFree, libc, "free")

	if sym, err := purego.Dlsym(appKit, "NSPasteboardTypeString"); err == nil && sym != 0 {
		// sym is the address of the NSString* variable.
		typeStringConst = **(**objc.ID)(unsafe.Pointer(&sym))
	}

	return nil
}

func loadSelectors() {
	selAlloc = objc.RegisterName("alloc")
	selInit = objc.RegisterName("init")
	selRetain = objc.RegisterName("retain")
	selRelease = objc.RegisterName("release")
	selGeneralPasteboard = objc.RegisterName("generalPasteboard")
	selStringForType = objc.RegisterName("stringForType:")
	selLengthOfBytes = objc.RegisterName("lengthOfBytesUsingEncoding:")
	selGetCString = objc.RegisterName("getCString:maxLength:encoding:")
	selInitWithBytes = objc.RegisterName("initWithBytes:length:encoding:")
	selInitWithObjects = objc.RegisterName("initWithObjects:count:")
	selClearContents = objc.RegisterName("clearContents")
	selWriteObjects = objc.RegisterName("writeObjects:")
	selStringWithUTF8String = objc.RegisterName("stringWithUTF8String:")
}

// appKitService implements Service on top of AppKit.
type appKitService struct {
	// Pasteboard type objects, resolved lazily on the calling thread.
	types map[TextType]objc.ID
}

func defaultService() (Service, error) {
	if err := ensureRuntime(); err != nil {
		return nil, err
	}
	return &appKitService{types: make(map[TextType]objc.ID)}, nil
}

func (s *appKitService) Class(name string) Object {
	return Object(objc.GetClass(name))
}

func (s *appKitService) GeneralPasteboard(class Object) Object {
	return Object(objc.ID(class).Send(selGeneralPasteboard))
}

func (s *appKitService) pasteboardType(typ TextType) objc.ID {
	if typ == TypeString && typeStringConst != 0 {
		return typeStringConst
	}
	if id, ok := s.types[typ]; ok {
		return id
	}
	// Keep the string for the service's lifetime; it is used as a key.
	id := objc.ID(objc.GetClass("NSString")).Send(selStringWithUTF8String, string(typ)+"\x00")
	id.Send(selRetain)
	s.types[typ] = id
	return id
}

func (s *appKitService) StringForType(pb Object, typ TextType) Object {
	str := objc.ID(pb).Send(selStringForType, s.pasteboardType(typ))
	if str == 0 {
		return 0
	}
	// stringForType: returns an autoreleased object; take our own reference.
	return Object(str.Send(selRetain))
}

func (s *appKitService) LengthOfBytes(str Object, enc Encoding) int {
	return int(objc.Send[uint](objc.ID(str), selLengthOfBytes, uint(enc)))
}

func (s *appKitService) GetCString(str Object, buf Buffer, enc Encoding) bool {
	return objc.Send[bool](objc.ID(str), selGetCString, buf.Ptr, uint(buf.Len), uint(enc))
}

func (s *appKitService) NewString(v string) Object {
	obj := objc.ID(objc.GetClass("NSString")).Send(selAlloc)
	if len(v) == 0 {
		return Object(obj.Send(selInit))
	}
	b := []byte(v)
	str := obj.Send(selInitWithBytes, unsafe.Pointer(&b[0]), uint(len(b)), uint(utf8StringEncoding))
	runtime.KeepAlive(b)
	return Object(str)
}

func (s *appKitService) NewArray(objs ...Object) Object {
	arr := objc.ID(objc.GetClass("NSArray")).Send(selAlloc)
	if len(objs) == 0 {
		return Object(arr.Send(selInit))
	}
	ids := make([]objc.ID, len(objs))
	for i, o := range objs {
		ids[i] = objc.ID(o)
	}
	out := arr.Send(selInitWithObjects, unsafe.Pointer(&ids[0]), uint(len(ids)))
	runtime.KeepAlive(ids)
	return Object(out)
}

func (s *appKitService) ClearContents(pb Object) int {
	return objc.Send[int](objc.ID(pb), selClearContents)
}

func (s *appKitService) WriteObjects(pb Object, array Object) bool {
	return objc.Send[bool](objc.ID(pb), selWriteObjects, objc.ID(array))
}

func (s *appKitService) Retain(obj Object) Object {
	if obj == 0 {
		return 0
	}
	return Object(objc.ID(obj).Send(selRetain))
}

func (s *appKitService) Release(obj Object) {
	if obj == 0 {
		return
	}
	objc.ID(obj).Send(selRelease)
}

func (s *appKitService) Alloc(n int) Buffer {
	if n <= 0 {
		return Buffer{}
	}
	ptr := libcMalloc(uintptr(n))
	if ptr == nil {
		return Buffer{}
	}
	return Buffer{Ptr: ptr, Len: n}
}

func (s *appKitService) Free(buf Buffer) {
	if buf.Ptr == nil {
		return
	}
	libcFree(buf.Ptr)
}

func (s *appKitService) PushPool() Object {
	pool := objc.ID(objc.GetClass("NSAutoreleasePool")).Send(selAlloc)
	return Object(pool.Send(selInit))
}

func (s *appKitService) PopPool(pool Object) {
	if pool == 0 {
		return
	}
	objc.ID(pool).Send(selRelease)
}

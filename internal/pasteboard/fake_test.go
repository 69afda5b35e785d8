package pasteboard

import (
	"testing"
	"unsafe"
)

type fakeObject struct {
	kind  string
	refs  int
	text  []byte
	items []Object
}

// fakeService is an in-memory pasteboard that accounts every reference,
// buffer and autorelease pool handed out.
type fakeService struct {
	t testing.TB

	objs  map[Object]*fakeObject
	next  Object
	bufs  map[unsafe.Pointer][]byte
	pools [][]Object

	pb Object

	// Pasteboard contents.
	text    []byte
	hasText bool
	other   bool
	changes int

	calls     []string
	lastAlloc int

	noClass      bool
	noPasteboard bool
	failAlloc    bool
	failFill     bool
	failWrite    bool
}

func newFakeService(t testing.TB) *fakeService {
	f := &fakeService{
		t:    t,
		objs: make(map[Object]*fakeObject),
		next: 0x1000,
		bufs: make(map[unsafe.Pointer][]byte),
	}
	// The system's own reference to the shared pasteboard.
	f.pb = f.newObject(&fakeObject{kind: "NSPasteboard", refs: 1})
	return f
}

func (f *fakeService) setText(s string) {
	f.text = []byte(s)
	f.hasText = true
	f.other = false
}

func (f *fakeService) setImage() {
	f.text = nil
	f.hasText = false
	f.other = true
}

func (f *fakeService) newObject(o *fakeObject) Object {
	f.next += 0x10
	f.objs[f.next] = o
	return f.next
}

func (f *fakeService) object(obj Object) *fakeObject {
	f.t.Helper()
	o, ok := f.objs[obj]
	if !ok {
		f.t.Fatalf("unknown object %#x", uintptr(obj))
	}
	if o.refs <= 0 {
		f.t.Fatalf("use of deallocated %s %#x", o.kind, uintptr(obj))
	}
	return o
}

func (f *fakeService) autorelease(obj Object) {
	if len(f.pools) == 0 {
		f.t.Fatalf("autorelease of %#x with no pool in place", uintptr(obj))
	}
	top := len(f.pools) - 1
	f.pools[top] = append(f.pools[top], obj)
}

func (f *fakeService) Class(name string) Object {
	f.calls = append(f.calls, "class")
	if f.noClass || name != "NSPasteboard" {
		return 0
	}
	return 0x10
}

func (f *fakeService) GeneralPasteboard(class Object) Object {
	f.calls = append(f.calls, "generalPasteboard")
	if class != 0x10 {
		f.t.Fatalf("generalPasteboard sent to %#x", uintptr(class))
	}
	if f.noPasteboard {
		return 0
	}
	return f.pb
}

func (f *fakeService) StringForType(pb Object, typ TextType) Object {
	f.calls = append(f.calls, "stringForType")
	f.object(pb)
	if typ != TypeString || !f.hasText {
		return 0
	}
	str := f.newObject(&fakeObject{kind: "NSString", refs: 1, text: append([]byte(nil), f.text...)})
	f.autorelease(str)
	return f.Retain(str)
}

func (f *fakeService) LengthOfBytes(str Object, enc Encoding) int {
	if enc != utf8StringEncoding {
		f.t.Fatalf("unexpected encoding %d", enc)
	}
	return len(f.object(str).text)
}

func (f *fakeService) GetCString(str Object, buf Buffer, enc Encoding) bool {
	f.calls = append(f.calls, "getCString")
	o := f.object(str)
	if _, ok := f.bufs[buf.Ptr]; !ok {
		f.t.Fatalf("getCString into unknown buffer")
	}
	if f.failFill {
		return false
	}
	// Room is needed for the payload and the terminator.
	if len(o.text)+1 > buf.Len {
		return false
	}
	dst := buf.Bytes()
	copy(dst, o.text)
	dst[len(o.text)] = 0
	return true
}

func (f *fakeService) NewString(s string) Object {
	f.calls = append(f.calls, "newString")
	return f.newObject(&fakeObject{kind: "NSString", refs: 1, text: []byte(s)})
}

func (f *fakeService) NewArray(objs ...Object) Object {
	f.calls = append(f.calls, "newArray")
	for _, o := range objs {
		f.Retain(o)
	}
	return f.newObject(&fakeObject{kind: "NSArray", refs: 1, items: append([]Object(nil), objs...)})
}

func (f *fakeService) ClearContents(pb Object) int {
	f.calls = append(f.calls, "clearContents")
	f.object(pb)
	f.text = nil
	f.hasText = false
	f.other = false
	f.changes++
	return f.changes
}

func (f *fakeService) WriteObjects(pb Object, array Object) bool {
	f.calls = append(f.calls, "writeObjects")
	f.object(pb)
	arr := f.object(array)
	if f.failWrite {
		return false
	}
	for _, item := range arr.items {
		o := f.object(item)
		if o.kind == "NSString" {
			f.text = append([]byte(nil), o.text...)
			f.hasText = true
		}
	}
	return true
}

func (f *fakeService) Retain(obj Object) Object {
	f.object(obj).refs++
	return obj
}

func (f *fakeService) Release(obj Object) {
	o := f.object(obj)
	o.refs--
	if o.refs == 0 {
		for _, item := range o.items {
			f.Release(item)
		}
	}
}

func (f *fakeService) Alloc(n int) Buffer {
	f.lastAlloc = n
	if f.failAlloc {
		return Buffer{}
	}
	b := make([]byte, n)
	p := unsafe.Pointer(&b[0])
	f.bufs[p] = b
	return Buffer{Ptr: p, Len: n}
}

func (f *fakeService) Free(buf Buffer) {
	if _, ok := f.bufs[buf.Ptr]; !ok {
		f.t.Fatalf("free of unknown buffer %p", buf.Ptr)
	}
	delete(f.bufs, buf.Ptr)
}

func (f *fakeService) PushPool() Object {
	f.pools = append(f.pools, nil)
	return Object(len(f.pools))
}

func (f *fakeService) PopPool(pool Object) {
	if int(pool) != len(f.pools) {
		f.t.Fatalf("pool %d popped out of order (depth %d)", pool, len(f.pools))
	}
	top := f.pools[len(f.pools)-1]
	f.pools = f.pools[:len(f.pools)-1]
	for _, obj := range top {
		f.Release(obj)
	}
}

// checkBalanced fails the test if anything other than the pasteboard's own
// references is still alive. pbRefs is the expected pasteboard retain count.
func (f *fakeService) checkBalanced(pbRefs int) {
	f.t.Helper()
	if len(f.bufs) != 0 {
		f.t.Errorf("%d buffers not freed", len(f.bufs))
	}
	if len(f.pools) != 0 {
		f.t.Errorf("%d autorelease pools not drained", len(f.pools))
	}
	for obj, o := range f.objs {
		if obj == f.pb {
			if o.refs != pbRefs {
				f.t.Errorf("pasteboard refs = %d, want %d", o.refs, pbRefs)
			}
			continue
		}
		if o.refs != 0 {
			f.t.Errorf("%s %#x leaked with %d refs", o.kind, uintptr(obj), o.refs)
		}
	}
}

var _ Service = (*fakeService)(nil)

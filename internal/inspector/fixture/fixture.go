// Package fixture provides an in-memory inspector.Inspector for tests. It
// is never linked into the shipped CLI — the real dump-reader library is an
// external collaborator — but it lets internal/builder and
// internal/reasoner be exercised end to end without a real dump file.
package fixture

import (
	"fmt"

	"github.com/ftahirops/dumptriage/internal/inspector"
)

// Builder assembles a fixture.Inspector with a fluent API, mirroring the
// small-struct-literal test fixtures used throughout xtop's engine tests.
type Builder struct {
	runtimeFlavor string
	threads       []*Thread
	heap          *Heap
	modules       []inspector.ModuleHandle
}

// New starts a fixture with one managed runtime of the given flavor.
// An empty flavor produces an inspector with zero runtimes, for exercising
// the NoManagedRuntime path.
func New(flavor string) *Builder {
	return &Builder{runtimeFlavor: flavor}
}

// Thread is a mutable, fixture-only thread description; build it up and
// pass to Builder.AddThread.
type Thread struct {
	handle      inspector.ThreadHandle
	stackRoots  []inspector.ObjectAddress
	stackFrames []string
	rootsErr    error
	framesErr   error
}

// NewThread starts a thread fixture.
func NewThread(id int) *Thread {
	return &Thread{handle: inspector.ThreadHandle{ManagedID: id, Address: uint64(0x1000 + id)}}
}

func (t *Thread) State(s string) *Thread          { t.handle.StateText = s; return t }
func (t *Thread) LockCount(n int) *Thread         { t.handle.LockCount = n; return t }
func (t *Thread) Finalizer() *Thread              { t.handle.IsFinalizer = true; return t }
func (t *Thread) GC() *Thread                     { t.handle.IsGC = true; return t }
func (t *Thread) Frames(frames ...string) *Thread { t.stackFrames = frames; return t }
func (t *Thread) Roots(roots ...inspector.ObjectAddress) *Thread {
	t.stackRoots = roots
	return t
}
func (t *Thread) FramesErr(err error) *Thread { t.framesErr = err; return t }
func (t *Thread) RootsErr(err error) *Thread  { t.rootsErr = err; return t }

func (t *Thread) Exception(typeName, message string) *Thread {
	t.handle.CurrentException = &inspector.CurrentException{TypeName: typeName, Message: message}
	return t
}

func (t *Thread) CPUTimeMs(ms float64) *Thread {
	t.handle.CPUTimeMs = func() (float64, error) { return ms, nil }
	return t
}

func (t *Thread) CPUTimeErr(err error) *Thread {
	t.handle.CPUTimeMs = func() (float64, error) { return 0, err }
	return t
}

func (t *Thread) build() inspector.ThreadHandle {
	h := t.handle
	h.StackRoots = func() ([]inspector.ObjectAddress, error) {
		if t.rootsErr != nil {
			return nil, t.rootsErr
		}
		return t.stackRoots, nil
	}
	h.StackFrames = func() ([]string, error) {
		if t.framesErr != nil {
			return nil, t.framesErr
		}
		return t.stackFrames, nil
	}
	return h
}

// AddThread appends a thread built via NewThread(...).
func (b *Builder) AddThread(t *Thread) *Builder {
	b.threads = append(b.threads, t)
	return b
}

// WithHeap attaches a heap fixture (see NewHeap).
func (b *Builder) WithHeap(h *Heap) *Builder {
	b.heap = h
	return b
}

// AddModule appends a loaded module.
func (b *Builder) AddModule(name string, size uint64) *Builder {
	b.modules = append(b.modules, inspector.ModuleHandle{Name: name, Size: size})
	return b
}

// Build produces the finished inspector.Inspector.
func (b *Builder) Build() inspector.Inspector {
	return &fakeInspector{builder: b}
}

type fakeInspector struct{ builder *Builder }

func (f *fakeInspector) Runtimes() []inspector.RuntimeInfo {
	if f.builder.runtimeFlavor == "" {
		return nil
	}
	return []inspector.RuntimeInfo{{
		Flavor:        f.builder.runtimeFlavor,
		Version:       "fixture",
		CreateRuntime: func() inspector.Runtime { return f.builder.Runtime() },
	}}
}

func (f *fakeInspector) Close() error { return nil }

// Runtime returns the sole runtime built from this fixture, for tests that
// want to drive the builder against a Runtime directly.
func (b *Builder) Runtime() inspector.Runtime {
	threads := make([]inspector.ThreadHandle, 0, len(b.threads))
	for _, t := range b.threads {
		threads = append(threads, t.build())
	}
	var heap inspector.Heap
	if b.heap != nil {
		heap = b.heap
	}
	return &fakeRuntime{threads: threads, heap: heap, modules: b.modules}
}

type fakeRuntime struct {
	threads []inspector.ThreadHandle
	heap    inspector.Heap
	modules []inspector.ModuleHandle
}

func (r *fakeRuntime) Threads() []inspector.ThreadHandle { return r.threads }
func (r *fakeRuntime) Heap() inspector.Heap              { return r.heap }
func (r *fakeRuntime) Modules() []inspector.ModuleHandle { return r.modules }

// Heap is a fixture heap: an ordered list of objects plus sync blocks.
type Heap struct {
	canWalk    bool
	isServer   bool
	segments   []inspector.Segment
	objects    []*Object
	syncBlocks []inspector.SyncBlockInfo
	byAddr     map[inspector.ObjectAddress]*Object
}

// NewHeap starts a walkable heap fixture.
func NewHeap() *Heap {
	return &Heap{canWalk: true, byAddr: map[inspector.ObjectAddress]*Object{}}
}

// Unwalkable marks the heap as CanWalk()==false, for the HeapUnavailable path.
func (h *Heap) Unwalkable() *Heap { h.canWalk = false; return h }

func (h *Heap) Server() *Heap { h.isServer = true; return h }

func (h *Heap) Segment(kind inspector.SegmentKind, length uint64) *Heap {
	h.segments = append(h.segments, inspector.Segment{Kind: kind, Length: length})
	return h
}

func (h *Heap) SyncBlock(waiting int, monitorHeld bool, holdingAddr, objAddr uint64) *Heap {
	h.syncBlocks = append(h.syncBlocks, inspector.SyncBlockInfo{
		WaitingThreadCount: waiting, IsMonitorHeld: monitorHeld,
		HoldingThreadAddress: holdingAddr, ObjectAddress: objAddr,
	})
	return h
}

func (h *Heap) AddObject(o *Object) *Heap {
	h.objects = append(h.objects, o)
	h.byAddr[o.addr] = o
	return h
}

func (h *Heap) CanWalk() bool  { return h.canWalk }
func (h *Heap) IsServer() bool { return h.isServer }
func (h *Heap) Segments() []inspector.Segment { return h.segments }
func (h *Heap) SyncBlocks() []inspector.SyncBlockInfo { return h.syncBlocks }

func (h *Heap) Objects() []inspector.ObjectHandle {
	out := make([]inspector.ObjectHandle, 0, len(h.objects))
	for _, o := range h.objects {
		out = append(out, o)
	}
	return out
}

func (h *Heap) GetObject(addr inspector.ObjectAddress) (inspector.ObjectHandle, bool) {
	o, ok := h.byAddr[addr]
	if !ok {
		return nil, false
	}
	return o, true
}

// Object is a fixture heap object: either a typed non-string instance or a
// string value (possibly one that fails to read).
type Object struct {
	addr     inspector.ObjectAddress
	typeName string
	isString bool
	size     uint64
	value    string
	readErr  error
	invalid  bool
}

// NewTypeInstance builds a non-string heap object contributing to the
// histogram.
func NewTypeInstance(addr uint64, typeName string, size uint64) *Object {
	return &Object{addr: inspector.ObjectAddress(addr), typeName: typeName, size: size}
}

// NewString builds a string heap object.
func NewString(addr uint64, value string) *Object {
	return &Object{addr: inspector.ObjectAddress(addr), isString: true, value: value, typeName: "string", size: uint64(len(value))}
}

// WithReadError marks the object's AsString call as failing.
func (o *Object) WithReadError(err error) *Object { o.readErr = err; return o }

// Invalid marks the object as not walkable (IsValid()==false).
func (o *Object) Invalid() *Object { o.invalid = true; return o }

func (o *Object) IsValid() bool                { return !o.invalid }
func (o *Object) TypeName() string             { return o.typeName }
func (o *Object) IsString() bool               { return o.isString }
func (o *Object) Size() uint64                 { return o.size }
func (o *Object) Address() inspector.ObjectAddress { return o.addr }

func (o *Object) AsString(maxChars int) (string, error) {
	if o.readErr != nil {
		return "", o.readErr
	}
	if !o.isString {
		return "", fmt.Errorf("fixture: object at %#x is not a string", o.addr)
	}
	r := []rune(o.value)
	if len(r) > maxChars {
		r = r[:maxChars]
	}
	return string(r), nil
}

// Package inspector defines the capability set the SnapshotBuilder consumes
// to walk a dump. It mirrors how xtop's collector.Collector interface lets
// the engine depend on a small surface rather than a concrete procfs type:
// here the "collector" is external (the dump-reader library), and the core
// only ever sees these interfaces.
//
// Nothing in this package touches a real dump format — that library is an
// out-of-scope external collaborator. A fixture implementation for tests
// lives in the sibling fixture package.
package inspector

// Inspector opens a dump and exposes the managed runtimes found in it.
// Close releases whatever OS resources Open acquired; SnapshotBuilder
// guarantees a call to Close on every exit path, including failures.
type Inspector interface {
	Runtimes() []RuntimeInfo
	Close() error
}

// RuntimeInfo describes one managed runtime found in the dump. CreateRuntime
// is deferred (rather than eagerly resolving every runtime) so the builder
// only pays the cost of the runtime it actually selects.
type RuntimeInfo struct {
	Flavor        string
	Version       string
	CreateRuntime func() Runtime
}

// Runtime is the live capability set for one selected managed runtime.
type Runtime interface {
	Threads() []ThreadHandle
	Heap() Heap // nil when the dump carries no heap section
	Modules() []ModuleHandle
}

// CurrentException describes a thread's in-flight exception, if any.
type CurrentException struct {
	TypeName string
	Message  string
}

// ThreadHandle is one OS/managed thread as seen by the inspector.
type ThreadHandle struct {
	ManagedID        int
	Address          uint64
	StateText        string
	LockCount        int
	CurrentException *CurrentException // nil when no exception is current
	IsFinalizer      bool
	IsGC             bool

	// CPUTimeMs is a single optional accessor rather than the several
	// differently-named properties dump-reader libraries have historically
	// exposed under different names: nil means "not offered", and a failed
	// read is reported through the returned error, never a sentinel
	// numeric value.
	CPUTimeMs func() (float64, error)

	StackRoots  func() ([]ObjectAddress, error)
	StackFrames func() ([]string, error)
}

// ObjectAddress identifies a heap object.
type ObjectAddress uint64

// SegmentKind classifies a GC segment.
type SegmentKind int

const (
	SegmentGen0 SegmentKind = iota
	SegmentGen1
	SegmentGen2
	SegmentLarge
	SegmentPinned
)

// Segment is one GC segment's kind and byte length.
type Segment struct {
	Kind   SegmentKind
	Length uint64
}

// SyncBlockInfo is one runtime-internal monitor record.
type SyncBlockInfo struct {
	WaitingThreadCount   int
	IsMonitorHeld        bool
	HoldingThreadAddress uint64 // 0 when unheld/unknown
	ObjectAddress        uint64
}

// Heap is the object-heap capability set. CanWalk is false when the dump's
// heap section is unavailable (e.g. a partial or truncated dump); the
// builder must still succeed in that case, only recording a warning.
type Heap interface {
	CanWalk() bool
	IsServer() bool
	Segments() []Segment
	Objects() []ObjectHandle
	GetObject(addr ObjectAddress) (ObjectHandle, bool)
	SyncBlocks() []SyncBlockInfo
}

// ObjectHandle is one heap object. AsString reads at most maxChars runes;
// it errors (rather than panicking) on unreadable memory, which the
// builder converts into a skip, never a fatal failure.
type ObjectHandle interface {
	IsValid() bool
	TypeName() string // "" when unknown; builder skips empty names in the histogram
	IsString() bool
	Size() uint64
	Address() ObjectAddress
	AsString(maxChars int) (string, error)
}

// ModuleHandle is one loaded module.
type ModuleHandle struct {
	Name string
	Size uint64
}

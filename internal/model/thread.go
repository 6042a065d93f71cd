package model

// ThreadSnapshot is an immutable capture of one managed thread's state at
// dump time, including as many stack frames as the builder was able to
// read (CapturedFrameCount is always <= RequestedFrameCount).
type ThreadSnapshot struct {
	ManagedID       int
	State           string
	LockCount       int
	CurrentException string // empty when no exception is current
	IsFinalizer     bool
	IsGC            bool
	StackFrames     []string
	CapturedFrameCount int
	RequestedFrameCount int
	CPUTimeMs       *float64 // nil when the inspector had no CPU-time accessor or the read failed
}

// HasException reports whether the thread carries a current exception.
func (t ThreadSnapshot) HasException() bool {
	return t.CurrentException != ""
}

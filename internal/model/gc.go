package model

// GcSnapshot aggregates GC segment accounting for one dump.
type GcSnapshot struct {
	TotalHeapBytes      uint64
	LargeObjectHeapBytes uint64
	SegmentCount        int
	IsServerGC          bool
	Gen0Bytes           uint64
	Gen1Bytes           uint64
	Gen2Bytes           uint64
	PinnedBytes         uint64
}

// BlockingSummary counts sync blocks and threads waiting on them.
type BlockingSummary struct {
	SyncBlockCount     int
	WaitingThreadCount int
}

// DeadlockCandidate is a sync block worth flagging as a possible
// deadlock/monitor-contention site: something is waiting on it, or a
// thread holds its monitor.
type DeadlockCandidate struct {
	OwnerThreadID  *int // nil when the holding thread could not be resolved
	WaitingThreads int
	ObjectAddress  uint64
}

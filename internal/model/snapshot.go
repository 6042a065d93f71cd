package model

// Snapshot is the immutable result of one SnapshotBuilder run. Every field
// is populated by the builder; the reasoner and reporters only read it.
type Snapshot struct {
	DumpPath           string
	RuntimeDescription string
	HostCPUCount       int // logical CPUs on the machine that built this snapshot

	TotalThreadCount int // alive threads seen by the inspector, before selection
	Threads          []ThreadSnapshot

	GC       GcSnapshot
	Blocking BlockingSummary

	Strings []NotableString

	Deadlocks []DeadlockCandidate

	HeapHistogram        []HeapTypeStat // sorted by TotalSize descending
	TotalHeapObjectCount int
	HeapHistogramCoverage float64 // [0,1]

	Modules         []ModuleInfo // insertion (inspector) order, full list
	TotalModuleCount int
	TotalModuleBytes uint64
	ModuleCoverageShown float64 // [0,1], coverage of the top-20-by-size subset

	UniqueStringCount       int
	TotalStringOccurrences  int
	StackStringOccurrences  int
	HeapStringOccurrences   int

	Warnings []DataWarning
}

// TopModules returns up to n modules ordered by size descending, the
// subset ModuleCoverageShown was computed over. n <= 0 returns nil.
func (s *Snapshot) TopModules(n int) []ModuleInfo {
	if n <= 0 || len(s.Modules) == 0 {
		return nil
	}
	sorted := make([]ModuleInfo, len(s.Modules))
	copy(sorted, s.Modules)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Size > sorted[j-1].Size; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

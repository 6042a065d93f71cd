// Package builder implements the SnapshotBuilder: a deterministic,
// bounded extraction pipeline over an inspector.Inspector that produces an
// immutable model.Snapshot. It mirrors xtop's collector.Registry +
// engine.Engine.Tick shape — a fixed phase order over a small capability
// interface, with every per-item inspector failure recovered locally into
// either a skip or a DataWarning, never propagated.
package builder

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/ftahirops/dumptriage/internal/inspector"
	"github.com/ftahirops/dumptriage/internal/model"
)

// OpenFunc opens a dump path and returns the inspector capability set. The
// concrete implementation lives in an external dump-reader library; the
// core only ever depends on this function type and the inspector.Inspector
// interface it returns.
type OpenFunc func(path string) (inspector.Inspector, error)

// state carries the builder's working data across phases. It is discarded
// once Build returns the finished Snapshot.
type state struct {
	opts BuildOptions

	warnings []model.DataWarning

	// stringOrder preserves first-seen insertion order; stringByText
	// indexes into strings by post-truncation text (the dedup key).
	stringOrder  []string
	stringByText map[string]*model.NotableString

	// stackOwners maps a stack-root object address to the set of thread
	// ids that reach it, joined against heap strings in phase 8.
	stackOwners map[inspector.ObjectAddress]map[int]struct{}

	dedupedStack int
	dedupedHeap  int

	stackReadFailures []int // thread ids, in encounter order
}

func newState(opts BuildOptions) *state {
	return &state{
		opts:         opts,
		stringByText: map[string]*model.NotableString{},
		stackOwners:  map[inspector.ObjectAddress]map[int]struct{}{},
	}
}

func (s *state) warn(cat model.WarningCategory, format string, args ...interface{}) {
	s.warnings = append(s.warnings, model.DataWarning{Category: cat, Message: fmt.Sprintf(format, args...)})
}

// Build runs the full eleven-phase extraction pipeline and returns the
// finished Snapshot, or one of model.ErrMissingPath, model.ErrFileNotFound,
// model.ErrNoManagedRuntime, or a *model.InternalError.
func Build(dumpPath string, opts BuildOptions, open OpenFunc) (*model.Snapshot, error) {
	// Phase 1: validate and open.
	if strings.TrimSpace(dumpPath) == "" {
		return nil, model.ErrMissingPath
	}
	if _, err := os.Stat(dumpPath); err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrFileNotFound
		}
		return nil, &model.InternalError{Cause: err}
	}

	insp, err := open(dumpPath)
	if err != nil {
		return nil, &model.InternalError{Cause: err}
	}
	defer insp.Close()

	runtimes := insp.Runtimes()
	if len(runtimes) == 0 {
		return nil, model.ErrNoManagedRuntime
	}
	selected := runtimes[0]
	rt := selected.CreateRuntime()

	st := newState(opts)
	snap := &model.Snapshot{
		DumpPath:           dumpPath,
		RuntimeDescription: fmt.Sprintf("%s %s", selected.Flavor, selected.Version),
		HostCPUCount:       runtime.NumCPU(),
	}

	heap := rt.Heap()

	// Phase 2: seed warnings.
	if heap == nil || !heap.CanWalk() {
		st.warn(model.CategoryHeapUnavailable, "heap is not walkable in this dump")
	}

	// Phase 3: thread selection & stack read.
	allThreads := rt.Threads()
	snap.TotalThreadCount = len(allThreads)
	kept := selectThreads(allThreads, opts)
	if len(allThreads) > len(kept) {
		emitThreadTruncation(st, allThreads, kept)
	}
	snap.Threads = readStacks(st, kept, opts)

	// Phase 4: GC segment accounting.
	snap.GC = accountGC(heap)

	// Phase 5: blocking summary.
	var syncBlocks []inspector.SyncBlockInfo
	if heap != nil {
		syncBlocks = heap.SyncBlocks()
	}
	snap.Blocking = summarizeBlocking(syncBlocks)

	// Phase 6: stack-root string extraction.
	extractStackStrings(st, snap.Threads, rt)

	// Phase 7: deadlock candidates.
	snap.Deadlocks = buildDeadlockCandidates(syncBlocks, allThreads)

	// Phase 8: heap histogram + heap strings.
	if heap != nil && heap.CanWalk() && opts.HeapHistogramCount > 0 {
		hist, totalObjects, totalTypes := walkHeapHistogram(heap, opts.HeapHistogramCount)
		snap.HeapHistogram = hist
		snap.TotalHeapObjectCount = totalObjects
		if totalTypes > 10 {
			st.warn(model.CategoryHeapHistogramClamp, "heap has %d distinct types, showing top %d (coverage=%.1f%%)",
				totalTypes, len(hist), coverage(hist, snap.GC.TotalHeapBytes)*100)
		}
		extractHeapStrings(st, heap)
	}

	// Phase 9: modules.
	buildModules(snap, rt.Modules())

	// Phase 10: coverage.
	snap.HeapHistogramCoverage = coverage(snap.HeapHistogram, snap.GC.TotalHeapBytes)
	snap.ModuleCoverageShown = moduleCoverage(snap)
	warnIfModulesClamped(st, snap)

	finalizeStrings(st, snap)

	// Phase 11: warning sort.
	snap.Warnings = sortWarnings(st.warnings)

	return snap, nil
}

func coverage(hist []model.HeapTypeStat, totalHeapBytes uint64) float64 {
	if totalHeapBytes == 0 {
		return 0
	}
	var top uint64
	for _, h := range hist {
		top += h.TotalSize
	}
	c := float64(top) / float64(totalHeapBytes)
	if c > 1 {
		return 1
	}
	if c < 0 {
		return 0
	}
	return c
}

func sortWarnings(warnings []model.DataWarning) []model.DataWarning {
	sorted := make([]model.DataWarning, len(warnings))
	copy(sorted, warnings)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Category.Priority(), sorted[j].Category.Priority()
		if pi != pj {
			return pi < pj
		}
		return sorted[i].Message < sorted[j].Message
	})
	return sorted
}

func finalizeStrings(st *state, snap *model.Snapshot) {
	strs := make([]model.NotableString, 0, len(st.stringOrder))
	var totalOcc, stackOcc, heapOcc int
	for _, key := range st.stringOrder {
		agg := st.stringByText[key]
		strs = append(strs, *agg)
		totalOcc += agg.Occurrences
		switch agg.Source {
		case model.SourceStack:
			stackOcc += agg.Occurrences
		case model.SourceHeap:
			heapOcc += agg.Occurrences
		case model.SourceStackAndHeap:
			stackOcc += agg.Occurrences
			heapOcc += agg.Occurrences
		}
	}
	snap.Strings = strs
	snap.UniqueStringCount = len(strs)
	snap.TotalStringOccurrences = totalOcc
	snap.StackStringOccurrences = stackOcc
	snap.HeapStringOccurrences = heapOcc

	if st.dedupedStack > 0 {
		st.warn(model.CategoryStringDedupe, "%d duplicate stack-root string reads folded into existing entries", st.dedupedStack)
	}
	if st.dedupedHeap > 0 {
		st.warn(model.CategoryStringDedupe, "%d duplicate heap string reads folded into existing entries", st.dedupedHeap)
	}
	// The dedup warnings above are appended unsorted; Build sorts the full
	// warning slice in phase 11.
}

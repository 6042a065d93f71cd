package builder

import (
	"github.com/ftahirops/dumptriage/internal/inspector"
	"github.com/ftahirops/dumptriage/internal/model"
)

// accountGC sums segment lengths by kind. A nil heap yields a zero-valued
// GcSnapshot; an unwalkable heap still has its segments and GC mode read.
// TotalHeapBytes is gen0+gen1+gen2+LOH; pinned bytes are tracked apart.
func accountGC(heap inspector.Heap) model.GcSnapshot {
	var gc model.GcSnapshot
	if heap == nil {
		return gc
	}
	gc.IsServerGC = heap.IsServer()
	for _, seg := range heap.Segments() {
		gc.SegmentCount++
		switch seg.Kind {
		case inspector.SegmentGen0:
			gc.Gen0Bytes += seg.Length
		case inspector.SegmentGen1:
			gc.Gen1Bytes += seg.Length
		case inspector.SegmentGen2:
			gc.Gen2Bytes += seg.Length
		case inspector.SegmentLarge:
			gc.LargeObjectHeapBytes += seg.Length
		case inspector.SegmentPinned:
			gc.PinnedBytes += seg.Length
		}
	}
	gc.TotalHeapBytes = gc.Gen0Bytes + gc.Gen1Bytes + gc.Gen2Bytes + gc.LargeObjectHeapBytes
	return gc
}

// summarizeBlocking counts sync blocks and the threads waiting on them.
func summarizeBlocking(blocks []inspector.SyncBlockInfo) model.BlockingSummary {
	var s model.BlockingSummary
	s.SyncBlockCount = len(blocks)
	for _, b := range blocks {
		s.WaitingThreadCount += b.WaitingThreadCount
	}
	return s
}

// buildDeadlockCandidates builds a DeadlockCandidate for every sync block
// with waiters or a held monitor, resolving the owner by matching the
// holding thread's address against the alive thread set.
func buildDeadlockCandidates(blocks []inspector.SyncBlockInfo, threads []inspector.ThreadHandle) []model.DeadlockCandidate {
	if len(blocks) == 0 {
		return nil
	}
	byAddr := make(map[uint64]int, len(threads))
	for _, t := range threads {
		byAddr[t.Address] = t.ManagedID
	}

	var out []model.DeadlockCandidate
	for _, b := range blocks {
		if b.WaitingThreadCount <= 0 && !b.IsMonitorHeld {
			continue
		}
		cand := model.DeadlockCandidate{
			WaitingThreads: b.WaitingThreadCount,
			ObjectAddress:  b.ObjectAddress,
		}
		if id, ok := byAddr[b.HoldingThreadAddress]; ok {
			cand.OwnerThreadID = &id
		}
		out = append(out, cand)
	}
	return out
}

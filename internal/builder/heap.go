package builder

import (
	"sort"

	"github.com/ftahirops/dumptriage/internal/inspector"
	"github.com/ftahirops/dumptriage/internal/model"
)

// walkHeapHistogram iterates every heap object once, accumulating
// per-type size/count and returning the top-N types by size descending,
// along with the total object count and the number of distinct non-empty
// type names seen (used by the caller to decide whether to emit
// HeapHistogramClamp).
func walkHeapHistogram(heap inspector.Heap, topN int) (hist []model.HeapTypeStat, totalObjects, totalTypes int) {
	type acc struct {
		size  uint64
		count int
	}
	byType := map[string]*acc{}

	for _, obj := range heap.Objects() {
		totalObjects++
		if !obj.IsValid() {
			continue
		}
		name := obj.TypeName()
		if name == "" {
			continue
		}
		a, ok := byType[name]
		if !ok {
			a = &acc{}
			byType[name] = a
		}
		a.size += obj.Size()
		a.count++
	}

	totalTypes = len(byType)

	stats := make([]model.HeapTypeStat, 0, totalTypes)
	for name, a := range byType {
		stats = append(stats, model.HeapTypeStat{TypeName: name, TotalSize: a.size, InstanceCount: a.count})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalSize != stats[j].TotalSize {
			return stats[i].TotalSize > stats[j].TotalSize
		}
		return stats[i].TypeName < stats[j].TypeName
	})

	if topN < len(stats) {
		stats = stats[:topN]
	}
	return stats, totalObjects, totalTypes
}

// extractHeapStrings extends the string dictionary built during stack-root
// extraction with additional strings found while walking heap objects
// directly. Heap strings share the global StringCaptureHardCap budget with
// stack strings, and a heap value that deduplicates into an existing
// aggregate never counts against the heap capture limit (only new
// insertions grow the dictionary).
func extractHeapStrings(st *state, heap inspector.Heap) {
	startingCount := len(st.stringByText)
	available := StringCaptureHardCap - startingCount
	if available < 0 {
		available = 0
	}
	captureLimit := minInt(st.opts.HeapStringLimit, available)
	if st.opts.HeapStringLimit > captureLimit {
		st.warn(model.CategoryHeapStringClamp, "requested %d heap strings, capped to %d by remaining budget", st.opts.HeapStringLimit, captureLimit)
	}
	if captureLimit <= 0 {
		return
	}

	maxLen := st.opts.effectiveMaxStringLength()
	stopAt := startingCount + captureLimit

	for _, obj := range heap.Objects() {
		if len(st.stringByText) >= stopAt {
			break
		}
		if !obj.IsValid() || !obj.IsString() {
			continue
		}
		raw, err := obj.AsString(maxLen + 1)
		if err != nil || raw == "" {
			continue
		}
		runes := []rune(raw)
		totalLen := len(runes)
		truncated := totalLen > maxLen
		text := raw
		if truncated {
			text = headTailTruncate(raw, maxLen)
		}

		owners := st.stackOwners[obj.Address()]
		if agg, ok := st.stringByText[text]; ok {
			agg.Occurrences++
			if agg.Source == model.SourceStack {
				agg.Source = model.SourceStackAndHeap
			}
			for id := range owners {
				if agg.ThreadIDs == nil {
					agg.ThreadIDs = map[int]struct{}{}
				}
				agg.ThreadIDs[id] = struct{}{}
			}
			st.dedupedHeap++
			continue
		}

		agg := &model.NotableString{
			Text:         text,
			TotalLength:  totalLen,
			WasTruncated: truncated,
			Source:       model.SourceHeap,
			Occurrences:  1,
		}
		if len(owners) > 0 {
			agg.ThreadIDs = map[int]struct{}{}
			for id := range owners {
				agg.ThreadIDs[id] = struct{}{}
			}
		}
		st.stringByText[text] = agg
		st.stringOrder = append(st.stringOrder, text)
	}
}

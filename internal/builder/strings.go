package builder

import (
	"github.com/ftahirops/dumptriage/internal/inspector"
	"github.com/ftahirops/dumptriage/internal/model"
)

// insertString records a new or repeated string aggregate keyed by its
// post-truncation text. On a repeat, fromHeap selects which dedupe counter
// to bump and how the source is upgraded to StackAndHeap; source is only
// used when creating a new entry.
func (s *state) insertString(text string, totalLen int, truncated bool, source model.StringSource, threadID int, hasThreadID bool, fromHeap bool) {
	if agg, ok := s.stringByText[text]; ok {
		agg.Occurrences++
		if hasThreadID {
			if agg.ThreadIDs == nil {
				agg.ThreadIDs = map[int]struct{}{}
			}
			agg.ThreadIDs[threadID] = struct{}{}
		}
		switch {
		case fromHeap && agg.Source == model.SourceStack:
			agg.Source = model.SourceStackAndHeap
		case !fromHeap && agg.Source == model.SourceHeap:
			agg.Source = model.SourceStackAndHeap
		}
		if fromHeap {
			s.dedupedHeap++
		} else {
			s.dedupedStack++
		}
		return
	}

	agg := &model.NotableString{
		Text:         text,
		TotalLength:  totalLen,
		WasTruncated: truncated,
		Source:       source,
		Occurrences:  1,
	}
	if hasThreadID {
		agg.ThreadIDs = map[int]struct{}{threadID: {}}
	}
	s.stringByText[text] = agg
	s.stringOrder = append(s.stringOrder, text)
}

// extractStackStrings walks the stack roots of the kept threads (those
// selected for stack capture); roots of threads dropped by selection are
// not read and not recorded as owners. It stops the entire extraction once
// the dictionary reaches captureLimit, regardless of which thread is
// mid-walk.
func extractStackStrings(st *state, kept []model.ThreadSnapshot, rt inspector.Runtime) {
	captureLimit := st.opts.effectiveStringCaptureLimit()
	if captureLimit <= 0 {
		return
	}
	if st.opts.MaxStringsToCapture > StringCaptureHardCap {
		st.warn(model.CategoryStringClamp, "requested %d strings, capped to hard limit %d", st.opts.MaxStringsToCapture, StringCaptureHardCap)
	}
	maxLen := st.opts.effectiveMaxStringLength()
	if st.opts.MaxStringLength > StringLengthHardCap {
		st.warn(model.CategoryStringClamp, "requested max string length %d, capped to hard limit %d", st.opts.MaxStringLength, StringLengthHardCap)
	}

	heap := rt.Heap()
	if heap == nil {
		return
	}

	for _, t := range kept {
		threadID := t.ManagedID
		roots := stackRootsFor(rt, threadID)
		for _, addr := range roots {
			if st.stackOwners[addr] == nil {
				st.stackOwners[addr] = map[int]struct{}{}
			}
			st.stackOwners[addr][threadID] = struct{}{}

			if len(st.stringByText) >= captureLimit {
				return
			}

			obj, ok := heap.GetObject(addr)
			if !ok || !obj.IsValid() || !obj.IsString() {
				continue
			}
			raw, err := obj.AsString(maxLen + 1)
			if err != nil {
				continue
			}
			if raw == "" {
				continue
			}
			runes := []rune(raw)
			totalLen := len(runes)
			truncated := totalLen > maxLen
			text := raw
			if truncated {
				text = headTailTruncate(raw, maxLen)
			}
			st.insertString(text, totalLen, truncated, model.SourceStack, threadID, true, false)
		}
	}
}

// stackRootsFor resolves a thread's stack roots by matching managed id
// against the runtime's live thread handles (the model.ThreadSnapshot the
// builder already produced doesn't carry the raw accessor).
func stackRootsFor(rt inspector.Runtime, managedID int) []inspector.ObjectAddress {
	for _, t := range rt.Threads() {
		if t.ManagedID != managedID || t.StackRoots == nil {
			continue
		}
		roots, err := t.StackRoots()
		if err != nil {
			return nil
		}
		return roots
	}
	return nil
}

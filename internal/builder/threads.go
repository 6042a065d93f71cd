package builder

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ftahirops/dumptriage/internal/inspector"
	"github.com/ftahirops/dumptriage/internal/model"
)

// threadScore ranks a thread by how diagnostically interesting it is: an
// active exception dominates, then running/waiting state, finalizer/GC
// duty, and a capped bonus for held locks.
func threadScore(t inspector.ThreadHandle) int {
	score := 0
	if t.CurrentException != nil {
		score += 1000
	}
	state := strings.ToLower(t.StateText)
	if strings.Contains(state, "running") {
		score += 200
	}
	if strings.Contains(state, "wait") || strings.Contains(state, "sleep") {
		score += 120
	}
	if t.IsFinalizer {
		score += 80
	}
	if t.IsGC {
		score += 40
	}
	lockBonus := t.LockCount * 5
	if lockBonus > 200 {
		lockBonus = 200
	}
	score += lockBonus
	return score
}

func isRunningState(state string) bool {
	return strings.Contains(strings.ToLower(state), "running")
}

func isWaitSleepState(state string) bool {
	s := strings.ToLower(state)
	return strings.Contains(s, "wait") || strings.Contains(s, "sleep")
}

// selectThreads orders all alive threads, computes the forced set, and
// returns the first max(TopStackThreads, 10) after re-ordering by
// (isForced desc, score desc, lockCount desc, managedID desc).
func selectThreads(all []inspector.ThreadHandle, opts BuildOptions) []inspector.ThreadHandle {
	if len(all) == 0 {
		return nil
	}

	type scored struct {
		handle inspector.ThreadHandle
		score  int
	}
	scoredAll := make([]scored, len(all))
	for i, t := range all {
		scoredAll[i] = scored{handle: t, score: threadScore(t)}
	}
	sort.SliceStable(scoredAll, func(i, j int) bool {
		if scoredAll[i].score != scoredAll[j].score {
			return scoredAll[i].score > scoredAll[j].score
		}
		if scoredAll[i].handle.LockCount != scoredAll[j].handle.LockCount {
			return scoredAll[i].handle.LockCount > scoredAll[j].handle.LockCount
		}
		return scoredAll[i].handle.ManagedID > scoredAll[j].handle.ManagedID
	})

	forced := make(map[int]bool)
	exceptionTaken := false
	runningTaken, waitTaken := 0, 0
	for _, s := range scoredAll {
		if !exceptionTaken && s.handle.CurrentException != nil {
			forced[s.handle.ManagedID] = true
			exceptionTaken = true
			continue
		}
		if runningTaken < 5 && isRunningState(s.handle.StateText) {
			forced[s.handle.ManagedID] = true
			runningTaken++
			continue
		}
		if waitTaken < 5 && isWaitSleepState(s.handle.StateText) {
			forced[s.handle.ManagedID] = true
			waitTaken++
		}
	}

	sort.SliceStable(scoredAll, func(i, j int) bool {
		fi, fj := forced[scoredAll[i].handle.ManagedID], forced[scoredAll[j].handle.ManagedID]
		if fi != fj {
			return fi
		}
		if scoredAll[i].score != scoredAll[j].score {
			return scoredAll[i].score > scoredAll[j].score
		}
		if scoredAll[i].handle.LockCount != scoredAll[j].handle.LockCount {
			return scoredAll[i].handle.LockCount > scoredAll[j].handle.LockCount
		}
		return scoredAll[i].handle.ManagedID > scoredAll[j].handle.ManagedID
	})

	n := opts.captureThreadCount()
	if n > len(scoredAll) {
		n = len(scoredAll)
	}
	kept := make([]inspector.ThreadHandle, n)
	for i := 0; i < n; i++ {
		kept[i] = scoredAll[i].handle
	}
	return kept
}

// emitThreadTruncation records the ThreadTruncation warning naming up to
// 20 dropped ids and an alphabetically sorted histogram of dropped states.
// The sort order isn't otherwise constrained; alphabetical keeps the
// warning's text deterministic across runs.
func emitThreadTruncation(st *state, all, kept []inspector.ThreadHandle) {
	keptIDs := make(map[int]bool, len(kept))
	for _, t := range kept {
		keptIDs[t.ManagedID] = true
	}

	var droppedIDs []int
	stateCounts := map[string]int{}
	for _, t := range all {
		if keptIDs[t.ManagedID] {
			continue
		}
		if len(droppedIDs) < 20 {
			droppedIDs = append(droppedIDs, t.ManagedID)
		}
		stateCounts[t.StateText]++
	}

	states := make([]string, 0, len(stateCounts))
	for s := range stateCounts {
		states = append(states, s)
	}
	sort.Strings(states)

	var sb strings.Builder
	sb.WriteString("dropped ids: ")
	for i, id := range droppedIDs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(id))
	}
	sb.WriteString("; states: ")
	for i, s := range states {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s)
		sb.WriteString("=")
		sb.WriteString(strconv.Itoa(stateCounts[s]))
	}

	st.warn(model.CategoryThreadTruncation, "%s", sb.String())
}

// readStacks reads up to MaxStackFrames frames for each kept thread and
// populates CPUTimeMs. Frame-enumeration failures are recorded per thread
// and collapsed into a single StackReadPartial warning after the loop.
func readStacks(st *state, kept []inspector.ThreadHandle, opts BuildOptions) []model.ThreadSnapshot {
	out := make([]model.ThreadSnapshot, 0, len(kept))
	for _, t := range kept {
		snap := model.ThreadSnapshot{
			ManagedID:           t.ManagedID,
			State:                t.StateText,
			LockCount:            t.LockCount,
			IsFinalizer:          t.IsFinalizer,
			IsGC:                 t.IsGC,
			RequestedFrameCount:  opts.MaxStackFrames,
		}
		if t.CurrentException != nil {
			snap.CurrentException = t.CurrentException.TypeName + ": " + t.CurrentException.Message
		}

		if t.StackFrames != nil {
			frames, err := t.StackFrames()
			if err != nil {
				st.stackReadFailures = append(st.stackReadFailures, t.ManagedID)
			} else {
				if len(frames) > opts.MaxStackFrames {
					frames = frames[:opts.MaxStackFrames]
				}
				snap.StackFrames = frames
				snap.CapturedFrameCount = len(frames)
			}
		}

		if t.CPUTimeMs != nil {
			if ms, err := t.CPUTimeMs(); err == nil {
				snap.CPUTimeMs = &ms
			}
		}

		out = append(out, snap)
	}

	if len(st.stackReadFailures) > 0 {
		n := len(st.stackReadFailures)
		listed := st.stackReadFailures
		if n > 10 {
			listed = listed[:10]
		}
		var sb strings.Builder
		for i, id := range listed {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Itoa(id))
		}
		st.warn(model.CategoryStackReadPartial, "stack frame read failed for thread(s) %s", sb.String())
	}

	return out
}


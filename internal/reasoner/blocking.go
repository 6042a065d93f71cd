package reasoner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ftahirops/dumptriage/internal/model"
)

// blockingSignals flags contended sync blocks, or bare lock holding when
// nothing is actually waiting.
func blockingSignals(snap *model.Snapshot, findings *[]model.Finding) {
	b := snap.Blocking
	if b.SyncBlockCount > 0 {
		severity := model.SeverityWarning
		if b.SyncBlockCount > 10 || b.WaitingThreadCount > 5 {
			severity = model.SeverityCritical
		}
		*findings = append(*findings, model.Finding{
			Title:          "Synchronization contention",
			Severity:       severity,
			Evidence:       fmt.Sprintf("%d sync blocks, %d threads waiting", b.SyncBlockCount, b.WaitingThreadCount),
			Recommendation: "Inspect the deadlock candidates list for the specific objects and owning threads involved.",
		})
		return
	}

	locksHeld := 0
	for _, t := range snap.Threads {
		if t.LockCount > 0 {
			locksHeld++
		}
	}
	if locksHeld > 0 {
		*findings = append(*findings, model.Finding{
			Title:          "Locks held by managed threads",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("%d thread(s) hold at least one lock", locksHeld),
			Recommendation: "No contention was observed, but review lock scope to keep held time short.",
		})
	}
}

// nonMonitorBlockingSignals surfaces non-monitor blocking hotspots: frames
// that repeatedly appear as the first frame of a waiting/sleeping/blocked
// thread, excluding ordinary monitor waits which are already covered by
// blockingSignals and deadlockSignals.
func nonMonitorBlockingSignals(snap *model.Snapshot, findings *[]model.Finding) {
	counts := map[string]int{}
	for _, t := range snap.Threads {
		if !containsAnyFold(t.State, "Wait", "Sleep", "Block") {
			continue
		}
		frame := firstNonEmptyFrame(t)
		if frame == "" || containsFold(frame, "Monitor") {
			continue
		}
		counts[frame]++
	}

	type hotspot struct {
		frame string
		count int
	}
	var hotspots []hotspot
	for frame, count := range counts {
		if count >= 5 {
			hotspots = append(hotspots, hotspot{frame, count})
		}
	}
	if len(hotspots) == 0 {
		return
	}
	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].count != hotspots[j].count {
			return hotspots[i].count > hotspots[j].count
		}
		return hotspots[i].frame < hotspots[j].frame
	})
	if len(hotspots) > 3 {
		hotspots = hotspots[:3]
	}

	var lines []string
	for _, h := range hotspots {
		lines = append(lines, fmt.Sprintf("%d threads blocked at: %s", h.count, h.frame))
	}
	*findings = append(*findings, model.Finding{
		Title:          "Non-monitor blocking hotspot",
		Severity:       model.SeverityWarning,
		Evidence:       strings.Join(lines, "\n"),
		Recommendation: "These threads are blocked outside of monitor waits (I/O, handles, or native calls); correlate with the frame to find the resource.",
	})
}

// deadlockSignals flags deadlock candidates that have at least one thread
// actually waiting on them.
func deadlockSignals(snap *model.Snapshot, findings *[]model.Finding) {
	var lines []string
	for _, d := range snap.Deadlocks {
		if d.WaitingThreads <= 0 {
			continue
		}
		owner := "unknown"
		if d.OwnerThreadID != nil {
			owner = fmt.Sprintf("%d", *d.OwnerThreadID)
		}
		lines = append(lines, fmt.Sprintf("object 0x%x: owner=%s, waiting=%d", d.ObjectAddress, owner, d.WaitingThreads))
	}
	if len(lines) == 0 {
		return
	}
	*findings = append(*findings, model.Finding{
		Title:          "Potential deadlock/monitor contention",
		Severity:       model.SeverityCritical,
		Evidence:       strings.Join(lines, "\n"),
		Recommendation: "Cross-reference owning thread ids against the thread list to find the lock-ordering cycle.",
	})
}

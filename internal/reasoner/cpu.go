package reasoner

import (
	"fmt"

	"github.com/ftahirops/dumptriage/internal/model"
)

// cpuSignals flags a running-thread count or GC-thread count out of
// proportion with the host's core count.
func cpuSignals(snap *model.Snapshot, findings *[]model.Finding) {
	cpuCount := snap.HostCPUCount
	running, gcThreads := threadStateCounts(snap)

	if running > cpuCount*4 {
		*findings = append(*findings, model.Finding{
			Title:          "High CPU suspicion",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("%d running threads on a %d-core host", running, cpuCount),
			Recommendation: "More running threads than cores by a wide margin suggests oversubscription; check the thread pool's min/max settings.",
		})
	}
	if gcThreads > maxInt(2, cpuCount/2) {
		*findings = append(*findings, model.Finding{
			Title:          "GC threads elevated",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("%d threads flagged is-gc on a %d-core host", gcThreads, cpuCount),
			Recommendation: "Elevated GC thread count often tracks server GC under heavy allocation; correlate with the memory findings.",
		})
	}
}

// threadpoolSignals flags starvation (too few running workers against a
// deep waiting backlog) and ThreadPool gate congestion.
func threadpoolSignals(snap *model.Snapshot, findings *[]model.Finding) {
	cpuCount := snap.HostCPUCount
	running, _ := threadStateCounts(snap)
	waiting := 0
	for _, t := range snap.Threads {
		if containsAnyFold(t.State, "Wait", "Sleep") {
			waiting++
		}
	}

	if running <= maxInt(1, cpuCount/2) && waiting > 4*running && waiting >= 8 {
		*findings = append(*findings, model.Finding{
			Title:          "ThreadPool starvation or queue backlog",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("%d running vs %d waiting threads on a %d-core host", running, waiting, cpuCount),
			Recommendation: "Work is queuing faster than the pool can drain it; look for blocking calls on pool threads or raise MinThreads.",
		})
	}

	gateFrames := 0
	for _, t := range snap.Threads {
		if threadHasFrameContaining(t, "ThreadPoolWorkQueue", "PortableThreadPool") {
			gateFrames++
		}
	}
	if gateFrames >= 5 {
		*findings = append(*findings, model.Finding{
			Title:          "ThreadPool gate congestion",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("%d threads parked at the ThreadPool work-stealing gate", gateFrames),
			Recommendation: "A crowded gate usually means the global work queue is backed up; profile the hot work items.",
		})
	}
}

// threadStateCounts returns (running, is-gc) counts across kept threads.
func threadStateCounts(snap *model.Snapshot) (running, gcThreads int) {
	for _, t := range snap.Threads {
		if containsFold(t.State, "Running") {
			running++
		}
		if t.IsGC {
			gcThreads++
		}
	}
	return
}

package reasoner

import (
	"fmt"

	"github.com/ftahirops/dumptriage/internal/model"
)

// crashSignals flags any kept thread carrying a current exception.
func crashSignals(snap *model.Snapshot, findings *[]model.Finding) {
	for _, t := range snap.Threads {
		if !t.HasException() {
			continue
		}
		*findings = append(*findings, model.Finding{
			Title:    "Application crash or unhandled exception",
			Severity: model.SeverityCritical,
			Evidence: fmt.Sprintf("Thread %d: %s", t.ManagedID, t.CurrentException),
			Recommendation: "Inspect the faulting thread's stack for the allocation site and the call chain that reached it unguarded.",
		})
	}
}

// finalizerSignals watches the finalizer thread for blockage and for a
// generally busy finalization queue.
func finalizerSignals(snap *model.Snapshot, findings *[]model.Finding) {
	for _, t := range snap.Threads {
		if !t.IsFinalizer {
			continue
		}
		if containsAnyFold(t.State, "Wait", "Block") {
			*findings = append(*findings, model.Finding{
				Title:    "Finalizer thread may be blocked",
				Severity: model.SeverityCritical,
				Evidence: fmt.Sprintf("Thread %d (finalizer) state: %s", t.ManagedID, t.State),
				Recommendation: "A blocked finalizer stalls the entire finalization queue; check what the thread's stack is waiting on.",
			})
		}
	}

	var finalizeFrames int
	for _, t := range snap.Threads {
		for _, f := range t.StackFrames {
			if containsFold(f, "finalize") {
				finalizeFrames++
			}
		}
	}
	if finalizeFrames > 50 {
		*findings = append(*findings, model.Finding{
			Title:          "Heavy finalization activity",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("%d captured stack frames reference finalization", finalizeFrames),
			Recommendation: "Consider reducing the number of finalizable objects or implementing IDisposable-style deterministic cleanup.",
		})
	}
}

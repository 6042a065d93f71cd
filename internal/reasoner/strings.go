package reasoner

import (
	"fmt"

	"github.com/ftahirops/dumptriage/internal/model"
)

// stringSignals flags heavy string duplication and stack-concentrated
// string capture.
func stringSignals(snap *model.Snapshot, findings *[]model.Finding) {
	total := snap.TotalStringOccurrences
	if total == 0 {
		return
	}

	dup := 1 - float64(snap.UniqueStringCount)/float64(total)
	if dup >= 0.75 && total >= 20 {
		*findings = append(*findings, model.Finding{
			Title:          "High duplicate string frequency",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("%.1f%% duplication across %d total occurrences (%d unique)", dup*100, total, snap.UniqueStringCount),
			Recommendation: "Heavy repetition of the same string value often means an interned constant or log template dominates; consider string interning if memory-bound.",
		})
	}

	stackOcc, heapOcc := snap.StackStringOccurrences, snap.HeapStringOccurrences
	if stackOcc > 2*heapOcc && stackOcc >= 20 {
		*findings = append(*findings, model.Finding{
			Title:          "Strings concentrated on stacks",
			Severity:       model.SeverityInfo,
			Evidence:       fmt.Sprintf("%d stack occurrences vs %d heap occurrences", stackOcc, heapOcc),
			Recommendation: "Most captured strings were reachable directly from thread stacks; the heap walk is adding comparatively little signal here.",
		})
	}
}

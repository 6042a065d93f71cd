package reasoner

import (
	"strings"

	"github.com/ftahirops/dumptriage/internal/model"
)

// dataAvailabilitySignals surfaces the builder's own data-quality warnings
// as a single finding, so a reader scanning only findings still learns the
// snapshot is incomplete.
func dataAvailabilitySignals(snap *model.Snapshot, findings *[]model.Finding) {
	if len(snap.Warnings) == 0 {
		return
	}
	lines := make([]string, 0, len(snap.Warnings))
	for _, w := range snap.Warnings {
		lines = append(lines, w.Category.String()+": "+w.Message)
	}
	*findings = append(*findings, model.Finding{
		Title:          "Data availability warning",
		Severity:       model.SeverityWarning,
		Evidence:       strings.Join(lines, "\n"),
		Recommendation: "Some data could not be fully captured from this dump; treat findings that depend on it as lower confidence.",
	})
}

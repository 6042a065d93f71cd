package reasoner

import (
	"testing"

	"github.com/ftahirops/dumptriage/internal/model"
)

func TestDataAvailabilitySignalsJoinsWarnings(t *testing.T) {
	snap := &model.Snapshot{Warnings: []model.DataWarning{
		{Category: model.CategoryHeapUnavailable, Message: "heap section missing"},
		{Category: model.CategoryThreadTruncation, Message: "dropped 12 threads"},
	}}
	var findings []model.Finding
	dataAvailabilitySignals(snap, &findings)
	f := findByTitle(findings, "Data availability warning")
	if f == nil || f.Severity != model.SeverityWarning {
		t.Fatalf("expected a Warning data-availability finding, got %v", findings)
	}
	if !containsFold(f.Evidence, "heap section missing") || !containsFold(f.Evidence, "dropped 12 threads") {
		t.Fatalf("evidence must contain every warning message, got %q", f.Evidence)
	}
}

func TestDataAvailabilitySignalsQuietWithoutWarnings(t *testing.T) {
	snap := &model.Snapshot{}
	var findings []model.Finding
	dataAvailabilitySignals(snap, &findings)
	if len(findings) != 0 {
		t.Fatalf("expected no findings without warnings, got %v", titles(findings))
	}
}

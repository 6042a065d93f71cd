// Package reasoner implements a pure transform from a model.Snapshot to an
// ordered list of model.Finding, following xtop's engine/rca.go shape —
// independent rule-group functions, each appending to a shared slice, run
// in a fixed order with no rule observing another's output.
package reasoner

import (
	"strings"

	"github.com/ftahirops/dumptriage/internal/model"
)

// ruleGroup is one independently-invoked rule-group function. The name is
// used only for documentation/tests — findings carry no group id.
type ruleGroup func(*model.Snapshot, *[]model.Finding)

// order is the fixed rule-group invocation sequence.
var order = []ruleGroup{
	crashSignals,
	memorySignals,
	gcNuanceSignals,
	blockingSignals,
	cpuSignals,
	stringSignals,
	finalizerSignals,
	threadpoolSignals,
	waitClassificationSignals,
	nonMonitorBlockingSignals,
	heapLeakSignals,
	moduleAnomalies,
	coverageSignals,
	nativeSignals,
	dataAvailabilitySignals,
	deadlockSignals,
}

// Analyze runs every rule group over snap in order and returns the ranked
// finding list. It performs no I/O and never mutates snap.
func Analyze(snap *model.Snapshot) []model.Finding {
	var findings []model.Finding
	for _, rule := range order {
		rule(snap, &findings)
	}
	if len(findings) == 0 {
		findings = append(findings, model.Finding{
			Title:          "No critical signals detected",
			Severity:       model.SeverityInfo,
			Evidence:       "No thread exceptions, memory pressure, blocking, or anomalous patterns were observed in this snapshot.",
			Recommendation: "No action required.",
		})
	}
	return findings
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// containsAnyFold reports whether s contains any of the given substrings,
// case-insensitively.
func containsAnyFold(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if containsFold(s, sub) {
			return true
		}
	}
	return false
}

// threadHasFrameContaining reports whether any of the thread's captured
// stack frames contains any of the given substrings, case-insensitively.
func threadHasFrameContaining(t model.ThreadSnapshot, substrs ...string) bool {
	for _, f := range t.StackFrames {
		if containsAnyFold(f, substrs...) {
			return true
		}
	}
	return false
}

// firstNonEmptyFrame returns the thread's first non-empty stack frame, or
// "" if it has none.
func firstNonEmptyFrame(t model.ThreadSnapshot) string {
	for _, f := range t.StackFrames {
		if strings.TrimSpace(f) != "" {
			return f
		}
	}
	return ""
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

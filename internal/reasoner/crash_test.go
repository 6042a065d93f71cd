package reasoner

import (
	"testing"

	"github.com/ftahirops/dumptriage/internal/model"
)

func TestCrashSignalsFlagsEachExceptionThread(t *testing.T) {
	snap := &model.Snapshot{Threads: []model.ThreadSnapshot{
		{ManagedID: 1, CurrentException: "System.NullReferenceException: Object reference not set"},
		{ManagedID: 2, State: "Running"},
		{ManagedID: 3, CurrentException: "System.IO.IOException: disk full"},
	}}
	var findings []model.Finding
	crashSignals(snap, &findings)
	if len(findings) != 2 {
		t.Fatalf("expected one finding per excepting thread, got %d", len(findings))
	}
	for _, f := range findings {
		if f.Severity != model.SeverityCritical {
			t.Fatalf("crash findings must be Critical, got %v", f.Severity)
		}
		if f.Title != "Application crash or unhandled exception" {
			t.Fatalf("unexpected title %q", f.Title)
		}
	}
}

func TestCrashSignalsQuietWithoutExceptions(t *testing.T) {
	snap := &model.Snapshot{Threads: []model.ThreadSnapshot{{ManagedID: 1, State: "Running"}}}
	var findings []model.Finding
	crashSignals(snap, &findings)
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", titles(findings))
	}
}

func TestFinalizerSignalsBlockedFinalizer(t *testing.T) {
	snap := &model.Snapshot{Threads: []model.ThreadSnapshot{
		{ManagedID: 7, IsFinalizer: true, State: "Waiting"},
	}}
	var findings []model.Finding
	finalizerSignals(snap, &findings)
	f := findByTitle(findings, "Finalizer thread may be blocked")
	if f == nil {
		t.Fatalf("expected a blocked-finalizer finding, got %v", titles(findings))
	}
	if f.Severity != model.SeverityCritical {
		t.Fatalf("expected Critical severity, got %v", f.Severity)
	}
}

func TestFinalizerSignalsRunningFinalizerIsQuiet(t *testing.T) {
	snap := &model.Snapshot{Threads: []model.ThreadSnapshot{
		{ManagedID: 7, IsFinalizer: true, State: "Running"},
	}}
	var findings []model.Finding
	finalizerSignals(snap, &findings)
	if hasTitle(findings, "Finalizer thread may be blocked") {
		t.Fatalf("a running finalizer must not be flagged as blocked")
	}
}

func TestFinalizerSignalsHeavyFinalizationActivity(t *testing.T) {
	frames := make([]string, 51)
	for i := range frames {
		frames[i] = "System.Object.Finalize()"
	}
	snap := &model.Snapshot{Threads: []model.ThreadSnapshot{
		{ManagedID: 1, State: "Running", StackFrames: frames},
	}}
	var findings []model.Finding
	finalizerSignals(snap, &findings)
	f := findByTitle(findings, "Heavy finalization activity")
	if f == nil {
		t.Fatalf("expected a heavy-finalization finding with 51 finalize frames, got %v", titles(findings))
	}
	if f.Severity != model.SeverityWarning {
		t.Fatalf("expected Warning severity, got %v", f.Severity)
	}
}

func TestFinalizerSignalsBelowThresholdIsQuiet(t *testing.T) {
	frames := make([]string, 50)
	for i := range frames {
		frames[i] = "System.Object.Finalize()"
	}
	snap := &model.Snapshot{Threads: []model.ThreadSnapshot{
		{ManagedID: 1, State: "Running", StackFrames: frames},
	}}
	var findings []model.Finding
	finalizerSignals(snap, &findings)
	if hasTitle(findings, "Heavy finalization activity") {
		t.Fatalf("50 frames must not cross the >50 threshold")
	}
}

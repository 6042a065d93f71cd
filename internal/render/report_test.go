package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ftahirops/dumptriage/internal/model"
)

func sampleSnapshotAndFindings() (*model.Snapshot, []model.Finding) {
	snap := &model.Snapshot{
		DumpPath:           "/dumps/core.20260803",
		RuntimeDescription: "CLR 8.0.1",
		TotalModuleCount:   3,
		GC:                 model.GcSnapshot{TotalHeapBytes: 512 * 1024 * 1024},
		Warnings: []model.DataWarning{
			{Category: model.CategoryHeapUnavailable, Message: "heap section missing"},
		},
	}
	findings := []model.Finding{
		{Title: "Application crash or unhandled exception", Severity: model.SeverityCritical,
			Evidence: "Thread 1: boom", Recommendation: "Inspect the stack."},
	}
	return snap, findings
}

func TestWriteJSONRoundTrips(t *testing.T) {
	snap, findings := sampleSnapshotAndFindings()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, snap, findings); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if got.Snapshot.DumpPath != snap.DumpPath {
		t.Fatalf("expected dump path %q, got %q", snap.DumpPath, got.Snapshot.DumpPath)
	}
	if len(got.Findings) != 1 || got.Findings[0].Title != findings[0].Title {
		t.Fatalf("findings did not round-trip: %+v", got.Findings)
	}
}

func TestWriteJSONIsIndented(t *testing.T) {
	snap, findings := sampleSnapshotAndFindings()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, snap, findings); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Fatalf("expected indented JSON output, got %q", buf.String())
	}
}

func TestWriteTextIncludesHeaderWarningsAndFindings(t *testing.T) {
	snap, findings := sampleSnapshotAndFindings()
	var buf bytes.Buffer
	WriteText(&buf, snap, findings)
	out := buf.String()

	for _, want := range []string{
		snap.DumpPath,
		snap.RuntimeDescription,
		"data warning(s)",
		"heap section missing",
		"Application crash or unhandled exception",
		"Inspect the stack.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected text report to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteTextOmitsWarningsSectionWhenNone(t *testing.T) {
	snap := &model.Snapshot{DumpPath: "/dumps/x", RuntimeDescription: "CLR"}
	var buf bytes.Buffer
	WriteText(&buf, snap, nil)
	if strings.Contains(buf.String(), "data warning(s)") {
		t.Fatalf("expected no warnings section when Warnings is empty, got:\n%s", buf.String())
	}
}

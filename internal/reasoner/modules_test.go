package reasoner

import (
	"strings"
	"testing"

	"github.com/ftahirops/dumptriage/internal/model"
)

func TestHeapLeakSignalsDominantType(t *testing.T) {
	snap := &model.Snapshot{
		GC: model.GcSnapshot{TotalHeapBytes: 1000},
		HeapHistogram: []model.HeapTypeStat{
			{TypeName: "MyApp.CacheEntry", TotalSize: 600, InstanceCount: 10000},
			{TypeName: "System.String", TotalSize: 400, InstanceCount: 50},
		},
	}
	var findings []model.Finding
	heapLeakSignals(snap, &findings)
	if !hasTitle(findings, "Dominant heap type detected") {
		t.Fatalf("a type at 60%% of total heap should fire, got %v", titles(findings))
	}
}

func TestHeapLeakSignalsQuietWithoutDominance(t *testing.T) {
	snap := &model.Snapshot{
		GC: model.GcSnapshot{TotalHeapBytes: 1000},
		HeapHistogram: []model.HeapTypeStat{
			{TypeName: "A", TotalSize: 300},
			{TypeName: "B", TotalSize: 300},
		},
	}
	var findings []model.Finding
	heapLeakSignals(snap, &findings)
	if len(findings) != 0 {
		t.Fatalf("no single type exceeds half the heap, expected no findings, got %v", titles(findings))
	}
}

func TestModuleAnomaliesLargeModulesCapsAtFive(t *testing.T) {
	var mods []model.ModuleInfo
	for i := 0; i < 8; i++ {
		mods = append(mods, model.ModuleInfo{Name: "big.dll", Size: 250 * mib})
	}
	snap := &model.Snapshot{Modules: mods}
	var findings []model.Finding
	moduleAnomalies(snap, &findings)
	f := findByTitle(findings, "Unusually large modules loaded")
	if f == nil {
		t.Fatalf("expected a large-modules finding, got %v", titles(findings))
	}
	if n := strings.Count(f.Evidence, "big.dll"); n != 5 {
		t.Fatalf("expected 8 large modules capped to 5 in evidence, got %d: %q", n, f.Evidence)
	}
}

func TestModuleAnomaliesProfilerDetection(t *testing.T) {
	snap := &model.Snapshot{Modules: []model.ModuleInfo{
		{Name: "libDatadogProfiler.so", Size: 1 * mib},
		{Name: "System.Private.CoreLib.dll", Size: 1 * mib},
	}}
	var findings []model.Finding
	moduleAnomalies(snap, &findings)
	f := findByTitle(findings, "Profiler/instrumentation modules detected")
	if f == nil || f.Severity != model.SeverityInfo {
		t.Fatalf("expected Info profiler finding, got %v", findings)
	}
}

func TestCoverageSignalsHeapHistogramLimited(t *testing.T) {
	snap := &model.Snapshot{
		HeapHistogram:         []model.HeapTypeStat{{TypeName: "A", TotalSize: 1}},
		HeapHistogramCoverage: 0.2,
	}
	var findings []model.Finding
	coverageSignals(snap, &findings)
	if !hasTitle(findings, "Heap type coverage limited") {
		t.Fatalf("expected coverage finding at 20%%, got %v", titles(findings))
	}
}

func TestCoverageSignalsModuleListTruncated(t *testing.T) {
	snap := &model.Snapshot{
		Modules:             []model.ModuleInfo{{Name: "a.dll", Size: 1}},
		ModuleCoverageShown:  0.5,
		TotalModuleCount:     40,
	}
	var findings []model.Finding
	coverageSignals(snap, &findings)
	if !hasTitle(findings, "Module list truncated") {
		t.Fatalf("expected module truncation finding at 50%% coverage, got %v", titles(findings))
	}
}

func TestCoverageSignalsQuietAtFullCoverage(t *testing.T) {
	snap := &model.Snapshot{
		HeapHistogram:         []model.HeapTypeStat{{TypeName: "A", TotalSize: 1}},
		HeapHistogramCoverage: 1.0,
		Modules:               []model.ModuleInfo{{Name: "a.dll", Size: 1}},
		ModuleCoverageShown:   1.0,
	}
	var findings []model.Finding
	coverageSignals(snap, &findings)
	if len(findings) != 0 {
		t.Fatalf("full coverage should produce no findings, got %v", titles(findings))
	}
}

func TestNativeSignalsElevatedFootprint(t *testing.T) {
	snap := &model.Snapshot{
		TotalModuleBytes: 2_000_000_000,
		GC:               model.GcSnapshot{TotalHeapBytes: 100 * mib},
	}
	var findings []model.Finding
	nativeSignals(snap, &findings)
	if !hasTitle(findings, "Native footprint elevated") {
		t.Fatalf("2GB of modules against a 100MiB heap should fire, got %v", titles(findings))
	}
}

func TestNativeSignalsQuietWhenHeapAlsoLarge(t *testing.T) {
	snap := &model.Snapshot{
		TotalModuleBytes: 2_000_000_000,
		GC:               model.GcSnapshot{TotalHeapBytes: 1 * gib},
	}
	var findings []model.Finding
	nativeSignals(snap, &findings)
	if len(findings) != 0 {
		t.Fatalf("a large managed heap alongside large modules should not fire native-footprint, got %v", titles(findings))
	}
}

package reasoner

import (
	"fmt"

	"github.com/ftahirops/dumptriage/internal/model"
)

const (
	largeModuleBytes = 200 * mib
	nativeFootprintBytes = 1_000_000_000
)

// heapLeakSignals flags a single heap type that dominates total retained
// bytes, a common shape for an unbounded collection or cache leak.
func heapLeakSignals(snap *model.Snapshot, findings *[]model.Finding) {
	if len(snap.HeapHistogram) == 0 || snap.GC.TotalHeapBytes == 0 {
		return
	}
	top := snap.HeapHistogram[0]
	if float64(top.TotalSize)/float64(snap.GC.TotalHeapBytes) > 0.5 {
		*findings = append(*findings, model.Finding{
			Title:          "Dominant heap type detected",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("%s accounts for %d instances totaling %.2f MiB, over half of the tracked heap", top.TypeName, top.InstanceCount, float64(top.TotalSize)/mib),
			Recommendation: "Compare instance counts across dumps taken minutes apart; a steadily growing count of one type is the classic leak signature.",
		})
	}
}

// moduleAnomalies flags unusually large modules and modules that look like
// profiling/instrumentation agents, which sometimes outlive their
// attachment window.
func moduleAnomalies(snap *model.Snapshot, findings *[]model.Finding) {
	var large []model.ModuleInfo
	for _, m := range snap.Modules {
		if m.Size >= largeModuleBytes {
			large = append(large, m)
		}
		if len(large) == 5 {
			break
		}
	}
	if len(large) > 0 {
		var names string
		for i, m := range large {
			if i > 0 {
				names += ", "
			}
			names += fmt.Sprintf("%s (%.0f MiB)", m.Name, float64(m.Size)/mib)
		}
		*findings = append(*findings, model.Finding{
			Title:          "Unusually large modules loaded",
			Severity:       model.SeverityWarning,
			Evidence:       names,
			Recommendation: "Large native or mixed-mode modules inflate working set independent of the managed heap; confirm these are expected.",
		})
	}

	var instrumented []string
	for _, m := range snap.Modules {
		if containsAnyFold(m.Name, "profiler", "instrumentation", "agent") {
			instrumented = append(instrumented, m.Name)
		}
	}
	if len(instrumented) > 0 {
		evidence := instrumented[0]
		for _, n := range instrumented[1:] {
			evidence += ", " + n
		}
		*findings = append(*findings, model.Finding{
			Title:          "Profiler/instrumentation modules detected",
			Severity:       model.SeverityInfo,
			Evidence:       evidence,
			Recommendation: "Confirm these are intentionally attached; a profiler left on a production process can itself add overhead.",
		})
	}
}

// coverageSignals flags when the displayed heap histogram or module list
// only covers a minority/near-majority of the underlying totals, so the
// reader knows the snapshot's top-N views aren't the whole picture.
func coverageSignals(snap *model.Snapshot, findings *[]model.Finding) {
	if len(snap.HeapHistogram) > 0 && snap.HeapHistogramCoverage < 0.5 {
		*findings = append(*findings, model.Finding{
			Title:          "Heap type coverage limited",
			Severity:       model.SeverityInfo,
			Evidence:       fmt.Sprintf("Displayed heap types cover only %.1f%% of total heap bytes", snap.HeapHistogramCoverage*100),
			Recommendation: "Re-run with a larger heap histogram count if a specific type outside the top entries is suspected.",
		})
	}
	if len(snap.Modules) > 0 && snap.ModuleCoverageShown < 0.9 {
		*findings = append(*findings, model.Finding{
			Title:          "Module list truncated",
			Severity:       model.SeverityInfo,
			Evidence:       fmt.Sprintf("Displayed modules cover only %.1f%% of total module bytes (%d modules loaded)", snap.ModuleCoverageShown*100, snap.TotalModuleCount),
			Recommendation: "The full module list is still recorded on the snapshot even though display is capped at the top 20 by size.",
		})
	}
}

// nativeSignals flags a process whose native module footprint dwarfs its
// managed heap, suggesting the leak or pressure lives outside the
// managed runtime.
func nativeSignals(snap *model.Snapshot, findings *[]model.Finding) {
	if snap.TotalModuleBytes > nativeFootprintBytes && snap.GC.TotalHeapBytes < 512*mib {
		*findings = append(*findings, model.Finding{
			Title:          "Native footprint elevated",
			Severity:       model.SeverityInfo,
			Evidence:       fmt.Sprintf("%.2f GiB of loaded modules against a %.2f MiB managed heap", float64(snap.TotalModuleBytes)/gib, float64(snap.GC.TotalHeapBytes)/mib),
			Recommendation: "If working set looks high, this gap points outside the managed heap — check native allocations and loaded module count.",
		})
	}
}

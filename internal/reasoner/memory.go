package reasoner

import (
	"fmt"

	"github.com/ftahirops/dumptriage/internal/model"
)

const (
	gib = 1 << 30
	mib = 1 << 20
)

// memorySignals flags gross heap and Large Object Heap growth.
func memorySignals(snap *model.Snapshot, findings *[]model.Finding) {
	total := snap.GC.TotalHeapBytes
	switch {
	case total > 2*gib:
		*findings = append(*findings, model.Finding{
			Title:          "High managed memory pressure",
			Severity:       model.SeverityCritical,
			Evidence:       fmt.Sprintf("Total managed heap is %.2f GiB", float64(total)/gib),
			Recommendation: "Capture a heap histogram and compare against a baseline dump to find the growing type.",
		})
	case snap.GC.LargeObjectHeapBytes > 512*mib:
		*findings = append(*findings, model.Finding{
			Title:          "Large Object Heap growth",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("LOH is %.2f MiB", float64(snap.GC.LargeObjectHeapBytes)/mib),
			Recommendation: "Look for large array or string allocations that could be pooled or chunked below the 85,000-byte LOH threshold.",
		})
	}
}

// gcNuanceSignals flags generation skew, pinning pressure, and a
// workstation-mode GC running on hardware that could use server GC.
func gcNuanceSignals(snap *model.Snapshot, findings *[]model.Finding) {
	gc := snap.GC
	total := gc.Gen0Bytes + gc.Gen1Bytes + gc.Gen2Bytes
	var g2, g0, p float64
	if total > 0 {
		g2 = float64(gc.Gen2Bytes) / float64(total)
		g0 = float64(gc.Gen0Bytes) / float64(total)
	}
	if gc.TotalHeapBytes > 0 {
		p = float64(gc.PinnedBytes) / float64(gc.TotalHeapBytes)
	}

	if g2 >= 0.8 && g0 < 0.1 {
		*findings = append(*findings, model.Finding{
			Title:          "Gen2 dominant",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("Gen2 is %.1f%% of the generation-tracked heap, Gen0 only %.1f%%", g2*100, g0*100),
			Recommendation: "Long-lived objects are accumulating faster than gen0 churns; check for unintended object retention.",
		})
	}
	if p >= 0.10 {
		*findings = append(*findings, model.Finding{
			Title:          "High pinned object pressure",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("Pinned bytes are %.1f%% of total heap", p*100),
			Recommendation: "Pinned objects fragment the heap and block compaction; audit interop/GCHandle.Alloc(Pinned) usage.",
		})
	}
	if !gc.IsServerGC && snap.HostCPUCount >= 4 {
		*findings = append(*findings, model.Finding{
			Title:          "Workstation GC on multi-core host",
			Severity:       model.SeverityInfo,
			Evidence:       fmt.Sprintf("Workstation GC is active on a %d-core host", snap.HostCPUCount),
			Recommendation: "Server GC generally improves throughput on multi-core hosts with ample memory.",
		})
	}
}

package builder

import (
	"github.com/ftahirops/dumptriage/internal/inspector"
	"github.com/ftahirops/dumptriage/internal/model"
)

const moduleDisplayCap = 20

// buildModules records the full module list (insertion order) and totals.
// The top-20-by-size subset used for display and coverage is computed on
// demand by Snapshot.TopModules / moduleCoverage, never mutating the
// stored order.
func buildModules(snap *model.Snapshot, modules []inspector.ModuleHandle) {
	snap.Modules = make([]model.ModuleInfo, 0, len(modules))
	for _, m := range modules {
		snap.Modules = append(snap.Modules, model.ModuleInfo{Name: m.Name, Size: m.Size})
		snap.TotalModuleBytes += m.Size
	}
	snap.TotalModuleCount = len(snap.Modules)
}

// moduleCoverage returns Σ(top-20 sizes) / Σ(all sizes), clamped to [0,1],
// and 0 when there are no modules or their total size is 0. It records no
// warning; warnIfModulesClamped emits ModuleClamp.
func moduleCoverage(snap *model.Snapshot) float64 {
	if snap.TotalModuleBytes == 0 || len(snap.Modules) == 0 {
		return 0
	}
	top := snap.TopModules(moduleDisplayCap)
	var sum uint64
	for _, m := range top {
		sum += m.Size
	}
	c := float64(sum) / float64(snap.TotalModuleBytes)
	if c > 1 {
		return 1
	}
	if c < 0 {
		return 0
	}
	return c
}

// warnIfModulesClamped is called from Build after moduleCoverage so the
// ModuleClamp message can report the actual coverage percentage.
func warnIfModulesClamped(st *state, snap *model.Snapshot) {
	if len(snap.Modules) > moduleDisplayCap {
		st.warn(model.CategoryModuleClamp, "%d modules loaded, showing top %d by size (coverage=%.1f%%)",
			len(snap.Modules), moduleDisplayCap, snap.ModuleCoverageShown*100)
	}
}

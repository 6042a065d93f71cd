// Package render formats a Snapshot and its Findings for human or machine
// consumption. It is the only package aware of output format; both the
// builder and reasoner remain pure with respect to it.
package render

import (
	"encoding/json"
	"io"

	"github.com/ftahirops/dumptriage/internal/model"
)

// Report is the JSON wire shape written by WriteJSON: the snapshot and the
// findings produced over it, verbatim.
type Report struct {
	Snapshot *model.Snapshot `json:"snapshot"`
	Findings []model.Finding `json:"findings"`
}

// WriteJSON pretty-prints {snapshot, findings} to w.
func WriteJSON(w io.Writer, snap *model.Snapshot, findings []model.Finding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Report{Snapshot: snap, Findings: findings})
}

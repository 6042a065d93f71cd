package reasoner

import (
	"fmt"

	"github.com/ftahirops/dumptriage/internal/model"
)

// waitClassificationSignals buckets threads by the kind of I/O or
// synchronization their stack frames suggest they're waiting on.
func waitClassificationSignals(snap *model.Snapshot, findings *[]model.Finding) {
	var http, sql, syncOverAsync int
	for _, t := range snap.Threads {
		if threadHasFrameContaining(t, "HttpClient", "System.Net.Http", "HttpConnection") {
			http++
		}
		if threadHasFrameContaining(t, "SqlClient", "Microsoft.Data.SqlClient", "System.Data.SqlClient") {
			sql++
		}
		if threadHasFrameContaining(t, "Task.Wait", "Task`1.GetResult", "GetAwaiter().GetResult") {
			syncOverAsync++
		}
	}

	if http >= 3 {
		*findings = append(*findings, model.Finding{
			Title:          "HTTP I/O waits observed",
			Severity:       model.SeverityInfo,
			Evidence:       fmt.Sprintf("%d threads show HTTP client frames", http),
			Recommendation: "Expected under load; confirm response times against the downstream service's own metrics.",
		})
	}
	if sql >= 3 {
		*findings = append(*findings, model.Finding{
			Title:          "SQL I/O waits observed",
			Severity:       model.SeverityInfo,
			Evidence:       fmt.Sprintf("%d threads show SQL client frames", sql),
			Recommendation: "Check for missing indexes or connection pool exhaustion if these waits correlate with latency.",
		})
	}
	if syncOverAsync >= 3 {
		*findings = append(*findings, model.Finding{
			Title:          "Sync-over-async / Task waits detected",
			Severity:       model.SeverityWarning,
			Evidence:       fmt.Sprintf("%d threads are blocked synchronously on a Task", syncOverAsync),
			Recommendation: "Blocking on async work ties up a thread pool worker for the duration; prefer async all the way up the call chain.",
		})
	}
}

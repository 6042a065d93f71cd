package model

import "fmt"

// Sentinel errors at the SnapshotBuilder boundary. Callers compare with
// errors.Is; InternalError wraps an unclassified inspector failure.
var (
	ErrMissingPath      = fmt.Errorf("dumptriage: dump path is empty")
	ErrFileNotFound     = fmt.Errorf("dumptriage: dump file not found")
	ErrNoManagedRuntime = fmt.Errorf("dumptriage: inspector reported no managed runtime")
)

// InternalError wraps an inspector failure that doesn't fit one of the
// three classified errors above. The core surfaces the wrapped message
// rather than swallowing it, since it means the dump could not be opened
// or read at all (as opposed to a per-item read failure, which is
// recovered locally into a DataWarning and never reaches here).
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("dumptriage: internal error: %v", e.Cause)
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

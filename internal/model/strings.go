package model

// StringSource records where a NotableString was observed.
type StringSource int

const (
	SourceStack StringSource = iota
	SourceHeap
	SourceStackAndHeap
)

func (s StringSource) String() string {
	switch s {
	case SourceStack:
		return "Stack"
	case SourceHeap:
		return "Heap"
	case SourceStackAndHeap:
		return "StackAndHeap"
	default:
		return "Unknown"
	}
}

// NotableString is a de-duplicated, possibly truncated string value pulled
// from stack roots and/or the heap. Uniqueness is keyed by the
// post-truncation text, so two values that truncate to the same text
// share one entry.
type NotableString struct {
	ThreadIDs    map[int]struct{}
	Text         string
	TotalLength  int
	WasTruncated bool
	Source       StringSource
	Occurrences  int
}

// OwnedByThread reports whether the given managed thread id retains this
// string via a stack root.
func (s NotableString) OwnedByThread(id int) bool {
	_, ok := s.ThreadIDs[id]
	return ok
}

package batch

// RunHistory is a FIFO of finished container names, bounded by an
// optional cap. It is owned by a single Runner and is not safe for
// concurrent use.
type RunHistory struct {
	// names in launch order, oldest first
	names []string

	// limit is nil when the history is unbounded
	limit *int
}

// NewRunHistory creates an empty history. A nil limit never evicts.
func NewRunHistory(limit *int) *RunHistory {
	h := &RunHistory{names: []string{}}
	if limit != nil {
		l := *limit
		h.limit = &l
	}
	return h
}

// Push appends name. If that takes the history over its cap, the oldest
// name is removed and returned with ok set.
func (h *RunHistory) Push(name string) (evicted string, ok bool) {
	h.names = append(h.names, name)
	if h.limit == nil || len(h.names) <= *h.limit {
		return "", false
	}

	evicted = h.names[0]
	h.names = h.names[1:]
	return evicted, true
}

// Len returns the number of retained names.
func (h *RunHistory) Len() int {
	return len(h.names)
}

// Names returns a copy of the retained names, oldest first.
func (h *RunHistory) Names() []string {
	result := make([]string, len(h.names))
	copy(result, h.names)
	return result
}

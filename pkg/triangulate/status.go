package triangulate

// helper records the bookkeeping a status entry carries alongside its
// boundary edge: split is the edge to diagonal to from a future split
// vertex below it, and merge (when not dead) is the still-unresolved
// merge vertex waiting to be diagonaled to whatever arrives next.
type helper struct {
	split int
	merge int
}

type statusEntry struct {
	edge int
	h    helper
}

// status is the sweep-line's active-edge structure, ordered ascending by
// statusLess. There is no ordered-map or balanced-tree type anywhere in
// the available library set, so this mirrors the simplest structure that
// does appear in the corpus for this exact job: libtess2's dict, a
// doubly-linked list searched by linear scan (see dictSearch in dict.go);
// here the scan finds the first key strictly above the query. A polygon's active
// edge count is small relative to its vertex count, so the O(n) scan per
// event is not a meaningful cost next to the O(n log n) event sort.
type status struct {
	entries []statusEntry
}

func newStatus() *status { return &status{} }

// upperBound returns the index of the first entry whose edge is strictly
// above e under statusLess (i.e. the insertion point that keeps entries
// sorted). Every entry before it is at or below e, so the entry at the
// returned index minus one is the greatest one not above e.
func (s *status) upperBound(ar arena, e int) int {
	for i := range s.entries {
		if statusLess(ar, e, s.entries[i].edge) {
			return i
		}
	}
	return len(s.entries)
}

// insert adds a new status entry for e at its sorted position.
func (s *status) insert(ar arena, e int, h helper) {
	idx := s.upperBound(ar, e)
	s.entries = append(s.entries, statusEntry{})
	copy(s.entries[idx+1:], s.entries[idx:])
	s.entries[idx] = statusEntry{edge: e, h: h}
}

// eraseAt removes the entry at index i.
func (s *status) eraseAt(i int) {
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
}

// replaceKeyAt swaps the boundary edge at index i for newEdge (the edge's
// continuation past a low vertex) while keeping its sort position, since
// a low vertex's outgoing edge shares the same local sweep ordering as
// its incoming one.
func (s *status) replaceKeyAt(i, newEdge int, h helper) {
	s.entries[i] = statusEntry{edge: newEdge, h: h}
}

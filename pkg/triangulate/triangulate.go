// Package triangulate decomposes a simple (or near-simple) polygon into
// triangles with a single plane sweep: the sweep simultaneously splits the
// polygon into x-monotone pieces by inserting diagonals at split/merge
// vertices, and triangulates each finished monotone piece as soon as it
// closes off.
//
// The implementation is ported from the board viewer's original
// polygon.cpp (make_dcel / triangulate_polygon / insert_diagonal), adapted
// from a pointer-linked std::deque<edge> to an append-only index arena, the
// idiomatic Go equivalent of the "index-based prev/next" arena the source
// recommends for cyclic structures without a garbage collector.
package triangulate

import (
	"fmt"
	"sort"
)

// Vertex is a single-precision 2D point, y-down.
type Vertex struct {
	X, Y float32
}

// Triangle is three vertices in counter-clockwise order under a y-down
// coordinate system (positive signed area for interior-facing triangles).
type Triangle [3]Vertex

// Diagnostic accumulates non-fatal anomalies the sweep recovers from, such
// as a degenerate or non-simple input producing a status lookup with
// nothing below it. A nil *Diagnostic means the sweep saw nothing unusual.
type Diagnostic struct {
	Notes []string
}

func (d *Diagnostic) note(format string, args ...any) *Diagnostic {
	if d == nil {
		d = &Diagnostic{}
	}
	d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	return d
}

// dead marks a half-edge's prev/next/origin link as severed, per §3 and §9:
// "Nulled prev/next ... are represented by a sentinel index."
const dead = -1

// halfEdge is one arena entry: a boundary edge leaving origin, linked to
// its neighbors in the same face cycle by arena index rather than pointer.
type halfEdge struct {
	origin     Vertex
	prev, next int
}

func (e halfEdge) alive() bool { return e.prev != dead && e.next != dead }

// arena is the append-only half-edge store for a single Triangulate call.
// Indices into it are stable for the call's lifetime even as diagonals are
// appended, which is the whole point of using indices instead of pointers
// into a slice that might otherwise relocate.
type arena []halfEdge

func (a *arena) add(e halfEdge) int {
	*a = append(*a, e)
	return len(*a) - 1
}

// Triangulate decomposes poly (a closed polygon given as an ordered vertex
// list; the last vertex implicitly connects back to the first) into
// triangles covering its interior. It never fails: anomalies encountered
// mid-sweep are recorded on the returned Diagnostic and the affected event
// is skipped, per §7.
func Triangulate(poly []Vertex) ([]Triangle, *Diagnostic) {
	ar, ring := makeDCEL(poly)
	if len(ar) == 0 {
		return nil, nil
	}
	if ring == dead {
		// No vertex survived duplicate-collapsing: nothing to
		// triangulate.
		return nil, nil
	}
	return sweep(ar, ring)
}

// makeDCEL walks the input vertices, collapsing consecutive duplicates
// (including the wraparound last-to-first pair, per the source's
// make_dcel), and wires prev/next into a closed ring. Returns the arena
// and the index of an arbitrary surviving half-edge, or dead if fewer than
// one vertex survived collapsing.
func makeDCEL(verts []Vertex) (arena, int) {
	if len(verts) == 0 {
		return nil, dead
	}

	ar := make(arena, 0, len(verts))
	pv := verts[len(verts)-1]
	for _, p := range verts {
		if p != pv {
			ar.add(halfEdge{origin: p})
			pv = p
		}
	}
	if len(ar) == 0 {
		return ar, dead
	}

	n := len(ar)
	for i := range ar {
		prev := i - 1
		if prev < 0 {
			prev = n - 1
		}
		next := i + 1
		if next >= n {
			next = 0
		}
		ar[i].prev = prev
		ar[i].next = next
	}
	return ar, 0
}

// vertexType is the six-way classification of §4.3 Step 2, computed per
// half-edge from the relative x-positions of its previous, own, and next
// vertex and the convexity of the turn at the vertex.
type vertexType int

const (
	vtStart vertexType = iota
	vtMerge
	vtLow
	vtHigh
	vtSplit
	vtEnd
)

// vertexCos is the dot product of the left perpendicular of (self-prev)
// with (next-self): positive for a convex (left) turn, negative reflex.
func vertexCos(prev, self, next Vertex) float32 {
	psX, psY := self.X-prev.X, self.Y-prev.Y
	// perpendicular of (psX, psY) rotated +90 degrees: (-psY, psX)
	ndX, ndY := next.X-self.X, next.Y-self.Y
	return -psY*ndX + psX*ndY
}

func isReflex(prev, self, next Vertex) bool { return vertexCos(prev, self, next) < 0 }
func isConvex(prev, self, next Vertex) bool { return vertexCos(prev, self, next) > 0 }

// classify mirrors get_vertex_type from the source exactly, including its
// branch order for the degenerate p.x == o.x case (§9 Open Question 2:
// there are no tests in the source for the collinear-spike case, so the
// tie-break here is whatever falls out of following the branches as
// written).
func classify(ar arena, e int) vertexType {
	p := ar[ar[e].prev].origin
	o := ar[e].origin
	n := ar[ar[e].next].origin

	switch {
	case p.X < o.X:
		switch {
		case n.X > o.X:
			return vtLow
		case isReflex(p, o, n):
			return vtMerge
		case n.X < o.X:
			return vtEnd
		default:
			return vtLow
		}
	case p.X > o.X:
		switch {
		case n.X < o.X:
			return vtHigh
		case isReflex(p, o, n):
			return vtSplit
		case n.X > o.X:
			return vtStart
		default:
			return vtHigh
		}
	case isConvex(p, o, n):
		if n.X >= o.X {
			return vtStart
		}
		return vtEnd
	case n.X == o.X:
		if p.Y > o.Y {
			return vtHigh
		}
		return vtLow
	default:
		if n.X >= o.X {
			return vtLow
		}
		return vtHigh
	}
}

// edgeYAtX returns the y coordinate where the edge from e's origin to
// e.next's origin crosses the vertical line x, used by the status
// comparator to decide which of two status edges currently sits below the
// other under the sweep line.
func edgeYAtX(ar arena, e int, x float32) float32 {
	o := ar[e].origin
	nx := ar[ar[e].next].origin
	dx := nx.X - o.X
	if dx == 0 {
		return nx.Y
	}
	return o.Y + (nx.Y-o.Y)*(x-o.X)/dx
}

// statusLess implements the sweep-line comparator of §4.3 Step 4: "evaluate
// each edge's y at the larger of a.origin.x and b.origin.x and compare
// those y values."
func statusLess(ar arena, a, b int) bool {
	ao, bo := ar[a].origin, ar[b].origin
	if ao.X > bo.X {
		return ao.Y < edgeYAtX(ar, b, ao.X)
	}
	return edgeYAtX(ar, a, bo.X) < bo.Y
}

// eventLess orders events lexicographically by (origin.x, origin.y)
// ascending, per §4.3 Step 3.
func eventLess(ar arena, a, b int) bool {
	ao, bo := ar[a].origin, ar[b].origin
	if ao.X != bo.X {
		return ao.X < bo.X
	}
	return ao.Y < bo.Y
}

// insertDiagonal appends the half-edge pair that together realize a
// diagonal between a's and b's origins, and splices them into the face
// cycle. Ported statement-for-statement from the source's insert_diagonal,
// which resolves §9 Open Question 3: a' takes over a's old predecessor
// link and points forward to b (so b's predecessor becomes a'), while b'
// takes over b's old predecessor link and points forward to a (so a's
// predecessor becomes b'). a and b themselves are never mutated except for
// their prev fields.
func insertDiagonal(ar *arena, a, b int) (aPrime, bPrime int) {
	aOld := (*ar)[a]
	bOld := (*ar)[b]
	aPrime = ar.add(halfEdge{origin: aOld.origin, prev: aOld.prev, next: b})
	bPrime = ar.add(halfEdge{origin: bOld.origin, prev: bOld.prev, next: a})

	a2 := *ar
	a2[a2[aPrime].prev].next = aPrime
	a2[a2[aPrime].next].prev = aPrime
	a2[a2[bPrime].prev].next = bPrime
	a2[a2[bPrime].next].prev = bPrime
	return aPrime, bPrime
}

// sweep runs the plane sweep of §4.3 Steps 3-6 over the ring starting at
// any, returning the accumulated triangles.
func sweep(ar arena, any int) ([]Triangle, *Diagnostic) {
	events := make([]int, len(ar))
	for i := range ar {
		events[i] = i
	}
	sort.Slice(events, func(i, j int) bool { return eventLess(ar, events[i], events[j]) })

	st := newStatus()
	var out []Triangle
	var diag *Diagnostic
	var stack []monotoneVertex

	for i := 0; i < len(events); i++ {
		e := events[i]
		if !ar[e].alive() {
			continue
		}

		// Step 5 — twin-edge normalization: two consecutive sorted
		// events sharing an origin are a pinch between two loops meeting
		// tip-to-tip. Excise both half-edges from their cycles when the
		// neighboring vertices also match pairwise.
		if i+1 < len(events) {
			en := events[i+1]
			if ar[en].alive() && ar[e].origin == ar[en].origin {
				pPrevOrig := ar[ar[e].prev].origin
				pNextOrig := ar[ar[e].next].origin
				enPrevOrig := ar[ar[en].prev].origin
				enNextOrig := ar[ar[en].next].origin

				switch {
				case pPrevOrig == enNextOrig:
					etp := ar[e].prev
					etn := ar[en].next
					ar[ar[en].prev].next = e
					ar[e].prev = ar[en].prev
					ar[en].prev = dead
					ar[etp].next = dead
					ar[ar[etp].prev].next = etn
					ar[etn].prev = ar[etp].prev
					ar[etp].prev = dead
					ar[en].next = dead
				case enPrevOrig == pNextOrig:
					etp := ar[en].prev
					etn := ar[e].next
					ar[ar[e].prev].next = en
					ar[en].prev = ar[e].prev
					ar[e].prev = dead
					ar[etp].next = dead
					ar[ar[etp].prev].next = etn
					ar[etn].prev = ar[etp].prev
					ar[etp].prev = dead
					ar[e].next = dead
				}
				if !ar[e].alive() {
					continue
				}
			}
		}

		idx := st.upperBound(ar, e)
		if idx == 0 {
			// No entry below: this should only happen at a start
			// vertex. A non-start vertex landing here means the input
			// is non-simple or has an unresolved twin pair (§7); the
			// anomaly is noted and the event is skipped.
			if classify(ar, e) != vtStart {
				diag = diag.note("no status entry below %s vertex at (%.3f, %.3f); event skipped", vertexTypeName(classify(ar, e)), ar[e].origin.X, ar[e].origin.Y)
				continue
			}
			st.insert(ar, e, helper{split: e, merge: dead})
			continue
		}
		below := idx - 1
		h := st.entries[below].h
		vt := classify(ar, e)

		if h.merge != dead {
			diag = handlePendingMerge(&ar, st, below, e, vt, h, &stack, &out, diag)
			continue
		}
		diag = handleEvent(&ar, st, below, e, vt, &stack, &out, diag)
	}

	return out, diag
}

func vertexTypeName(vt vertexType) string {
	switch vt {
	case vtStart:
		return "start"
	case vtMerge:
		return "merge"
	case vtLow:
		return "low"
	case vtHigh:
		return "high"
	case vtSplit:
		return "split"
	case vtEnd:
		return "end"
	default:
		return "unknown"
	}
}

// handleEvent implements the "no pending merge on the entry below" action
// table of §4.3 Step 6.
func handleEvent(ar *arena, st *status, below, e int, vt vertexType, stack *[]monotoneVertex, out *[]Triangle, diag *Diagnostic) *Diagnostic {
	switch vt {
	case vtStart:
		st.insert(*ar, e, helper{split: e, merge: dead})

	case vtEnd:
		st.eraseAt(below)
		triangulateMonotone(*ar, e, stack, out)

	case vtLow:
		st.replaceKeyAt(below, e, helper{split: e, merge: dead})

	case vtHigh:
		st.entries[below].h.split = e

	case vtMerge:
		st.eraseAt(below)
		if below > 0 {
			above := below - 1
			if st.entries[above].h.merge != dead {
				ePrime, _ := insertDiagonal(ar, e, st.entries[above].h.merge)
				triangulateMonotone(*ar, e, stack, out)
				st.entries[above].h.split = ePrime
				st.entries[above].h.merge = ePrime
			} else {
				st.entries[above].h.split = e
				st.entries[above].h.merge = e
			}
		}

	case vtSplit:
		ePrime, _ := insertDiagonal(ar, e, st.entries[below].h.split)
		st.entries[below].h.split = ePrime
		st.insert(*ar, e, helper{split: e, merge: dead})
	}
	return diag
}

// handlePendingMerge implements the "pending merge on the entry below"
// action table of §4.3 Step 6: the merge is resolved eagerly, before the
// event's ordinary action, per §9's "eager merge resolution" design note.
// A start event is the exception: it only inserts its own entry and the
// merge stays pending.
func handlePendingMerge(ar *arena, st *status, below, e int, vt vertexType, h helper, stack *[]monotoneVertex, out *[]Triangle, diag *Diagnostic) *Diagnostic {
	switch vt {
	case vtStart:
		st.insert(*ar, e, helper{split: e, merge: dead})

	case vtEnd:
		ePrime, _ := insertDiagonal(ar, e, h.merge)
		st.eraseAt(below)
		triangulateMonotone(*ar, e, stack, out)
		triangulateMonotone(*ar, ePrime, stack, out)

	case vtSplit:
		ePrime, _ := insertDiagonal(ar, e, h.merge)
		st.entries[below].h.split = ePrime
		st.entries[below].h.merge = dead
		st.insert(*ar, e, helper{split: e, merge: dead})

	case vtMerge:
		ePrime, _ := insertDiagonal(ar, e, h.merge)
		triangulateMonotone(*ar, ePrime, stack, out)
		st.eraseAt(below)
		if below > 0 {
			above := below - 1
			if st.entries[above].h.merge != dead {
				ePrime2, _ := insertDiagonal(ar, e, st.entries[above].h.merge)
				triangulateMonotone(*ar, e, stack, out)
				st.entries[above].h.split = ePrime2
				st.entries[above].h.merge = ePrime2
			} else {
				st.entries[above].h.split = e
				st.entries[above].h.merge = e
			}
		}

	case vtLow:
		ePrime, _ := insertDiagonal(ar, e, h.merge)
		st.replaceKeyAt(below, e, helper{split: e, merge: dead})
		triangulateMonotone(*ar, ePrime, stack, out)

	case vtHigh:
		ePrime, _ := insertDiagonal(ar, e, h.merge)
		st.entries[below].h.split = ePrime
		st.entries[below].h.merge = dead
		triangulateMonotone(*ar, e, stack, out)
	}
	return diag
}

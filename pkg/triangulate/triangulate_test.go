package triangulate

import (
	"math"
	"testing"
)

func square() []Vertex {
	return []Vertex{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
}

func polygonArea(poly []Vertex) float64 {
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}
	return math.Abs(sum) / 2
}

func triangleArea(t Triangle) float64 {
	a, b, c := t[0], t[1], t[2]
	return math.Abs(float64((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y))) / 2
}

func totalArea(tris []Triangle) float64 {
	var sum float64
	for _, tr := range tris {
		sum += triangleArea(tr)
	}
	return sum
}

func signedArea(t Triangle) float64 {
	a, b, c := t[0], t[1], t[2]
	return float64((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y))
}

func TestTriangulateAreaConservation(t *testing.T) {
	tests := []struct {
		name string
		poly []Vertex
	}{
		{"square", square()},
		{"convex pentagon", []Vertex{{0, 0}, {4, -2}, {8, 0}, {6, 5}, {2, 5}}},
		{"L shape", []Vertex{
			{0, 0}, {10, 0}, {10, 4}, {4, 4}, {4, 10}, {0, 10},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tris, diag := Triangulate(tc.poly)
			if diag != nil {
				t.Fatalf("unexpected diagnostic: %v", diag.Notes)
			}
			want := polygonArea(tc.poly)
			got := totalArea(tris)
			if math.Abs(want-got) > 1e-3 {
				t.Errorf("area mismatch: want %v got %v over %d triangles", want, got, len(tris))
			}
			if len(tris) != len(tc.poly)-2 {
				t.Errorf("expected %d triangles for an %d-gon, got %d", len(tc.poly)-2, len(tc.poly), len(tris))
			}
		})
	}
}

func TestTriangulateWindingConsistent(t *testing.T) {
	tris, diag := Triangulate([]Vertex{
		{0, 0}, {10, 0}, {10, 4}, {4, 4}, {4, 10}, {0, 10},
	})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag.Notes)
	}
	for i, tr := range tris {
		if signedArea(tr) <= 0 {
			t.Errorf("triangle %d not positively wound: %+v", i, tr)
		}
	}
}

func TestTriangulateSplitMergeDiamond(t *testing.T) {
	// A diamond with a reflex notch on both the left and right tips
	// forces both a split and a merge event in the sweep.
	poly := []Vertex{
		{0, 0}, {5, -3}, {10, 0}, {5, 1}, {10, 4}, {5, 7}, {0, 4}, {5, 1},
	}
	tris, diag := Triangulate(poly)
	if diag != nil {
		t.Logf("diagnostics: %v", diag.Notes)
	}
	if len(tris) == 0 {
		t.Fatal("expected at least one triangle")
	}
	got := totalArea(tris)
	want := polygonArea(poly)
	if math.Abs(want-got) > 1e-2 {
		t.Errorf("area mismatch: want %v got %v", want, got)
	}
}

func TestTriangulateEmptyAndDegenerate(t *testing.T) {
	if tris, diag := Triangulate(nil); tris != nil || diag != nil {
		t.Errorf("nil input should produce no triangles and no diagnostic, got %v %v", tris, diag)
	}
	if tris, _ := Triangulate([]Vertex{{0, 0}, {1, 1}}); tris != nil {
		t.Errorf("a 2-vertex input cannot enclose an area, got %v", tris)
	}
	if tris, _ := Triangulate([]Vertex{{0, 0}, {0, 0}, {0, 0}}); tris != nil {
		t.Errorf("a collapsed polygon should triangulate to nothing, got %v", tris)
	}
}

func TestClassifyVertexTypes(t *testing.T) {
	ar, ring := makeDCEL(square())
	if ring == dead {
		t.Fatal("square should survive collapsing")
	}
	counts := map[vertexType]int{}
	for i := range ar {
		counts[classify(ar, i)]++
	}
	if counts[vtStart] != 1 || counts[vtEnd] != 1 {
		t.Fatalf("an axis-aligned square should have exactly one start and one end vertex, got %v", counts)
	}
}

func TestInsertDiagonalSplicesBothCycles(t *testing.T) {
	ar, _ := makeDCEL(square())
	a, b := 0, 2
	aPrime, bPrime := insertDiagonal(&ar, a, b)

	// Walking from a via next should reach bPrime before returning to a,
	// and walking from b should reach aPrime, confirming the cross-wired
	// prev assignment.
	if ar[bPrime].next != a {
		t.Errorf("bPrime.next = %d, want %d", ar[bPrime].next, a)
	}
	if ar[aPrime].next != b {
		t.Errorf("aPrime.next = %d, want %d", ar[aPrime].next, b)
	}
	if ar[a].prev != bPrime {
		t.Errorf("a.prev = %d, want bPrime %d", ar[a].prev, bPrime)
	}
	if ar[b].prev != aPrime {
		t.Errorf("b.prev = %d, want aPrime %d", ar[b].prev, aPrime)
	}
}

package pcb

import "testing"

func TestBoardBoundingBoxIncludesZoneOutlines(t *testing.T) {
	b := &Board{
		Zones: []Zone{
			{Layer: "F.Cu", Outline: []Position{{X: -50, Y: -50}, {X: 100, Y: -50}, {X: 100, Y: 80}}},
		},
	}

	bbox := b.GetBoundingBox()
	if bbox.Min.X != -50 || bbox.Min.Y != -50 || bbox.Max.X != 100 || bbox.Max.Y != 80 {
		t.Errorf("bbox = %+v, want min (-50,-50) max (100,80)", bbox)
	}
}

func TestFootprintBoundingBoxIncludesGraphics(t *testing.T) {
	fp := Footprint{
		Position: PositionAngle{Position: Position{X: 10, Y: 10}},
		Graphics: []Graphic{
			{Type: "line", Start: Position{X: -2, Y: 0}, End: Position{X: 2, Y: 0}},
			{Type: "circle", Center: Position{X: 0, Y: 0}, End: Position{X: 3, Y: 0}},
		},
	}

	bbox := fp.GetBoundingBox()
	// The circle (radius 3 around the footprint origin) dominates the line.
	if bbox.Min.X != 7 || bbox.Max.X != 13 || bbox.Min.Y != 7 || bbox.Max.Y != 13 {
		t.Errorf("bbox = %+v, want min (7,7) max (13,13)", bbox)
	}
}

func TestFootprintBoundingBoxIsPositionWhenNoGeometry(t *testing.T) {
	fp := Footprint{Position: PositionAngle{Position: Position{X: 5, Y: 5}}}
	bbox := fp.GetBoundingBox()
	if bbox.Min != (Position{X: 5, Y: 5}) || bbox.Max != (Position{X: 5, Y: 5}) {
		t.Errorf("bbox = %+v, want a single point at footprint position", bbox)
	}
}

func TestFootprintTransformPositionRotates90(t *testing.T) {
	fp := Footprint{Position: PositionAngle{Position: Position{X: 0, Y: 0}, Angle: 90}}
	got := fp.TransformPosition(PositionAngle{Position: Position{X: 1, Y: 0}})
	// TransformPosition negates the footprint's angle, so rotating (1,0)
	// by a 90-degree footprint lands at (0,-1).
	const eps = 1e-9
	if got.X > eps || got.X < -eps {
		t.Errorf("X = %v, want ~0", got.X)
	}
	if got.Y+1 > eps || got.Y+1 < -eps {
		t.Errorf("Y = %v, want ~-1", got.Y)
	}
}

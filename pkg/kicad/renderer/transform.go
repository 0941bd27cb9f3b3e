package renderer

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/kicad/pcb"
)

// Transform represents a 2D transformation (translate + rotate + scale).
// A footprint's fp_line/fp_circle/fp_arc/fp_poly graphics are stored
// relative to the footprint's own origin and rotation, so every one of
// them needs the same Transform applied before it can be drawn in board
// space; FootprintTransform builds that transform once per footprint.
type Transform struct {
	TranslateX float64 // Translation in X
	TranslateY float64 // Translation in Y
	Rotate     float64 // Rotation in degrees
	ScaleX     float64 // Scale factor in X
	ScaleY     float64 // Scale factor in Y
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		ScaleX: 1.0,
		ScaleY: 1.0,
	}
}

// FootprintTransform builds the Transform that maps a footprint's
// silkscreen/fab graphics from footprint-local coordinates to absolute
// board coordinates. Rotation is negated to match the sign convention
// pcb.Footprint.TransformPosition already uses for pad positions, so a
// footprint's pads and its graphics land in the same coordinate frame.
func FootprintTransform(fp pcb.Footprint) Transform {
	return Transform{
		TranslateX: fp.Position.X,
		TranslateY: fp.Position.Y,
		Rotate:     -float64(fp.Position.Angle),
		ScaleX:     1.0,
		ScaleY:     1.0,
	}
}

// ApplyGraphic returns a copy of g with every position field (Start, End,
// Center, Points) carried through t, leaving Type, Layer, Stroke, Fill,
// Radius, and Text untouched.
func ApplyGraphic(t Transform, g pcb.Graphic) pcb.Graphic {
	out := g
	out.Start = t.Apply(g.Start)
	out.End = t.Apply(g.End)
	out.Center = t.Apply(g.Center)
	if len(g.Points) > 0 {
		out.Points = make([]pcb.Position, len(g.Points))
		for i, p := range g.Points {
			out.Points[i] = t.Apply(p)
		}
	}
	return out
}

// Apply applies the transformation to a position
func (t Transform) Apply(pos pcb.Position) pcb.Position {
	x, y := pos.X, pos.Y

	// Apply scale
	x *= t.ScaleX
	y *= t.ScaleY

	// Apply rotation (convert to radians)
	if t.Rotate != 0 {
		rad := t.Rotate * math.Pi / 180.0
		cos := math.Cos(rad)
		sin := math.Sin(rad)
		newX := x*cos - y*sin
		newY := x*sin + y*cos
		x = newX
		y = newY
	}

	// Apply translation
	x += t.TranslateX
	y += t.TranslateY

	return pcb.Position{X: x, Y: y}
}

// ApplyInverse applies the inverse transformation (for screen to world)
func (t Transform) ApplyInverse(pos pcb.Position) pcb.Position {
	x, y := pos.X, pos.Y

	// Inverse translation
	x -= t.TranslateX
	y -= t.TranslateY

	// Inverse rotation
	if t.Rotate != 0 {
		rad := -t.Rotate * math.Pi / 180.0 // Negative for inverse
		cos := math.Cos(rad)
		sin := math.Sin(rad)
		newX := x*cos - y*sin
		newY := x*sin + y*cos
		x = newX
		y = newY
	}

	// Inverse scale
	if t.ScaleX != 0 {
		x /= t.ScaleX
	}
	if t.ScaleY != 0 {
		y /= t.ScaleY
	}

	return pcb.Position{X: x, Y: y}
}


// Package tessellate turns the curved primitives of a KiCad board (circles,
// arcs, ovals) into polylines that a plane-sweep triangulator or a rasterizer
// can consume directly. The discretization scheme comes from the original
// viewer's circle.hpp: rather than sampling points exactly on the
// circumference, it inflates the radius so that the true circle runs halfway
// between each vertex and the midpoint of its chord (vertices slightly
// outside the curve, chord midpoints slightly inside), keeping the
// polyline's area close to the curve's area instead of always falling
// inside it.
package tessellate

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/kicad/common"
)

// DefaultSegmentsPerCircle is used when a Config's SegmentsPerCircle is left
// at zero, matching the viewer's fixed tessellation quality.
const DefaultSegmentsPerCircle = 32

// Config holds tessellation quality settings. Unlike the original viewer,
// which carried these as compile-time constants, this is an explicit value
// so callers can trade quality for point count per board (e.g. a lower
// setting for a live preview, a higher one for export).
type Config struct {
	// SegmentsPerCircle is the number of chords used to approximate a full
	// circle. Arcs and ovals scale their own segment count from this value.
	SegmentsPerCircle int
}

func (c Config) segments() int {
	if c.SegmentsPerCircle <= 0 {
		return DefaultSegmentsPerCircle
	}
	return c.SegmentsPerCircle
}

// DiscretizeCircle returns segments points approximating a circle of the
// given radius around center. The points lie on a slightly larger radius,
// chosen so that the true circumference runs halfway between each point and
// the midpoint of its chord.
func DiscretizeCircle(center common.Position, radius float64, cfg Config) []common.Position {
	segments := cfg.segments()
	if segments < 3 {
		segments = 3
	}

	omega := 2 * math.Pi / float64(segments)
	adjRadius := 2 * radius / (1 + math.Cos(omega/2))

	points := make([]common.Position, 0, segments)
	points = append(points, common.Position{X: center.X + adjRadius, Y: center.Y})

	for s := 1; s < segments; s++ {
		theta := omega * float64(s)
		points = append(points, common.Position{
			X: center.X + adjRadius*math.Cos(theta),
			Y: center.Y + adjRadius*math.Sin(theta),
		})
	}

	return points
}

// DiscretizeArc returns points approximating the arc of radians around
// center, starting at tangent (a point on the circle at the arc's start) and
// sweeping in the direction radians' sign indicates. segmentsPerCircle sets
// the same chord density DiscretizeCircle would use for a full circle; the
// arc's own segment count is scaled down from that by its angular fraction.
func DiscretizeArc(center, tangent common.Position, radians float64, cfg Config) []common.Position {
	segmentsPerCircle := cfg.segments()

	sign := 1.0
	if radians < 0 {
		sign = -1
	}
	radians *= sign

	targetOmega := 2 * math.Pi / float64(segmentsPerCircle)
	segments := int(0.5 + radians/targetOmega)
	if segments < 1 {
		segments = 1
	}
	omega := radians / float64(segments)

	tangentDelta := common.Position{X: tangent.X - center.X, Y: tangent.Y - center.Y}
	adjScale := 2 / (1 + math.Cos(omega/2))
	adjTangentDelta := common.Position{X: tangentDelta.X * adjScale, Y: tangentDelta.Y * adjScale}

	// Change-of-basis matrix built from the inflated tangent vector and its
	// perpendicular, so points sampled on a unit circle land on the arc.
	cob := func(v common.Position) common.Position {
		return common.Position{
			X: adjTangentDelta.X*v.X - adjTangentDelta.Y*v.Y,
			Y: adjTangentDelta.Y*v.X + adjTangentDelta.X*v.Y,
		}
	}

	points := make([]common.Position, 0, segments+2)
	points = append(points, tangent)

	for s := 0; s < segments; s++ {
		theta := sign * omega * (float64(s) + 0.5)
		v := cob(common.Position{X: math.Cos(theta), Y: math.Sin(theta)})
		points = append(points, common.Position{X: center.X + v.X, Y: center.Y + v.Y})
	}

	edgeCob := func(v common.Position) common.Position {
		return common.Position{
			X: tangentDelta.X*v.X - tangentDelta.Y*v.Y,
			Y: tangentDelta.Y*v.X + tangentDelta.X*v.Y,
		}
	}
	last := edgeCob(common.Position{X: math.Cos(sign * radians), Y: math.Sin(sign * radians)})
	points = append(points, common.Position{X: center.X + last.X, Y: center.Y + last.Y})

	return points
}

// DiscretizeOval returns points approximating a KiCad oval pad or slot: a
// stadium shape made of two semicircular caps joined by straight sides,
// described by a center and the half-extents radiusX/radiusY. A square
// radius (radiusX == radiusY) degenerates to a plain circle.
func DiscretizeOval(center common.Position, radiusX, radiusY float64, cfg Config) []common.Position {
	const pi = math.Pi

	switch {
	case radiusX > radiusY:
		offset := radiusX - radiusY

		c1 := common.Position{X: center.X + offset, Y: center.Y}
		t1 := common.Position{X: c1.X, Y: c1.Y - radiusY}
		arc1 := DiscretizeArc(c1, t1, pi, cfg)

		c2 := common.Position{X: center.X - offset, Y: center.Y}
		t2 := common.Position{X: c2.X, Y: c2.Y + radiusY}
		arc2 := DiscretizeArc(c2, t2, pi, cfg)

		return append(arc1, arc2...)

	case radiusX < radiusY:
		offset := radiusY - radiusX

		c1 := common.Position{X: center.X, Y: center.Y + offset}
		t1 := common.Position{X: c1.X + radiusX, Y: c1.Y}
		arc1 := DiscretizeArc(c1, t1, pi, cfg)

		c2 := common.Position{X: center.X, Y: center.Y - offset}
		t2 := common.Position{X: c2.X - radiusX, Y: c2.Y}
		arc2 := DiscretizeArc(c2, t2, pi, cfg)

		return append(arc1, arc2...)

	default:
		return DiscretizeCircle(center, radiusX, cfg)
	}
}

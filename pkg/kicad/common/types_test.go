package common

import (
	"image/color"
	"testing"
)

func TestColorToNRGBA(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want color.NRGBA
	}{
		{"zero value is transparent black", Color{}, color.NRGBA{}},
		{"opaque red", Color{R: 1, G: 0, B: 0, A: 1}, color.NRGBA{R: 255, A: 255}},
		{"half alpha", Color{R: 0, G: 0, B: 0, A: 0.5}, color.NRGBA{A: 127}},
		{"clamps below zero", Color{R: -1, G: 0.5, B: 0, A: 1}, color.NRGBA{G: 127, A: 255}},
		{"clamps above one", Color{R: 2, G: 0, B: 0, A: 1}, color.NRGBA{R: 255, A: 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.c.ToNRGBA()
			if got != tc.want {
				t.Errorf("ToNRGBA() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestBoundingBoxExpandAndCenter(t *testing.T) {
	bb := NewBoundingBox()
	bb.Expand(Position{X: -5, Y: 2})
	bb.Expand(Position{X: 10, Y: -3})

	if bb.Width() != 15 || bb.Height() != 5 {
		t.Errorf("Width/Height = %v/%v, want 15/5", bb.Width(), bb.Height())
	}
	if center := bb.Center(); center.X != 2.5 || center.Y != -0.5 {
		t.Errorf("Center = %+v, want (2.5, -0.5)", center)
	}
}

// Package render draws globe frames onto an immediate-mode drawing surface.
package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour with straight alpha in [0, 1].
type Color struct {
	colorful.Color
	A float64
}

// Hex parses a "#rrggbb" colour at the given alpha. Invalid input yields black.
func Hex(hex string, alpha float64) Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{A: alpha}
	}
	return Color{Color: c, A: alpha}
}

// Opaque parses a "#rrggbb" colour with full alpha.
func Opaque(hex string) Color {
	return Hex(hex, 1)
}

// WithAlpha returns c with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ColorAt implements Fill for a solid colour.
func (c Color) ColorAt(x, y float64) Color {
	return c
}

// Fill yields the colour to paint at a surface position.
type Fill interface {
	ColorAt(x, y float64) Color
}

// Stop is a gradient colour stop at Offset in [0, 1].
type Stop struct {
	Offset float64
	Color  Color
}

// RadialGradient interpolates Stops by distance from the inner circle
// (X0, Y0, R0) out to radius R1. Only the inner center is used for distance,
// which is enough for an off-center highlight on a sphere.
type RadialGradient struct {
	X0, Y0, R0 float64
	R1         float64
	Stops      []Stop
}

// ColorAt implements Fill.
func (g RadialGradient) ColorAt(x, y float64) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	span := g.R1 - g.R0
	t := 0.0
	if span > 0 {
		t = (math.Hypot(x-g.X0, y-g.Y0) - g.R0) / span
	}
	t = clamp01(t)

	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		next := g.Stops[i]
		if t <= next.Offset {
			prev := g.Stops[i-1]
			w := next.Offset - prev.Offset
			if w <= 0 {
				return next.Color
			}
			f := (t - prev.Offset) / w
			return Color{
				Color: prev.Color.Color.BlendLab(next.Color.Color, f).Clamped(),
				A:     prev.Color.A + (next.Color.A-prev.Color.A)*f,
			}
		}
	}
	return last.Color
}

// Surface is a 2D immediate-mode drawing target measured in pixels.
type Surface interface {
	Size() (w, h int)
	Clear(c Color)
	FillRect(x, y, w, h float64, fill Fill)
	FillCircle(cx, cy, r float64, fill Fill)
	StrokeCircle(cx, cy, r, width float64, c Color)
	FillText(x, y float64, text string, c Color)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

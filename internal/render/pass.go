package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-bloom/internal/geo"
)

// LabelMode controls which bloom sites get a text label.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Hovered and selected sites only
	LabelAll                      // Every visible site
)

func (m LabelMode) String() string {
	switch m {
	case LabelNone:
		return "none"
	case LabelFocused:
		return "focus"
	case LabelAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParseLabelMode parses a label mode name; unknown names map to LabelFocused.
func ParseLabelMode(s string) LabelMode {
	switch strings.ToLower(s) {
	case "none", "off":
		return LabelNone
	case "all":
		return LabelAll
	default:
		return LabelFocused
	}
}

// Next cycles none -> focus -> all -> none.
func (m LabelMode) Next() LabelMode {
	return (m + 1) % 3
}

// Palette
var (
	colorBackground = Opaque("#05060F")
	colorStar       = Opaque("#C8C8FF")
	colorContinent  = Hex("#3F7F4F", 0.55)
	colorAtmosphere = Hex("#60A5FA", 0.45)
	colorSelected   = Opaque("#FEF08A")
	colorHovered    = Opaque("#FFFFFF")
	colorLabel      = Opaque("#E9D5FF")
	colorLabelFocus = Opaque("#FDE68A")

	colorBloomLow  = Opaque("#FDE68A") // weak bloom
	colorBloomHigh = Opaque("#EC4899") // strong bloom

	sphereStops = []Stop{
		{Offset: 0, Color: Opaque("#4A7FC1")},
		{Offset: 0.55, Color: Opaque("#1D3F73")},
		{Offset: 1, Color: Opaque("#081226")},
	}
)

// continentBoxes are decorative land masses in sphere-radius units relative
// to the sphere center, kept inside the disc. They are not geography.
var continentBoxes = [][4]float64{
	{-0.62, -0.48, 0.38, 0.26},
	{-0.48, -0.18, 0.22, 0.50},
	{0.05, -0.55, 0.50, 0.22},
	{0.12, -0.28, 0.24, 0.46},
	{0.32, 0.18, 0.30, 0.18},
	{-0.20, 0.42, 0.40, 0.12},
}

// Frame is everything one render pass needs.
type Frame struct {
	Camera   geo.Camera
	Viewport geo.Viewport // zero value centers the sphere on the surface
	Points   []geo.GeoPoint

	// Time is seconds on a monotonic clock; it phases the marker pulse.
	Time float64

	HoveredID  string
	SelectedID string
	Labels     LabelMode
	ShowStars  bool
}

// Renderer draws frames. It is safe to reuse across frames and sizes.
type Renderer struct {
	stars *Starfield
}

// DefaultStarCount is the number of background stars.
const DefaultStarCount = 120

// ViewportFill is the share of the shorter surface side the sphere spans at zoom 1.
const ViewportFill = 0.8

// NewRenderer creates a renderer with a deterministic starfield.
func NewRenderer() *Renderer {
	return &Renderer{stars: NewStarfield(DefaultStarCount, 1)}
}

// Render redraws the whole frame. A nil or empty surface is skipped.
func (r *Renderer) Render(s Surface, f Frame) {
	if s == nil {
		return
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	vp := f.Viewport
	if vp.Radius <= 0 {
		vp = geo.ViewportFor(w, h, ViewportFill)
	}
	radius := vp.EffectiveRadius(f.Camera)

	s.Clear(colorBackground)

	if f.ShowStars {
		for _, st := range r.stars.For(w, h) {
			s.FillRect(math.Floor(st.X), math.Floor(st.Y), 1, 1, colorStar.WithAlpha(st.Brightness))
		}
	}

	// Sphere lit from the upper-left.
	s.FillCircle(vp.CenterX, vp.CenterY, radius, RadialGradient{
		X0:    vp.CenterX - radius*0.35,
		Y0:    vp.CenterY - radius*0.35,
		R0:    0,
		R1:    radius * 1.35,
		Stops: sphereStops,
	})

	for _, b := range continentBoxes {
		s.FillRect(
			vp.CenterX+b[0]*radius,
			vp.CenterY+b[1]*radius,
			b[2]*radius,
			b[3]*radius,
			colorContinent,
		)
	}

	projected := geo.ProjectAll(f.Points, f.Camera, vp)
	for i, pp := range projected {
		if !pp.Visible {
			continue
		}
		r.drawMarker(s, f, i, pp, radius)
	}

	// Atmosphere rim
	s.StrokeCircle(vp.CenterX, vp.CenterY, radius+1, 2, colorAtmosphere)

	r.drawLabels(s, f, projected, radius)
}

// markerSize returns core and glow radii for a point.
func markerSize(intensity, sphereRadius, pulse float64) (core, glow float64) {
	core = math.Max(0.6, sphereRadius*0.025*(1+intensity))
	glow = core * (2 + 0.6*pulse)
	return core, glow
}

// bloomColor shades a marker from weak to strong bloom.
func bloomColor(intensity float64) Color {
	return Color{
		Color: colorBloomLow.BlendLab(colorBloomHigh.Color, clamp01(intensity)).Clamped(),
		A:     1,
	}
}

func (r *Renderer) drawMarker(s Surface, f Frame, index int, pp geo.ProjectedPoint, sphereRadius float64) {
	p := f.Points[index]
	pulse := math.Sin(f.Time + float64(index))
	core, glow := markerSize(p.Intensity, sphereRadius, pulse)
	c := bloomColor(p.Intensity)

	s.FillCircle(pp.ScreenX, pp.ScreenY, glow, RadialGradient{
		X0: pp.ScreenX,
		Y0: pp.ScreenY,
		R0: core,
		R1: glow,
		Stops: []Stop{
			{Offset: 0, Color: c.WithAlpha(0.55 + 0.15*pulse)},
			{Offset: 1, Color: c.WithAlpha(0)},
		},
	})
	s.FillCircle(pp.ScreenX, pp.ScreenY, core, c)

	switch p.ID {
	case f.SelectedID:
		s.StrokeCircle(pp.ScreenX, pp.ScreenY, glow+1, 1, colorSelected)
	case f.HoveredID:
		s.StrokeCircle(pp.ScreenX, pp.ScreenY, glow+1, 1, colorHovered.WithAlpha(0.8))
	}
}

func (r *Renderer) drawLabels(s Surface, f Frame, projected []geo.ProjectedPoint, sphereRadius float64) {
	if f.Labels == LabelNone {
		return
	}
	for i, pp := range projected {
		if !pp.Visible {
			continue
		}
		p := f.Points[i]
		focused := p.ID == f.SelectedID || p.ID == f.HoveredID
		if f.Labels == LabelFocused && !focused {
			continue
		}

		_, glow := markerSize(p.Intensity, sphereRadius, 1)
		text := p.Label()
		c := colorLabel
		if focused {
			text = fmt.Sprintf("◄ %s %.0f%%", p.Label(), p.Intensity*100)
			c = colorLabelFocus
		}
		s.FillText(pp.ScreenX+glow+2, pp.ScreenY, text, c)
	}
}

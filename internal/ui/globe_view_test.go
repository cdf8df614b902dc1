package ui

import (
	"math"
	"testing"

	"github.com/litescript/ls-bloom/internal/geo"
	"github.com/litescript/ls-bloom/internal/state"
)

func testGlobe(t *testing.T) GlobeModel {
	t.Helper()
	mgr := state.NewManager(geo.DefaultCatalog(), state.DefaultConfig())
	return NewGlobeModel(mgr, 0).SetSize(80, 30).SetOrigin(2, 3)
}

func TestLerpAngle_ShortestPath(t *testing.T) {
	tests := []struct {
		from     float64
		to       float64
		t        float64
		expected float64
	}{
		{0, 90, 0.5, 45},
		{0, 180, 0.5, 90},

		// Wrap-around: 350 to 10 should go +20, not -340
		{350, 10, 0.5, 360},
		{350, 10, 0.0, 350},
		{350, 10, 1.0, 370},

		// Other direction: 10 to 350 should go -20
		{10, 350, 0.5, 0},
		{10, 350, 1.0, -10},
	}

	for _, tt := range tests {
		got := lerpAngle(tt.from, tt.to, tt.t)
		if math.Abs(got-tt.expected) > 0.001 {
			t.Errorf("lerpAngle(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.t, got, tt.expected)
		}
	}
}

func TestEaseInOut(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := easeInOut(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("easeInOut(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFacingRotation_BringsPointToCenter(t *testing.T) {
	vp := geo.Viewport{CenterX: 50, CenterY: 50, Radius: 40}
	for _, lon := range []float64{-179, -90, 0, 45, 90.3563, 180} {
		cam := geo.Camera{RotationY: FacingRotation(lon), Zoom: 1}
		x, y, visible := geo.Project(0, lon, cam, vp)
		if !visible || math.Abs(x-50) > 1e-6 || math.Abs(y-50) > 1e-6 {
			t.Errorf("lon %v at rotY %v projected to (%v, %v, %v), want center",
				lon, cam.RotationY, x, y, visible)
		}
	}
}

func TestGlobeModel_ToPixel(t *testing.T) {
	g := testGlobe(t)

	tests := []struct {
		x, y   int
		px, py float64
		ok     bool
	}{
		{2, 3, 0.5, 1, true},
		{81, 32, 79.5, 59, true},
		{1, 3, 0, 0, false},
		{2, 2, 0, 0, false},
		{82, 10, 0, 0, false},
		{10, 33, 0, 0, false},
	}
	for _, tt := range tests {
		px, py, ok := g.toPixel(tt.x, tt.y)
		if ok != tt.ok || (ok && (px != tt.px || py != tt.py)) {
			t.Errorf("toPixel(%d, %d) = (%v, %v, %v), want (%v, %v, %v)",
				tt.x, tt.y, px, py, ok, tt.px, tt.py, tt.ok)
		}
	}
}

func TestGlobeModel_ViewportUsesHalfBlocks(t *testing.T) {
	g := testGlobe(t)
	vp := g.Viewport()
	// 80x30 cells is 80x60 pixels.
	if vp.CenterX != 40 || vp.CenterY != 30 {
		t.Errorf("viewport center = (%v, %v), want (40, 30)", vp.CenterX, vp.CenterY)
	}
	if math.Abs(vp.Radius-24) > 1e-9 {
		t.Errorf("viewport radius = %v, want 24", vp.Radius)
	}
	if got := len(g.Projected()); got != geo.DefaultCatalog().Len() {
		t.Errorf("Projected() has %d points", got)
	}
}

func TestGlobeModel_ViewEmptyWhenUnsized(t *testing.T) {
	mgr := state.NewManager(geo.DefaultCatalog(), state.DefaultConfig())
	if v := NewGlobeModel(mgr, 0).View(); v != "" {
		t.Errorf("unsized globe rendered %d bytes", len(v))
	}
	if v := testGlobe(t).View(); v == "" {
		t.Error("sized globe rendered nothing")
	}
}

func TestGlobeModel_SetHitRadiusIgnoresNonPositive(t *testing.T) {
	g := testGlobe(t).SetHitRadius(-1)
	if g.hitRadius != geo.DefaultHitRadius {
		t.Errorf("hitRadius = %v", g.hitRadius)
	}
	if g = g.SetHitRadius(4); g.hitRadius != 4 {
		t.Errorf("hitRadius = %v, want 4", g.hitRadius)
	}
}

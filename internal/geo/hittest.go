package geo

import "math"

// DefaultHitRadius is the pointer pick radius in surface pixels.
const DefaultHitRadius = 20.0

// HitTest returns the visible point nearest to (px, py) within radius.
// Points are re-projected with cam on every call.
func HitTest(px, py float64, points []GeoPoint, cam Camera, vp Viewport, radius float64) (GeoPoint, bool) {
	best := -1
	bestDist := math.Inf(1)

	for i, p := range points {
		pp := ProjectPoint(p, cam, vp)
		if !pp.Visible {
			continue
		}
		d := math.Hypot(pp.ScreenX-px, pp.ScreenY-py)
		if d <= radius && d < bestDist {
			best = i
			bestDist = d
		}
	}

	if best < 0 {
		return GeoPoint{}, false
	}
	return points[best], true
}

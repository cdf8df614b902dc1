package geo

import "math"

// BackFaceTolerance lets points slightly behind the limb stay visible,
// as a fraction of the sphere radius.
const BackFaceTolerance = 0.1

// ProjectedPoint is a GeoPoint's position on the drawing surface for one
// camera state. It is always recomputed, never stored.
type ProjectedPoint struct {
	ID      string  `json:"id"`
	ScreenX float64 `json:"screen_x"`
	ScreenY float64 `json:"screen_y"`
	Visible bool    `json:"visible"`
}

// Project maps a latitude/longitude to surface coordinates.
//
// The sphere is spun by RotationY about its polar axis, then tilted by
// RotationX about the screen x axis. Screen y grows downward, so the north
// pole sits at CenterY - r for an untilted camera. z is positive toward the
// viewer; a point is visible when z > -r*BackFaceTolerance.
func Project(lat, lon float64, cam Camera, vp Viewport) (x, y float64, visible bool) {
	r := vp.EffectiveRadius(cam)

	phi := degToRad(90 - lat)
	theta := degToRad(lon + cam.RotationY)

	sx := r * math.Sin(phi) * math.Cos(theta)
	sy := r * math.Cos(phi)
	sz := r * math.Sin(phi) * math.Sin(theta)

	if cam.RotationX != 0 {
		a := degToRad(cam.RotationX)
		sy, sz = sy*math.Cos(a)-sz*math.Sin(a), sy*math.Sin(a)+sz*math.Cos(a)
	}

	return vp.CenterX + sx, vp.CenterY - sy, sz > -r*BackFaceTolerance
}

// ProjectPoint projects a single GeoPoint.
func ProjectPoint(p GeoPoint, cam Camera, vp Viewport) ProjectedPoint {
	x, y, visible := Project(p.Latitude, p.Longitude, cam, vp)
	return ProjectedPoint{ID: p.ID, ScreenX: x, ScreenY: y, Visible: visible}
}

// ProjectAll projects points in order.
func ProjectAll(points []GeoPoint, cam Camera, vp Viewport) []ProjectedPoint {
	out := make([]ProjectedPoint, len(points))
	for i, p := range points {
		out[i] = ProjectPoint(p, cam, vp)
	}
	return out
}

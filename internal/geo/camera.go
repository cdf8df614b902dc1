package geo

import "math"

const (
	MinZoom = 0.5
	MaxZoom = 3.0

	// Multiplicative zoom steps for one wheel notch.
	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
)

// Camera is the globe's rotation and zoom state.
type Camera struct {
	RotationX float64 `json:"rotation_x"` // degrees, tilt about the screen x axis
	RotationY float64 `json:"rotation_y"` // degrees, spin about the polar axis
	Zoom      float64 `json:"zoom"`
}

// DefaultCamera returns the reset camera {0, 0, 1}.
func DefaultCamera() Camera {
	return Camera{Zoom: 1}
}

// ClampZoom limits z to [MinZoom, MaxZoom]. NaN maps to 1.
func ClampZoom(z float64) float64 {
	switch {
	case math.IsNaN(z):
		return 1
	case z < MinZoom:
		return MinZoom
	case z > MaxZoom:
		return MaxZoom
	default:
		return z
	}
}

// Rotate returns the camera with both rotations offset by the given degrees.
func (c Camera) Rotate(dRotX, dRotY float64) Camera {
	c.RotationX += dRotX
	c.RotationY += dRotY
	return c
}

// ScaleZoom multiplies zoom by factor and clamps the result.
func (c Camera) ScaleZoom(factor float64) Camera {
	c.Zoom = ClampZoom(c.Zoom * factor)
	return c
}

// Viewport locates the sphere on the drawing surface, in surface pixels.
type Viewport struct {
	CenterX float64
	CenterY float64
	Radius  float64 // sphere radius at zoom 1
}

// ViewportFor centers a sphere on a w x h surface, filling fill of the shorter side.
func ViewportFor(w, h int, fill float64) Viewport {
	short := math.Min(float64(w), float64(h))
	return Viewport{
		CenterX: float64(w) / 2,
		CenterY: float64(h) / 2,
		Radius:  short / 2 * fill,
	}
}

// EffectiveRadius is the on-screen sphere radius for cam.
func (v Viewport) EffectiveRadius(cam Camera) float64 {
	return v.Radius * cam.Zoom
}

// NormalizeAngle wraps angle to -180..+180 range
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a < -180 {
		a += 360
	}
	return a
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

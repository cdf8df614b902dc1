// Package control turns pointer and wheel input into globe camera changes.
package control

import (
	"math"

	"github.com/litescript/ls-bloom/internal/geo"
)

// DefaultSensitivity is degrees of rotation per pixel of drag.
const DefaultSensitivity = 0.5

// clickSlop is how far, in pixels, a press may travel and still count as a click.
const clickSlop = 1.0

// State is the controller's pointer state.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Hooks are the controller's collaborators. Any hook may be nil.
type Hooks struct {
	// Render is invoked with the new camera after every camera mutation.
	Render func(geo.Camera)
	// Hover is invoked for pointer motion while idle.
	Hover func(x, y float64)
	// Reset is invoked after the camera returns to defaults.
	Reset func()
}

// Controller owns the camera and applies input to it.
// It is not safe for concurrent use; feed it from one event loop.
type Controller struct {
	camera      geo.Camera
	state       State
	lastX       float64
	lastY       float64
	travel      float64
	sensitivity float64
	hooks       Hooks
}

// New creates a controller with the default camera.
// A non-positive sensitivity selects DefaultSensitivity.
func New(sensitivity float64, hooks Hooks) *Controller {
	if sensitivity <= 0 || math.IsNaN(sensitivity) {
		sensitivity = DefaultSensitivity
	}
	return &Controller{
		camera:      geo.DefaultCamera(),
		sensitivity: sensitivity,
		hooks:       hooks,
	}
}

// Camera returns the current camera.
func (c *Controller) Camera() geo.Camera {
	return c.camera
}

// SetCamera replaces the camera, clamping zoom, and re-renders.
func (c *Controller) SetCamera(cam geo.Camera) {
	cam.Zoom = geo.ClampZoom(cam.Zoom)
	c.camera = cam
	c.render()
}

// State returns the pointer state.
func (c *Controller) State() State {
	return c.state
}

// Sensitivity returns degrees per dragged pixel.
func (c *Controller) Sensitivity() float64 {
	return c.sensitivity
}

// SetSensitivity changes degrees per dragged pixel; non-positive values are ignored.
func (c *Controller) SetSensitivity(k float64) {
	if k > 0 && !math.IsNaN(k) {
		c.sensitivity = k
	}
}

// SetHooks replaces the collaborators.
func (c *Controller) SetHooks(h Hooks) {
	c.hooks = h
}

// PointerDown starts a drag at (x, y).
func (c *Controller) PointerDown(x, y float64) {
	c.state = StateDragging
	c.lastX, c.lastY = x, y
	c.travel = 0
}

// PointerMove rotates the camera while dragging, or reports hover while idle.
func (c *Controller) PointerMove(x, y float64) {
	if c.state != StateDragging {
		if c.hooks.Hover != nil {
			c.hooks.Hover(x, y)
		}
		return
	}

	dx := x - c.lastX
	dy := y - c.lastY
	c.lastX, c.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	c.travel += math.Hypot(dx, dy)
	c.camera = c.camera.Rotate(dy*c.sensitivity, dx*c.sensitivity)
	c.render()
}

// PointerUp ends a drag. It reports whether the press was a click, i.e. the
// pointer barely moved between down and up.
func (c *Controller) PointerUp() bool {
	if c.state != StateDragging {
		return false
	}
	c.state = StateIdle
	return c.travel <= clickSlop
}

// PointerLeave ends any drag without a click.
func (c *Controller) PointerLeave() {
	c.state = StateIdle
}

// Wheel zooms in for negative deltaY (wheel up) and out for positive deltaY.
// Zoom is clamped on every step. Zero delta is ignored.
func (c *Controller) Wheel(deltaY float64) {
	switch {
	case deltaY < 0:
		c.camera = c.camera.ScaleZoom(geo.ZoomInFactor)
	case deltaY > 0:
		c.camera = c.camera.ScaleZoom(geo.ZoomOutFactor)
	default:
		return
	}
	c.render()
}

// Rotate applies a rotation directly, for keyboard control.
func (c *Controller) Rotate(dRotX, dRotY float64) {
	c.camera = c.camera.Rotate(dRotX, dRotY)
	c.render()
}

// Reset restores the default camera, ends any drag and fires the reset hook.
func (c *Controller) Reset() {
	c.camera = geo.DefaultCamera()
	c.state = StateIdle
	c.travel = 0
	if c.hooks.Reset != nil {
		c.hooks.Reset()
	}
	c.render()
}

func (c *Controller) render() {
	if c.hooks.Render != nil {
		c.hooks.Render(c.camera)
	}
}

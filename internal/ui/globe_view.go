package ui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-bloom/internal/control"
	"github.com/litescript/ls-bloom/internal/geo"
	"github.com/litescript/ls-bloom/internal/render"
	"github.com/litescript/ls-bloom/internal/state"
)

const (
	// Keyboard rotation step in degrees
	rotateStep = 10.0

	// Fly-to animation when cycling selection
	flyDuration  = 400 * time.Millisecond
	flyFrameRate = 30 * time.Millisecond

	// Seconds of pulse phase per animation tick
	pulsePerTick = 0.16
)

// flyTickMsg advances the fly-to animation.
type flyTickMsg time.Time

// GlobeModel hosts the globe: it owns the input controller, maps mouse
// cells to surface pixels and renders frames.
type GlobeModel struct {
	width  int // cells
	height int // cells

	// Terminal position of the globe's top-left cell
	originX int
	originY int

	ctl      *control.Controller
	session  *state.Manager
	renderer *render.Renderer
	points   []geo.GeoPoint

	labels    render.LabelMode
	showStars bool
	hitRadius float64

	// Pulse phase in seconds
	phase float64

	// Frames requested by the controller since start
	renders int

	// Fly-to animation state
	flying   bool
	flyFrom  float64
	flyTo    float64
	flyStart time.Time
}

// NewGlobeModel creates a globe over the session's catalog.
func NewGlobeModel(session *state.Manager, sensitivity float64) GlobeModel {
	return GlobeModel{
		ctl:       control.New(sensitivity, control.Hooks{}),
		session:   session,
		renderer:  render.NewRenderer(),
		points:    session.Catalog().Points(),
		labels:    render.LabelFocused,
		showStars: true,
		hitRadius: geo.DefaultHitRadius,
	}
}

// SetSize updates the globe area in cells.
func (m GlobeModel) SetSize(width, height int) GlobeModel {
	m.width = width
	m.height = height
	return m
}

// SetOrigin sets the terminal cell of the globe's top-left corner.
func (m GlobeModel) SetOrigin(x, y int) GlobeModel {
	m.originX = x
	m.originY = y
	return m
}

// SetLabels sets the label mode.
func (m GlobeModel) SetLabels(mode render.LabelMode) GlobeModel {
	m.labels = mode
	return m
}

// SetShowStars toggles the background starfield.
func (m GlobeModel) SetShowStars(show bool) GlobeModel {
	m.showStars = show
	return m
}

// SetHitRadius sets the hover and click radius in surface pixels.
func (m GlobeModel) SetHitRadius(r float64) GlobeModel {
	if r > 0 {
		m.hitRadius = r
	}
	return m
}

// SetSensitivity sets drag degrees per pixel.
func (m GlobeModel) SetSensitivity(k float64) GlobeModel {
	m.ctl.SetSensitivity(k)
	return m
}

// Advance moves the marker pulse forward one animation tick.
func (m GlobeModel) Advance() GlobeModel {
	m.phase += pulsePerTick
	return m
}

// Camera returns the current camera.
func (m GlobeModel) Camera() geo.Camera {
	return m.ctl.Camera()
}

// DragState returns the controller's pointer state.
func (m GlobeModel) DragState() control.State {
	return m.ctl.State()
}

// Renders returns how many frames the controller has requested.
func (m GlobeModel) Renders() int {
	return m.renders
}

// Viewport returns the sphere placement for the current size.
func (m GlobeModel) Viewport() geo.Viewport {
	w, h := m.surfaceSize()
	return geo.ViewportFor(w, h, render.ViewportFill)
}

// Projected returns the current screen positions of all points, in surface pixels.
func (m GlobeModel) Projected() []geo.ProjectedPoint {
	return geo.ProjectAll(m.points, m.ctl.Camera(), m.Viewport())
}

func (m GlobeModel) surfaceSize() (int, int) {
	return m.width, m.height * 2
}

// toPixel maps a terminal cell to surface pixel coordinates. ok is false
// outside the globe area.
func (m GlobeModel) toPixel(x, y int) (px, py float64, ok bool) {
	col := x - m.originX
	row := y - m.originY
	if col < 0 || row < 0 || col >= m.width || row >= m.height {
		return 0, 0, false
	}
	px, py = render.CellToPixel(col, row)
	return px, py, true
}

// hitTest returns the point under pixel (px, py), if any.
func (m GlobeModel) hitTest(px, py float64) (geo.GeoPoint, bool) {
	return geo.HitTest(px, py, m.points, m.ctl.Camera(), m.Viewport(), m.hitRadius)
}

// hooks binds the controller to this copy of the model for one update.
func (m *GlobeModel) hooks() control.Hooks {
	return control.Hooks{
		Render: func(geo.Camera) { m.renders++ },
		Hover: func(px, py float64) {
			if p, ok := m.hitTest(px, py); ok {
				m.session.Hover(p.ID)
			} else {
				m.session.Hover("")
			}
		},
		Reset: func() {
			m.flying = false
			m.session.Reset()
		},
	}
}

// Update handles mouse input and the fly-to animation.
func (m GlobeModel) Update(msg tea.Msg) (GlobeModel, tea.Cmd) {
	m.ctl.SetHooks(m.hooks())
	defer m.ctl.SetHooks(control.Hooks{})

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.handleMouse(msg)

	case flyTickMsg:
		if !m.flying {
			return m, nil
		}
		t := float64(time.Since(m.flyStart)) / float64(flyDuration)
		if t >= 1 {
			t = 1
			m.flying = false
		}
		target := lerpAngle(m.flyFrom, m.flyTo, easeInOut(t))
		m.ctl.Rotate(0, target-m.ctl.Camera().RotationY)
		if m.flying {
			return m, flyTickCmd()
		}
	}
	return m, nil
}

func (m *GlobeModel) handleMouse(msg tea.MouseMsg) {
	px, py, inside := m.toPixel(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if inside {
			m.ctl.Wheel(-1)
		}
		return
	case tea.MouseButtonWheelDown:
		if inside {
			m.ctl.Wheel(1)
		}
		return
	}

	if !inside {
		if m.ctl.State() == control.StateDragging &&
			(msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionRelease) {
			m.ctl.PointerLeave()
		}
		m.session.Hover("")
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.flying = false
			m.ctl.PointerDown(px, py)
		}
	case tea.MouseActionMotion:
		// Buttonless motion while dragging means the release was never seen.
		if msg.Button == tea.MouseButtonNone && m.ctl.State() == control.StateDragging {
			m.ctl.PointerLeave()
		}
		m.ctl.PointerMove(px, py)
	case tea.MouseActionRelease:
		if m.ctl.PointerUp() {
			if p, ok := m.hitTest(px, py); ok {
				// Catalog ids always resolve.
				_ = m.session.SelectPoint(p.ID)
			}
		}
	}
}

// Rotate applies a keyboard rotation.
func (m GlobeModel) Rotate(dRotX, dRotY float64) GlobeModel {
	m.ctl.SetHooks(m.hooks())
	defer m.ctl.SetHooks(control.Hooks{})
	m.flying = false
	m.ctl.Rotate(dRotX, dRotY)
	return m
}

// Zoom applies one wheel notch; negative zooms in.
func (m GlobeModel) Zoom(delta float64) GlobeModel {
	m.ctl.SetHooks(m.hooks())
	defer m.ctl.SetHooks(control.Hooks{})
	m.ctl.Wheel(delta)
	return m
}

// SetCamera jumps to cam without animation.
func (m GlobeModel) SetCamera(cam geo.Camera) GlobeModel {
	m.ctl.SetHooks(m.hooks())
	defer m.ctl.SetHooks(control.Hooks{})
	m.flying = false
	m.ctl.SetCamera(cam)
	return m
}

// Reset restores the default camera and clears selection.
func (m GlobeModel) Reset() GlobeModel {
	m.ctl.SetHooks(m.hooks())
	defer m.ctl.SetHooks(control.Hooks{})
	m.ctl.Reset()
	return m
}

// FlyTo starts rotating so that the point faces the viewer.
func (m GlobeModel) FlyTo(p geo.GeoPoint) (GlobeModel, tea.Cmd) {
	m.flying = true
	m.flyFrom = m.ctl.Camera().RotationY
	m.flyTo = FacingRotation(p.Longitude)
	m.flyStart = time.Now()
	return m, flyTickCmd()
}

// FacingRotation returns the rotationY that brings longitude lon to the
// middle of the visible hemisphere.
func FacingRotation(lon float64) float64 {
	return geo.NormalizeAngle(90 - lon)
}

// View renders the globe.
func (m GlobeModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	sel := m.session.Selection()
	surface := render.NewCellSurface(m.width, m.height)
	m.renderer.Render(surface, render.Frame{
		Camera:     m.ctl.Camera(),
		Points:     m.points,
		Time:       m.phase,
		HoveredID:  sel.HoveredID,
		SelectedID: sel.SelectedID,
		Labels:     m.labels,
		ShowStars:  m.showStars,
	})
	return surface.Render()
}

func flyTickCmd() tea.Cmd {
	return tea.Tick(flyFrameRate, func(t time.Time) tea.Msg {
		return flyTickMsg(t)
	})
}

// lerpAngle interpolates between angles along the shortest path.
func lerpAngle(from, to, t float64) float64 {
	diff := geo.NormalizeAngle(to - from)
	return from + diff*t
}

// easeInOut is a smoothstep curve on [0, 1].
func easeInOut(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

package ui

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-bloom/internal/control"
	"github.com/litescript/ls-bloom/internal/geo"
	"github.com/litescript/ls-bloom/internal/settings"
	"github.com/litescript/ls-bloom/internal/state"
)

// The test window is 120x40: a 84x35 globe at row 3, sphere center at
// pixel (42, 35), which is terminal cell (42, 20).
const (
	testWidth   = 120
	testHeight  = 40
	centerCellX = 42
	centerCellY = 20
)

func testModel(t *testing.T) (Model, *state.Manager) {
	t.Helper()
	cat, err := geo.NewCatalog([]geo.GeoPoint{
		{ID: "front", Name: "Front", Latitude: 0, Longitude: 90, Intensity: 0.5, Confidence: 0.5},
		{ID: "back", Name: "Back", Latitude: 0, Longitude: -90, Intensity: 0.5, Confidence: 0.5},
		{ID: "north", Name: "North", Latitude: 60, Longitude: 0, Intensity: 0.5, Confidence: 0.5},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	mgr := state.NewManager(cat, state.DefaultConfig())

	s := settings.Default()
	s.Animate = false
	m := New(mgr, Options{Settings: s})
	m = update(t, m, tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	return m, mgr
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	cat := geo.DefaultCatalog()
	m := New(state.NewManager(cat, state.DefaultConfig()), Options{Settings: settings.Default()})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before size = %q", got)
	}
}

func TestModel_View(t *testing.T) {
	m, _ := testModel(t)
	out := m.View()
	if !strings.Contains(out, "Bloom Prediction Globe") {
		t.Error("header missing")
	}
	if !strings.Contains(out, "No site selected") {
		t.Error("empty panel message missing")
	}
	if !strings.Contains(out, "1/3 facing") && !strings.Contains(out, "2/3 facing") {
		t.Errorf("facing count missing from footer")
	}
}

func TestModel_DragRotates(t *testing.T) {
	m, _ := testModel(t)

	m = update(t, m, mouse(10, 20, tea.MouseActionPress, tea.MouseButtonLeft))
	if m.Globe().DragState() != control.StateDragging {
		t.Fatalf("state = %v after press, want dragging", m.Globe().DragState())
	}
	m = update(t, m, mouse(60, 20, tea.MouseActionMotion, tea.MouseButtonLeft))
	m = update(t, m, mouse(60, 20, tea.MouseActionRelease, tea.MouseButtonNone))

	cam := m.Globe().Camera()
	if cam.RotationY != 25 {
		t.Errorf("RotationY = %v, want 25 (50px at k=0.5)", cam.RotationY)
	}
	if m.Globe().DragState() != control.StateIdle {
		t.Error("release should end drag")
	}
	if m.Globe().Renders() == 0 {
		t.Error("drag should request a render")
	}
}

func TestModel_DragLeavingGlobeEnds(t *testing.T) {
	m, _ := testModel(t)
	m = update(t, m, mouse(10, 20, tea.MouseActionPress, tea.MouseButtonLeft))
	m = update(t, m, mouse(testWidth-1, 20, tea.MouseActionMotion, tea.MouseButtonLeft))
	if m.Globe().DragState() != control.StateIdle {
		t.Error("moving into the panel should end the drag")
	}
}

func TestModel_ReleaseOutsideGlobeEndsDrag(t *testing.T) {
	m, _ := testModel(t)
	m = update(t, m, mouse(10, 20, tea.MouseActionPress, tea.MouseButtonLeft))
	m = update(t, m, mouse(20, 20, tea.MouseActionMotion, tea.MouseButtonLeft))
	m = update(t, m, mouse(20, 1, tea.MouseActionRelease, tea.MouseButtonNone))
	if m.Globe().DragState() != control.StateIdle {
		t.Fatalf("state = %v after release on the header, want idle", m.Globe().DragState())
	}

	before := m.Globe().Camera().RotationY
	m = update(t, m, mouse(60, 20, tea.MouseActionMotion, tea.MouseButtonNone))
	if got := m.Globe().Camera().RotationY; got != before {
		t.Errorf("hover after release rotated the globe: RotationY %v -> %v", before, got)
	}
}

func TestModel_ButtonlessMotionEndsLostDrag(t *testing.T) {
	m, _ := testModel(t)
	m = update(t, m, mouse(10, 20, tea.MouseActionPress, tea.MouseButtonLeft))
	m = update(t, m, mouse(20, 20, tea.MouseActionMotion, tea.MouseButtonLeft))
	before := m.Globe().Camera().RotationY

	// Released outside the terminal: the next event is plain motion.
	m = update(t, m, mouse(60, 20, tea.MouseActionMotion, tea.MouseButtonNone))
	if m.Globe().DragState() != control.StateIdle {
		t.Errorf("state = %v, want idle", m.Globe().DragState())
	}
	if got := m.Globe().Camera().RotationY; got != before {
		t.Errorf("RotationY %v -> %v, want unchanged", before, got)
	}
}

func TestModel_HoverAndClick(t *testing.T) {
	m, mgr := testModel(t)

	m = update(t, m, mouse(centerCellX, centerCellY, tea.MouseActionMotion, tea.MouseButtonNone))
	if got := mgr.Selection().HoveredID; got != "front" {
		t.Fatalf("hovered = %q, want front", got)
	}
	if !strings.Contains(m.View(), "HOVER") {
		t.Error("panel should tag hovered site")
	}

	m = update(t, m, mouse(centerCellX, centerCellY, tea.MouseActionPress, tea.MouseButtonLeft))
	m = update(t, m, mouse(centerCellX, centerCellY, tea.MouseActionRelease, tea.MouseButtonNone))
	if got := mgr.Selection().SelectedID; got != "front" {
		t.Errorf("selected = %q, want front", got)
	}

	// Moving off the marker clears hover but keeps the selection.
	m = update(t, m, mouse(2, 5, tea.MouseActionMotion, tea.MouseButtonNone))
	sel := mgr.Selection()
	if sel.HoveredID != "" || sel.SelectedID != "front" {
		t.Errorf("selection = %+v, want hover cleared and front selected", sel)
	}
	if !strings.Contains(m.View(), "SELECTED") {
		t.Error("panel should tag selected site")
	}
}

func TestModel_ClickEmptySpaceKeepsSelection(t *testing.T) {
	m, mgr := testModel(t)
	if err := mgr.SelectPoint("north"); err != nil {
		t.Fatal(err)
	}
	m = update(t, m, mouse(1, 4, tea.MouseActionPress, tea.MouseButtonLeft))
	update(t, m, mouse(1, 4, tea.MouseActionRelease, tea.MouseButtonNone))
	if got := mgr.Selection().SelectedID; got != "north" {
		t.Errorf("selected = %q, want north", got)
	}
}

func TestModel_Wheel(t *testing.T) {
	m, _ := testModel(t)

	m = update(t, m, mouse(centerCellX, centerCellY, tea.MouseActionPress, tea.MouseButtonWheelUp))
	if z := m.Globe().Camera().Zoom; math.Abs(z-1.1) > 1e-9 {
		t.Errorf("zoom after wheel up = %v, want 1.1", z)
	}

	m = update(t, m, mouse(testWidth-2, centerCellY, tea.MouseActionPress, tea.MouseButtonWheelDown))
	if z := m.Globe().Camera().Zoom; math.Abs(z-1.1) > 1e-9 {
		t.Errorf("wheel over the panel changed zoom to %v", z)
	}

	m = update(t, m, mouse(centerCellX, centerCellY, tea.MouseActionPress, tea.MouseButtonWheelDown))
	if z := m.Globe().Camera().Zoom; math.Abs(z-0.99) > 1e-9 {
		t.Errorf("zoom after wheel down = %v, want 0.99", z)
	}
}

func TestModel_KeyboardCamera(t *testing.T) {
	m, _ := testModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, runeKey("+"))

	cam := m.Globe().Camera()
	want := geo.Camera{RotationX: -rotateStep, RotationY: rotateStep, Zoom: 1.1}
	if math.Abs(cam.RotationX-want.RotationX) > 1e-9 || math.Abs(cam.RotationY-want.RotationY) > 1e-9 || math.Abs(cam.Zoom-want.Zoom) > 1e-9 {
		t.Errorf("camera = %+v, want %+v", cam, want)
	}
}

func TestModel_ArrowKeysSymmetric(t *testing.T) {
	tests := []struct {
		key        tea.KeyType
		rotX, rotY float64
	}{
		{tea.KeyUp, -rotateStep, 0},
		{tea.KeyDown, rotateStep, 0},
		{tea.KeyLeft, 0, -rotateStep},
		{tea.KeyRight, 0, rotateStep},
	}
	for _, tt := range tests {
		m, _ := testModel(t)
		m = update(t, m, tea.KeyMsg{Type: tt.key})
		cam := m.Globe().Camera()
		if cam.RotationX != tt.rotX || cam.RotationY != tt.rotY {
			t.Errorf("%v: rotation = (%v, %v), want (%v, %v)", tt.key, cam.RotationX, cam.RotationY, tt.rotX, tt.rotY)
		}
	}

	// Letters are commands, not directions.
	m, _ := testModel(t)
	for _, k := range []string{"h", "j", "k"} {
		m = update(t, m, runeKey(k))
	}
	if cam := m.Globe().Camera(); cam.RotationX != 0 || cam.RotationY != 0 {
		t.Errorf("letter keys rotated the camera: %+v", cam)
	}
}

func TestModel_ResetClearsCameraAndSelection(t *testing.T) {
	m, mgr := testModel(t)
	m = update(t, m, runeKey("n"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, runeKey("-"))

	m = update(t, m, runeKey("r"))

	if cam := m.Globe().Camera(); cam != geo.DefaultCamera() {
		t.Errorf("camera after reset = %+v", cam)
	}
	if sel := mgr.Selection(); sel != (state.Selection{}) {
		t.Errorf("selection after reset = %+v", sel)
	}
}

func TestModel_CycleSelection(t *testing.T) {
	m, mgr := testModel(t)

	next, cmd := m.Update(runeKey("n"))
	m = next.(Model)
	if got := mgr.Selection().SelectedID; got != "front" {
		t.Errorf("first n selected %q, want front", got)
	}
	if cmd == nil {
		t.Error("selection should start the fly-to animation")
	}

	m = update(t, m, runeKey("n"))
	if got := mgr.Selection().SelectedID; got != "back" {
		t.Errorf("second n selected %q, want back", got)
	}

	m = update(t, m, runeKey("p"))
	m = update(t, m, runeKey("p"))
	if got := mgr.Selection().SelectedID; got != "north" {
		t.Errorf("p should wrap to last, got %q", got)
	}

	update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if sel := mgr.Selection(); sel.SelectedID != "" {
		t.Errorf("esc left selection %+v", sel)
	}
}

func TestModel_FlyToFinishes(t *testing.T) {
	m, _ := testModel(t)
	m = update(t, m, runeKey("n"))
	m = update(t, m, runeKey("n")) // back, lon -90

	g := m.globe
	g.flyStart = time.Now().Add(-time.Second)
	m.globe = g

	next, cmd := m.Update(flyTickMsg(time.Now()))
	m = next.(Model)

	if got := m.Globe().Camera().RotationY; math.Abs(got-FacingRotation(-90)) > 1e-9 {
		t.Errorf("RotationY after fly = %v, want %v", got, FacingRotation(-90))
	}
	if cmd != nil {
		t.Error("finished animation should not schedule another frame")
	}
}

func TestModel_LabelToggleSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), settings.FileName)

	cat := geo.DefaultCatalog()
	s := settings.Default()
	s.Animate = false
	m := New(state.NewManager(cat, state.DefaultConfig()), Options{Settings: s, SettingsPath: path})

	next, cmd := m.Update(runeKey("l"))
	m = next.(Model)
	if got := m.Settings().LabelMode; got != settings.LabelsAll {
		t.Errorf("label mode = %q, want all", got)
	}
	if cmd == nil {
		t.Fatal("toggle should return a save command")
	}

	// Run the batch and the save it contains.
	var saved bool
	for _, c := range flattenCmd(cmd) {
		if msg, ok := c().(settingsSavedMsg); ok {
			saved = true
			if msg.err != nil {
				t.Errorf("save failed: %v", msg.err)
			}
		}
	}
	if !saved {
		t.Fatal("no settingsSavedMsg produced")
	}

	loaded, err := settings.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.LabelMode != settings.LabelsAll {
		t.Errorf("saved label mode = %q", loaded.LabelMode)
	}
}

func TestModel_StarsToggleSurvivesReload(t *testing.T) {
	t.Setenv("LS_BLOOM_STARS", "true")
	path := filepath.Join(t.TempDir(), settings.FileName)

	s := settings.Default().ApplyEnv()
	s.Animate = false
	m := New(state.NewManager(geo.DefaultCatalog(), state.DefaultConfig()), Options{Settings: s, SettingsPath: path})

	next, cmd := m.Update(runeKey("t"))
	m = next.(Model)
	for _, c := range flattenCmd(cmd) {
		c()
	}

	// The watcher reloads our own save.
	loaded, err := settings.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	m = update(t, m, SettingsChangedMsg{Settings: loaded})
	if m.Settings().ShowStars {
		t.Error("stars toggled off came back on after reload")
	}
}

func TestModel_SettingsReload(t *testing.T) {
	m, _ := testModel(t)

	s := m.Settings()
	s.ShowStars = false
	s.LabelMode = settings.LabelsNone
	m = update(t, m, SettingsChangedMsg{Settings: s})

	if m.Settings().ShowStars || m.Settings().LabelMode != settings.LabelsNone {
		t.Errorf("settings not applied: %+v", m.Settings())
	}
	if !strings.Contains(m.View(), "settings reloaded") {
		t.Error("reload status missing")
	}
}

func TestModel_AnimationToggle(t *testing.T) {
	m, _ := testModel(t)

	next, cmd := m.Update(runeKey("a"))
	m = next.(Model)
	if !m.Settings().Animate || !m.ticking {
		t.Fatal("animation should be on and ticking")
	}
	if cmd == nil {
		t.Error("enabling animation should schedule a tick")
	}

	m = update(t, m, AnimTickMsg(time.Now()))
	if m.animTick != 1 {
		t.Errorf("animTick = %d, want 1", m.animTick)
	}

	m = update(t, m, runeKey("a"))
	m = update(t, m, AnimTickMsg(time.Now()))
	if m.ticking || m.animTick != 1 {
		t.Errorf("tick after disabling: ticking=%v animTick=%d", m.ticking, m.animTick)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := testModel(t)
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

// flattenCmd expands nested batches into their leaf commands.
func flattenCmd(cmd tea.Cmd) []tea.Cmd {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Cmd{func() tea.Msg { return msg }}
	}
	var out []tea.Cmd
	for _, c := range batch {
		out = append(out, flattenCmd(c)...)
	}
	return out
}

// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-bloom/internal/geo"
	"github.com/litescript/ls-bloom/internal/logging"
	"github.com/litescript/ls-bloom/internal/render"
	"github.com/litescript/ls-bloom/internal/settings"
	"github.com/litescript/ls-bloom/internal/state"
	"github.com/litescript/ls-bloom/internal/version"
)

// Layout rows outside the globe.
const (
	headerHeight = 3
	footerHeight = 2
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg advances the marker pulse.
	AnimTickMsg time.Time

	// SettingsChangedMsg carries settings reloaded from disk.
	SettingsChangedMsg struct {
		Settings settings.Settings
		Err      error
	}

	// settingsSavedMsg reports the result of a background save.
	settingsSavedMsg struct {
		err error
	}
)

// Options configures the root model.
type Options struct {
	Settings     settings.Settings
	SettingsPath string // empty disables saving
	Camera       geo.Camera
	Logger       *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state        *state.Manager
	settingsPath string
	logger       *logging.Logger

	// UI state
	width     int
	height    int
	ready     bool
	settings  settings.Settings
	statusMsg string
	animTick  int
	ticking   bool // an AnimTickMsg is in flight

	// Sub-models
	globe GlobeModel
	panel PanelModel
	keys  keyMap
	help  help.Model
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	s := opts.Settings
	s.Validate()

	globe := NewGlobeModel(stateMgr, s.DragSensitivity)
	if opts.Camera != (geo.Camera{}) {
		globe = globe.SetCamera(opts.Camera)
	}

	m := Model{
		state:        stateMgr,
		settingsPath: opts.SettingsPath,
		logger:       logger,
		globe:        globe,
		panel:        NewPanelModel(),
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
	m.applySettings(s)
	m.ticking = s.Animate // Init starts the first tick

	stateMgr.OnSelect(func(p geo.GeoPoint) {
		logger.Info("Selected %s (%s) intensity=%.2f", p.ID, p.Label(), p.Intensity)
	})
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.settings.Animate {
		return animTickCmd()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.globe, cmd = m.globe.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width

		contentHeight := msg.Height - headerHeight - footerHeight
		if contentHeight < 0 {
			contentHeight = 0
		}
		globeWidth := msg.Width - panelWidth
		if globeWidth < 0 {
			globeWidth = 0
		}
		m.globe = m.globe.SetSize(globeWidth, contentHeight).SetOrigin(0, headerHeight)
		m.panel = m.panel.SetSize(contentHeight)

	case AnimTickMsg:
		if !m.settings.Animate {
			m.ticking = false
			break
		}
		m.animTick++
		m.globe = m.globe.Advance()
		cmds = append(cmds, animTickCmd())

	case SettingsChangedMsg:
		if msg.Err != nil {
			m.logger.Warn("Settings reload failed: %v", msg.Err)
			m.statusMsg = "settings reload failed: " + msg.Err.Error()
			break
		}
		m.applySettings(msg.Settings)
		m.statusMsg = "settings reloaded"
		cmds = append(cmds, m.startAnimation())

	case settingsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("Settings save failed: %v", msg.err)
			m.statusMsg = "settings not saved: " + msg.err.Error()
		}

	default:
		var cmd tea.Cmd
		m.globe, cmd = m.globe.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.globe = m.globe.Rotate(-rotateStep, 0)
	case key.Matches(msg, m.keys.Down):
		m.globe = m.globe.Rotate(rotateStep, 0)
	case key.Matches(msg, m.keys.Left):
		m.globe = m.globe.Rotate(0, -rotateStep)
	case key.Matches(msg, m.keys.Right):
		m.globe = m.globe.Rotate(0, rotateStep)

	case key.Matches(msg, m.keys.ZoomIn):
		m.globe = m.globe.Zoom(-1)
	case key.Matches(msg, m.keys.ZoomOut):
		m.globe = m.globe.Zoom(1)

	case key.Matches(msg, m.keys.Reset):
		m.globe = m.globe.Reset()
		m.statusMsg = ""

	case key.Matches(msg, m.keys.Next):
		return m.cycleSelection(1)
	case key.Matches(msg, m.keys.Prev):
		return m.cycleSelection(-1)
	case key.Matches(msg, m.keys.Clear):
		m.state.ClearSelection()

	case key.Matches(msg, m.keys.Labels):
		s := m.settings
		s.LabelMode = render.ParseLabelMode(s.LabelMode).Next().String()
		return m.changeSettings(s)
	case key.Matches(msg, m.keys.Stars):
		s := m.settings
		s.ShowStars = !s.ShowStars
		return m.changeSettings(s)
	case key.Matches(msg, m.keys.Animate):
		s := m.settings
		s.Animate = !s.Animate
		return tea.Batch(m.changeSettings(s), m.startAnimation())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// cycleSelection selects the next or previous catalog point and flies to it.
func (m *Model) cycleSelection(step int) tea.Cmd {
	cat := m.state.Catalog()
	if cat.Len() == 0 {
		return nil
	}
	idx := cat.IndexOf(m.state.Selection().SelectedID)
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = cat.Len() - 1
	default:
		idx = (idx + step + cat.Len()) % cat.Len()
	}

	p := cat.Points()[idx]
	if err := m.state.SelectPoint(p.ID); err != nil {
		m.logger.Error("Select %s: %v", p.ID, err)
		return nil
	}
	var cmd tea.Cmd
	m.globe, cmd = m.globe.FlyTo(p)
	return cmd
}

// startAnimation starts the pulse tick unless one is already running.
func (m *Model) startAnimation() tea.Cmd {
	if !m.settings.Animate || m.ticking {
		return nil
	}
	m.ticking = true
	return animTickCmd()
}

// applySettings pushes settings into the sub-models.
func (m *Model) applySettings(s settings.Settings) {
	s.Validate()
	m.settings = s
	m.globe = m.globe.
		SetLabels(render.ParseLabelMode(s.LabelMode)).
		SetShowStars(s.ShowStars).
		SetHitRadius(s.HitRadius).
		SetSensitivity(s.DragSensitivity)
}

// changeSettings applies s and saves it in the background.
func (m *Model) changeSettings(s settings.Settings) tea.Cmd {
	m.applySettings(s)
	m.statusMsg = fmt.Sprintf("labels: %s · stars: %s · animate: %s",
		m.settings.LabelMode, onOff(m.settings.ShowStars), onOff(m.settings.Animate))
	return saveSettingsCmd(m.settingsPath, m.settings)
}

// Settings returns the settings in effect.
func (m Model) Settings() settings.Settings {
	return m.settings
}

// Globe returns the globe sub-model.
func (m Model) Globe() GlobeModel {
	return m.globe
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		m.globe.View(),
		m.panel.View(m.state, m.globe.Camera()),
	)
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := " ls-bloom "
	var b strings.Builder
	b.WriteString(" ")
	runes := []rune(title)
	for i, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(i, len(runes))))
		b.WriteString(style.Render(string(r)))
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf(" Bloom Prediction Globe · %d sites · v%s",
		m.state.Catalog().Len(), version.Version)))
	b.WriteString("\n")

	if m.statusMsg != "" {
		b.WriteString(" " + muted.Render(m.statusMsg))
	}
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient.
// Blue -> purple -> magenta -> pink
func gradientColor(col, width int) string {
	stops := []colorful.Color{
		{R: 59.0 / 255, G: 130.0 / 255, B: 246.0 / 255},
		{R: 139.0 / 255, G: 92.0 / 255, B: 246.0 / 255},
		{R: 217.0 / 255, G: 70.0 / 255, B: 239.0 / 255},
		{R: 236.0 / 255, G: 72.0 / 255, B: 153.0 / 255},
	}
	if width <= 1 {
		return stops[0].Hex()
	}
	t := float64(col) / float64(width-1) * float64(len(stops)-1)
	i := int(t)
	if i >= len(stops)-1 {
		return stops[len(stops)-1].Hex()
	}
	return stops[i].BlendLab(stops[i+1], t-float64(i)).Clamped().Hex()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	// Animated pulse frames
	frames := []string{"·", "•", "●", "•"}
	pulse := frames[m.animTick%len(frames)]
	if !m.settings.Animate {
		pulse = "○"
	}

	visible := 0
	for _, pp := range m.globe.Projected() {
		if pp.Visible {
			visible++
		}
	}
	status := accentStyle.Render(pulse) + dimStyle.Render(fmt.Sprintf(" %d/%d facing · %s",
		visible, m.state.Catalog().Len(), m.globe.DragState()))

	return "  " + status + "  " + dimStyle.Render("|") + "  " + m.help.View(m.keys)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

func saveSettingsCmd(path string, s settings.Settings) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return settingsSavedMsg{err: s.Save(path)}
	}
}


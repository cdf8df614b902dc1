package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-bloom/internal/export"
	"github.com/litescript/ls-bloom/internal/geo"
	"github.com/litescript/ls-bloom/internal/state"
)

// panelWidth is the side panel width in cells, border included.
const panelWidth = 36

var (
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7B2CBF")).
			Padding(0, 1)
	panelTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDE68A")).Bold(true)
	panelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	panelValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9D5FF"))
	panelTag   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B0B1A")).Background(lipgloss.Color("#EC4899")).Padding(0, 1)
	panelDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statusColors = map[geo.Status]lipgloss.Color{
		geo.StatusForecast: lipgloss.Color("#60A5FA"),
		geo.StatusEmerging: lipgloss.Color("#A3E635"),
		geo.StatusPeak:     lipgloss.Color("#EC4899"),
		geo.StatusWaning:   lipgloss.Color("#F59E0B"),
	}
)

// PanelModel shows the focused bloom site and recent interactions.
type PanelModel struct {
	height int
	bar    progress.Model
}

// NewPanelModel creates the side panel.
func NewPanelModel() PanelModel {
	return PanelModel{
		bar: progress.New(
			progress.WithGradient("#FDE68A", "#EC4899"),
			progress.WithWidth(panelWidth-18),
			progress.WithoutPercentage(),
		),
	}
}

// SetSize updates the panel height; width is fixed.
func (m PanelModel) SetSize(height int) PanelModel {
	m.height = height
	return m
}

// View renders the panel for the session's current focus.
func (m PanelModel) View(session *state.Manager, cam geo.Camera) string {
	var b strings.Builder

	p, ok := session.Focused()
	sel := session.Selection()
	if !ok {
		b.WriteString(panelTitle.Render("No site selected"))
		b.WriteString("\n\n")
		b.WriteString(panelDim.Render("Hover a marker to preview it,\nclick or press n to select."))
		b.WriteString("\n")
	} else {
		tag := "SELECTED"
		if sel.HoveredID == p.ID && sel.SelectedID != p.ID {
			tag = "HOVER"
		}
		b.WriteString(panelTitle.Render(truncate(p.Label(), panelWidth-16)))
		b.WriteString(" ")
		b.WriteString(panelTag.Render(tag))
		b.WriteString("\n")
		b.WriteString(panelDim.Render(p.ID))
		b.WriteString("\n\n")

		m.field(&b, "Region", p.Region)
		m.field(&b, "Location", export.FormatLatitude(p.Latitude)+" "+export.FormatLongitude(p.Longitude))
		m.field(&b, "Type", p.BloomType)
		m.field(&b, "Peak", p.PeakWindow)
		if p.Status != "" {
			style := panelValue
			if c, ok := statusColors[p.Status]; ok {
				style = lipgloss.NewStyle().Foreground(c).Bold(true)
			}
			b.WriteString(panelLabel.Render(fmt.Sprintf("%-9s", "Status")))
			b.WriteString(style.Render(string(p.Status)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		m.meter(&b, "Intensity", p.Intensity)
		m.meter(&b, "Conf.", p.Confidence)
	}

	b.WriteString("\n")
	b.WriteString(panelLabel.Render(fmt.Sprintf("rot %+.0f° / %+.0f°  zoom %.2fx",
		geo.NormalizeAngle(cam.RotationX), geo.NormalizeAngle(cam.RotationY), cam.Zoom)))
	b.WriteString("\n")

	// Recent interactions fill whatever height remains.
	if n := m.height - strings.Count(b.String(), "\n") - 5; n > 0 {
		events := session.RecentEvents(n)
		if len(events) > 0 {
			b.WriteString("\n")
			b.WriteString(panelLabel.Render("Recent"))
			b.WriteString("\n")
			for i := len(events) - 1; i >= 0; i-- {
				b.WriteString(panelDim.Render(formatEvent(events[i])))
				b.WriteString("\n")
			}
		}
	}

	style := panelBorder.Width(panelWidth - 2)
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m PanelModel) field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(panelLabel.Render(fmt.Sprintf("%-9s", label)))
	b.WriteString(panelValue.Render(truncate(value, panelWidth-13)))
	b.WriteString("\n")
}

func (m PanelModel) meter(b *strings.Builder, label string, v float64) {
	b.WriteString(panelLabel.Render(fmt.Sprintf("%-9s", label)))
	b.WriteString(m.bar.ViewAs(v))
	b.WriteString(panelValue.Render(fmt.Sprintf(" %3.0f%%", v*100)))
	b.WriteString("\n")
}

func formatEvent(e state.Event) string {
	ts := e.Timestamp.Format("15:04:05")
	switch e.Type {
	case state.EventSelected:
		return fmt.Sprintf("%s select %s", ts, truncate(e.PointID, 16))
	case state.EventHovered:
		return fmt.Sprintf("%s hover  %s", ts, truncate(e.PointID, 16))
	case state.EventCleared:
		return ts + " cleared"
	case state.EventReset:
		return ts + " reset"
	default:
		return ts + " " + string(e.Type)
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}

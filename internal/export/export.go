// Package export renders globe state for headless use: JSON snapshots,
// summary tables and plain-text mini globes.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-bloom/internal/geo"
)

// SnapshotExport is the JSON-serializable view of one camera position.
type SnapshotExport struct {
	Timestamp  time.Time      `json:"timestamp"`
	Camera     geo.Camera     `json:"camera"`
	Viewport   ViewportExport `json:"viewport"`
	SelectedID string         `json:"selected_id,omitempty"`
	Points     []PointExport  `json:"points"`
}

// ViewportExport is a JSON-friendly viewport.
type ViewportExport struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Radius  float64 `json:"radius"`
}

// PointExport is a bloom site with its projection for the exported camera.
type PointExport struct {
	geo.GeoPoint
	ScreenX float64 `json:"screen_x"`
	ScreenY float64 `json:"screen_y"`
	Visible bool    `json:"visible"`
}

// Snapshot projects points for cam and vp.
func Snapshot(points []geo.GeoPoint, cam geo.Camera, vp geo.Viewport, at time.Time) *SnapshotExport {
	s := &SnapshotExport{
		Timestamp: at,
		Camera:    cam,
		Viewport:  ViewportExport{CenterX: vp.CenterX, CenterY: vp.CenterY, Radius: vp.Radius},
		Points:    make([]PointExport, 0, len(points)),
	}
	for i, pp := range geo.ProjectAll(points, cam, vp) {
		s.Points = append(s.Points, PointExport{
			GeoPoint: points[i],
			ScreenX:  pp.ScreenX,
			ScreenY:  pp.ScreenY,
			Visible:  pp.Visible,
		})
	}
	return s
}

// VisibleCount returns how many exported points face the viewer.
func (s *SnapshotExport) VisibleCount() int {
	n := 0
	for _, p := range s.Points {
		if p.Visible {
			n++
		}
	}
	return n
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	ID         string
	Name       string
	Region     string
	Lat        string
	Lon        string
	Intensity  float64
	Confidence float64
	Status     string
	Side       string
}

// GenerateSummaryRows creates one row per exported point.
func GenerateSummaryRows(s *SnapshotExport) []SummaryRow {
	if s == nil {
		return nil
	}
	rows := make([]SummaryRow, 0, len(s.Points))
	for _, p := range s.Points {
		side := "far"
		if p.Visible {
			side = "near"
		}
		rows = append(rows, SummaryRow{
			ID:         p.ID,
			Name:       p.Label(),
			Region:     p.Region,
			Lat:        FormatLatitude(p.Latitude),
			Lon:        FormatLongitude(p.Longitude),
			Intensity:  p.Intensity,
			Confidence: p.Confidence,
			Status:     string(p.Status),
			Side:       side,
		})
	}
	return rows
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, s *SnapshotExport) {
	rows := GenerateSummaryRows(s)

	ts := time.Time{}
	if s != nil {
		ts = s.Timestamp
	}
	fmt.Fprintf(w, "Bloom Sites @ %s\n", ts.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 96))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No bloom sites")
		return
	}

	// Header
	fmt.Fprintf(w, "%-16s %-20s %-12s %-7s %-8s %-6s %-5s %-9s %-4s\n",
		"ID", "Name", "Region", "Lat", "Lon", "Inten", "Conf", "Status", "Side")
	fmt.Fprintln(w, strings.Repeat("─", 96))

	for _, r := range rows {
		fmt.Fprintf(w, "%-16s %-20s %-12s %-7s %-8s %5.0f%% %4.0f%% %-9s %-4s\n",
			truncateStr(r.ID, 16),
			truncateStr(r.Name, 20),
			truncateStr(r.Region, 12),
			r.Lat,
			r.Lon,
			r.Intensity*100,
			r.Confidence*100,
			truncateStr(r.Status, 9),
			r.Side,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d sites, %d facing viewer (rotY %.0f°, zoom %.2fx)\n",
		len(rows), s.VisibleCount(), s.Camera.RotationY, s.Camera.Zoom)
}

// FormatLatitude formats degrees as e.g. "23.7°N".
func FormatLatitude(lat float64) string {
	h := "N"
	if lat < 0 {
		h = "S"
		lat = -lat
	}
	return fmt.Sprintf("%.1f°%s", lat, h)
}

// FormatLongitude formats degrees as e.g. "90.4°E".
func FormatLongitude(lon float64) string {
	h := "E"
	if lon < 0 {
		h = "W"
		lon = -lon
	}
	return fmt.Sprintf("%.1f°%s", lon, h)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}

package export

import (
	"fmt"
	"io"

	"github.com/litescript/ls-bloom/internal/geo"
	"github.com/litescript/ls-bloom/internal/render"
)

// MiniOptions controls WriteMiniGlobe.
type MiniOptions struct {
	Cols, Rows int
	Color      bool // ANSI half-block output instead of plain text
	Stars      bool
	Labels     render.LabelMode
	SelectedID string
}

// DefaultMiniOptions is a 60x24 plain-text globe with all labels.
func DefaultMiniOptions() MiniOptions {
	return MiniOptions{Cols: 60, Rows: 24, Labels: render.LabelAll}
}

// WriteMiniGlobe renders one still frame of the globe to w.
func WriteMiniGlobe(w io.Writer, points []geo.GeoPoint, cam geo.Camera, opts MiniOptions) error {
	if opts.Cols <= 0 || opts.Rows <= 0 {
		return fmt.Errorf("mini globe size %dx%d must be positive", opts.Cols, opts.Rows)
	}

	surface := render.NewCellSurface(opts.Cols, opts.Rows)
	render.NewRenderer().Render(surface, render.Frame{
		Camera:     cam,
		Points:     points,
		Time:       1.5, // pulse near its peak so markers read well in a still
		SelectedID: opts.SelectedID,
		Labels:     opts.Labels,
		ShowStars:  opts.Stars,
	})

	out := surface.Plain()
	if opts.Color {
		out = surface.Render()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

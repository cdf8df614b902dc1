package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-bloom/internal/export"
	"github.com/litescript/ls-bloom/internal/geo"
	"github.com/litescript/ls-bloom/internal/render"
	"github.com/litescript/ls-bloom/internal/state"
)

// headlessViewport places the sphere on the default mini globe surface.
func headlessViewport() geo.Viewport {
	d := export.DefaultMiniOptions()
	return geo.ViewportFor(d.Cols, d.Rows*2, render.ViewportFill)
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print a table of bloom sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			snap := export.Snapshot(cat.Points(), opts.camera(), headlessViewport(), time.Now().UTC())
			export.WriteSummaryTable(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export bloom sites with their projection as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			snap := export.Snapshot(cat.Points(), opts.camera(), headlessViewport(), time.Now().UTC())

			if out == "-" || out == "" {
				if err := snap.WriteJSON(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
				return nil
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := snap.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
			opts.logger.Info("Wrote snapshot of %d sites to %s", len(snap.Points), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "-", "Output file (use - for stdout)")
	return cmd
}

// miniOptions are the mini command's own flags.
type miniOptions struct {
	cols, rows int
	plain      bool
	stars      bool
	labels     string
	selectID   string
	spin       time.Duration
	step       float64
}

func newMiniCmd(opts *rootOptions) *cobra.Command {
	d := export.DefaultMiniOptions()
	mo := miniOptions{}

	cmd := &cobra.Command{
		Use:   "mini",
		Short: "Draw the globe once as text",
		Long: `Draw one frame of the globe to stdout. Output is coloured half-blocks
on a terminal and plain ASCII shading otherwise. With --spin the globe is
redrawn at that interval, rotating by --step degrees each time, until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMini(cmd.Context(), cmd.OutOrStdout(), opts, mo)
		},
	}

	f := cmd.Flags()
	f.IntVar(&mo.cols, "cols", d.Cols, "Width in terminal cells")
	f.IntVar(&mo.rows, "rows", d.Rows, "Height in terminal cells")
	f.BoolVar(&mo.plain, "plain", false, "Force plain ASCII output")
	f.BoolVar(&mo.stars, "stars", d.Stars, "Draw the background starfield")
	f.StringVar(&mo.labels, "labels", d.Labels.String(), "Labels: none, focus, all")
	f.StringVar(&mo.selectID, "select", "", "Highlight the site with this id")
	f.DurationVar(&mo.spin, "spin", 0, "Redraw at this interval while rotating (e.g. 500ms)")
	f.Float64Var(&mo.step, "step", 15, "Degrees to rotate per --spin frame")
	return cmd
}

func runMini(ctx context.Context, w io.Writer, opts *rootOptions, mo miniOptions) error {
	cat, err := opts.loadCatalog()
	if err != nil {
		return err
	}

	if mo.selectID != "" {
		if _, ok := cat.Get(mo.selectID); !ok {
			return fmt.Errorf("select %q: %w", mo.selectID, state.ErrUnknownPoint)
		}
	}

	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}

	eo := export.MiniOptions{
		Cols:       mo.cols,
		Rows:       mo.rows,
		Color:      isTTY && !mo.plain,
		Stars:      mo.stars,
		Labels:     render.ParseLabelMode(mo.labels),
		SelectedID: mo.selectID,
	}
	cam := opts.camera()

	// Single frame
	if mo.spin <= 0 {
		return export.WriteMiniGlobe(w, cat.Points(), cam, eo)
	}

	// Spin mode: redraw at interval
	if err := export.WriteMiniGlobe(w, cat.Points(), cam, eo); err != nil {
		return err
	}

	ticker := time.NewTicker(mo.spin)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cam = cam.Rotate(0, mo.step)
			cam.RotationY = geo.NormalizeAngle(cam.RotationY)
			fmt.Fprintln(w) // Blank line between frames
			if err := export.WriteMiniGlobe(w, cat.Points(), cam, eo); err != nil {
				return err
			}
		}
	}
}

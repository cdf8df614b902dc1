// Command ls-bloom is a terminal globe for exploring bloom predictions.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-bloom/internal/geo"
	"github.com/litescript/ls-bloom/internal/logging"
	"github.com/litescript/ls-bloom/internal/settings"
	"github.com/litescript/ls-bloom/internal/state"
	"github.com/litescript/ls-bloom/internal/ui"
	"github.com/litescript/ls-bloom/internal/version"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	logLevel   string
	logFile    string
	configPath string
	pointsPath string
	rotateY    float64
	rotateX    float64
	zoom       float64

	logger  *logging.Logger
	logSink *os.File
}

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ls-bloom",
		Short: "Interactive bloom-prediction globe for the terminal",
		Long: `ls-bloom renders a rotating globe of predicted bloom sites.

Drag to rotate, scroll to zoom, hover or click a marker to inspect it.
Run without arguments to start the interactive globe; use the subcommands
for plain-text output suitable for scripts and logs.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initLogger(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.closeLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFile, "log-file", "", "Write logs to this file (the globe UI logs nowhere otherwise)")
	pf.StringVar(&opts.configPath, "config", "", "Settings file (default: user config dir)")
	pf.StringVar(&opts.pointsPath, "points", "", "YAML catalog of bloom sites to show instead of the built-in set")
	pf.Float64Var(&opts.rotateY, "rotate-y", 0, "Initial spin about the polar axis, degrees")
	pf.Float64Var(&opts.rotateX, "rotate-x", 0, "Initial tilt, degrees")
	pf.Float64Var(&opts.zoom, "zoom", 1, "Initial zoom (0.5 - 3.0)")

	root.AddCommand(newSummaryCmd(opts))
	root.AddCommand(newSnapshotCmd(opts))
	root.AddCommand(newMiniCmd(opts))
	return root
}

// initLogger builds the logger. The interactive globe owns the terminal,
// so it only logs when --log-file is given.
func (o *rootOptions) initLogger(cmd *cobra.Command) error {
	level := logging.ParseLevel(o.logLevel)

	if o.logFile != "" {
		if err := os.MkdirAll(filepath.Dir(o.logFile), 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		o.logSink = f
		o.logger = logging.New(level)
		o.logger.SetOutput(f)
		return nil
	}

	if !cmd.HasParent() {
		o.logger = logging.Discard()
		return nil
	}
	o.logger = logging.New(level)
	o.logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

func (o *rootOptions) closeLogger() {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
	if o.logSink != nil {
		_ = o.logSink.Close()
		o.logSink = nil
	}
}

// loadCatalog returns the --points catalog or the built-in one.
func (o *rootOptions) loadCatalog() (*geo.Catalog, error) {
	if o.pointsPath == "" {
		return geo.DefaultCatalog(), nil
	}
	f, err := os.Open(o.pointsPath)
	if err != nil {
		return nil, fmt.Errorf("open points: %w", err)
	}
	defer f.Close()

	cat, err := geo.LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("load points %s: %w", o.pointsPath, err)
	}
	o.logger.Debug("Loaded %d points from %s", cat.Len(), o.pointsPath)
	return cat, nil
}

// camera returns the initial camera from flags.
func (o *rootOptions) camera() geo.Camera {
	return geo.Camera{
		RotationX: o.rotateX,
		RotationY: o.rotateY,
		Zoom:      geo.ClampZoom(o.zoom),
	}
}

// settingsPath resolves --config or the default location.
func (o *rootOptions) settingsPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return settings.DefaultPath()
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	logger := opts.logger

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cat, err := opts.loadCatalog()
	if err != nil {
		return err
	}

	path, err := opts.settingsPath()
	if err != nil {
		logger.Warn("Settings disabled: %v", err)
	}
	prefs := settings.Default()
	if path != "" {
		prefs, err = settings.Load(path)
		if err != nil {
			logger.Warn("Using default settings: %v", err)
		}
	}
	prefs = prefs.ApplyEnv()

	stateMgr := state.NewManager(cat, state.DefaultConfig())
	model := ui.New(stateMgr, ui.Options{
		Settings:     prefs,
		SettingsPath: path,
		Camera:       opts.camera(),
		Logger:       logger,
	})

	// Create Bubble Tea program
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	// Reload settings edited outside the app
	if path != "" {
		go func() {
			err := settings.Watch(ctx, path, func(s settings.Settings, err error) {
				p.Send(ui.SettingsChangedMsg{Settings: s, Err: err})
			})
			if err != nil {
				logger.Debug("Settings watcher not running: %v", err)
			}
		}()
	}

	logger.Info("Starting globe with %d sites", cat.Len())

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

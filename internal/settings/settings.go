// Package settings loads and saves user preferences for the globe viewer.
package settings

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Label modes as written in the settings file.
const (
	LabelsNone  = "none"
	LabelsFocus = "focus"
	LabelsAll   = "all"
)

// Limits applied by Validate.
const (
	MinDragSensitivity = 0.05
	MaxDragSensitivity = 5.0
	MinHitRadius       = 0.5
	MaxHitRadius       = 40.0
)

// FileName is the settings file name inside the config directory.
const FileName = "settings.yaml"

// Settings are the persisted viewer preferences.
type Settings struct {
	LabelMode       string  `yaml:"label_mode" json:"label_mode"`
	ShowStars       bool    `yaml:"show_stars" json:"show_stars"`
	Animate         bool    `yaml:"animate" json:"animate"`
	DragSensitivity float64 `yaml:"drag_sensitivity" json:"drag_sensitivity"` // degrees per pixel
	HitRadius       float64 `yaml:"hit_radius" json:"hit_radius"`             // pixels
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		LabelMode:       LabelsFocus,
		ShowStars:       true,
		Animate:         true,
		DragSensitivity: 0.5,
		HitRadius:       3,
	}
}

// Validate normalizes out-of-range values in place and reports what it changed.
// Settings are always usable after Validate.
func (s *Settings) Validate() []string {
	var fixed []string
	d := Default()

	switch strings.ToLower(strings.TrimSpace(s.LabelMode)) {
	case LabelsNone, "off":
		s.LabelMode = LabelsNone
	case LabelsAll:
		s.LabelMode = LabelsAll
	case LabelsFocus, "focused":
		s.LabelMode = LabelsFocus
	default:
		fixed = append(fixed, fmt.Sprintf("label_mode %q -> %q", s.LabelMode, d.LabelMode))
		s.LabelMode = d.LabelMode
	}

	if s.DragSensitivity == 0 || math.IsNaN(s.DragSensitivity) {
		fixed = append(fixed, "drag_sensitivity unset")
		s.DragSensitivity = d.DragSensitivity
	} else if c := clamp(s.DragSensitivity, MinDragSensitivity, MaxDragSensitivity); c != s.DragSensitivity {
		fixed = append(fixed, fmt.Sprintf("drag_sensitivity %g -> %g", s.DragSensitivity, c))
		s.DragSensitivity = c
	}

	if s.HitRadius == 0 || math.IsNaN(s.HitRadius) {
		fixed = append(fixed, "hit_radius unset")
		s.HitRadius = d.HitRadius
	} else if c := clamp(s.HitRadius, MinHitRadius, MaxHitRadius); c != s.HitRadius {
		fixed = append(fixed, fmt.Sprintf("hit_radius %g -> %g", s.HitRadius, c))
		s.HitRadius = c
	}

	return fixed
}

// DefaultPath returns the settings path under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "ls-bloom", FileName), nil
}

// Load reads settings from path. A missing file yields defaults.
// Keys absent from the file keep their default values. Environment
// overrides are not applied; see ApplyEnv.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	s.Validate()
	return s, nil
}

// Save writes settings to path, creating the parent directory. The file is
// written to a temporary name and renamed so readers never see a partial file.
func (s Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// ApplyEnv returns s with LS_BLOOM_* environment variables applied.
// It is applied once at startup; reloads from disk do not re-apply it, so
// a toggle saved by the app is not reverted by the environment.
func (s Settings) ApplyEnv() Settings {
	if v := os.Getenv("LS_BLOOM_LABELS"); v != "" {
		s.LabelMode = v
	}
	if v := os.Getenv("LS_BLOOM_STARS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.ShowStars = b
		}
	}
	if v := os.Getenv("LS_BLOOM_ANIMATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Animate = b
		}
	}
	s.Validate()
	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

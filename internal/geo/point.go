// Package geo provides the globe's reference data, camera state, spherical
// projection and pointer hit-testing.
package geo

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a point field falls outside its valid range.
var ErrOutOfRange = errors.New("value out of range")

// Status is the prediction status shown for a bloom site.
type Status string

const (
	StatusForecast Status = "FORECAST"
	StatusEmerging Status = "EMERGING"
	StatusPeak     Status = "PEAK"
	StatusWaning   Status = "WANING"
)

// GeoPoint is a labeled bloom site on the globe.
// Values are validated by NewGeoPoint and never mutated afterwards.
type GeoPoint struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Latitude   float64 `json:"latitude" yaml:"latitude"`     // -90..90
	Longitude  float64 `json:"longitude" yaml:"longitude"`   // -180..180
	Intensity  float64 `json:"intensity" yaml:"intensity"`   // 0..1, predicted bloom strength
	Confidence float64 `json:"confidence" yaml:"confidence"` // 0..1

	Region     string `json:"region,omitempty" yaml:"region"`
	BloomType  string `json:"bloom_type,omitempty" yaml:"bloom_type"`
	PeakWindow string `json:"peak_window,omitempty" yaml:"peak_window"`
	Status     Status `json:"status,omitempty" yaml:"status"`
}

// NewGeoPoint validates p and returns it unchanged if all ranges hold.
func NewGeoPoint(p GeoPoint) (GeoPoint, error) {
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// Validate checks identity and numeric ranges.
func (p GeoPoint) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("point %q: empty id", p.Name)
	}
	if err := checkRange("latitude", p.Latitude, -90, 90); err != nil {
		return fmt.Errorf("point %s: %w", p.ID, err)
	}
	if err := checkRange("longitude", p.Longitude, -180, 180); err != nil {
		return fmt.Errorf("point %s: %w", p.ID, err)
	}
	if err := checkRange("intensity", p.Intensity, 0, 1); err != nil {
		return fmt.Errorf("point %s: %w", p.ID, err)
	}
	if err := checkRange("confidence", p.Confidence, 0, 1); err != nil {
		return fmt.Errorf("point %s: %w", p.ID, err)
	}
	return nil
}

func checkRange(field string, v, lo, hi float64) error {
	// NaN fails both comparisons, so test for inclusion.
	if !(v >= lo && v <= hi) {
		return fmt.Errorf("%s %v not in [%v, %v]: %w", field, v, lo, hi, ErrOutOfRange)
	}
	return nil
}

// Label returns the short display label for a point.
func (p GeoPoint) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

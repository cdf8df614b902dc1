package geo

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDefaultCatalog_Valid(t *testing.T) {
	cat := DefaultCatalog()

	if cat.Len() == 0 {
		t.Fatal("DefaultCatalog() returned empty catalog")
	}
	for _, p := range cat.Points() {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", p.ID, err)
		}
	}

	p, ok := cat.Get("bd-sundarbans")
	if !ok {
		t.Fatal("expected Bangladesh site in default catalog")
	}
	if p.Latitude != 23.6850 || p.Longitude != 90.3563 {
		t.Errorf("Bangladesh at (%v, %v), want (23.6850, 90.3563)", p.Latitude, p.Longitude)
	}
}

func TestCatalog_PointsIsCopy(t *testing.T) {
	cat := DefaultCatalog()
	pts := cat.Points()
	pts[0].Name = "mutated"

	if cat.Points()[0].Name == "mutated" {
		t.Error("Points() should return a copy")
	}
}

func TestCatalog_IndexOf(t *testing.T) {
	cat := DefaultCatalog()
	for i, p := range cat.Points() {
		if got := cat.IndexOf(p.ID); got != i {
			t.Errorf("IndexOf(%s) = %d, want %d", p.ID, got, i)
		}
	}
	if got := cat.IndexOf("nope"); got != -1 {
		t.Errorf("IndexOf(nope) = %d, want -1", got)
	}
}

func TestNewGeoPoint_Ranges(t *testing.T) {
	tests := []struct {
		name string
		p    GeoPoint
		ok   bool
	}{
		{"valid", GeoPoint{ID: "a", Latitude: 10, Longitude: 20, Intensity: 0.5, Confidence: 0.5}, true},
		{"edges", GeoPoint{ID: "a", Latitude: -90, Longitude: 180, Intensity: 1, Confidence: 0}, true},
		{"empty id", GeoPoint{Latitude: 10}, false},
		{"lat high", GeoPoint{ID: "a", Latitude: 90.01}, false},
		{"lon low", GeoPoint{ID: "a", Longitude: -180.5}, false},
		{"intensity", GeoPoint{ID: "a", Intensity: 1.2}, false},
		{"confidence", GeoPoint{ID: "a", Confidence: -0.1}, false},
		{"nan", GeoPoint{ID: "a", Latitude: math.NaN()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeoPoint(tt.p)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
			if tt.p.ID != "" && !tt.ok && !errors.Is(err, ErrOutOfRange) {
				t.Errorf("error %v should wrap ErrOutOfRange", err)
			}
		})
	}
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]GeoPoint{{ID: "a"}, {ID: "a"}})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	src := `
points:
  - id: test-1
    name: Test Meadow
    latitude: 12.5
    longitude: -45
    intensity: 0.4
    confidence: 0.9
    bloom_type: Clover
    status: PEAK
  - id: test-2
    name: Other
    latitude: -3
    longitude: 100
    intensity: 1
    confidence: 0.2
`
	cat, err := LoadCatalog(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len = %d, want 2", cat.Len())
	}
	p, _ := cat.Get("test-1")
	if p.BloomType != "Clover" || p.Status != StatusPeak || p.Longitude != -45 {
		t.Errorf("unexpected point: %+v", p)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", "points: []\n"},
		{"bad yaml", "points: [\n"},
		{"out of range", "points:\n  - id: x\n    latitude: 95\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCatalog(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

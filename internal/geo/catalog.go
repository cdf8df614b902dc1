package geo

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Catalog is the immutable list of bloom sites shown on the globe.
type Catalog struct {
	points []GeoPoint
	index  map[string]int
}

// NewCatalog validates every point and rejects duplicate ids.
func NewCatalog(points []GeoPoint) (*Catalog, error) {
	c := &Catalog{
		points: make([]GeoPoint, 0, len(points)),
		index:  make(map[string]int, len(points)),
	}
	for _, p := range points {
		valid, err := NewGeoPoint(p)
		if err != nil {
			return nil, err
		}
		if _, dup := c.index[valid.ID]; dup {
			return nil, fmt.Errorf("duplicate point id %q", valid.ID)
		}
		c.index[valid.ID] = len(c.points)
		c.points = append(c.points, valid)
	}
	return c, nil
}

// DefaultCatalog returns the built-in bloom site catalog.
// The built-in data is known-good, so a validation failure is a programming error.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultPoints)
	if err != nil {
		panic(err)
	}
	return c
}

// catalogFile is the on-disk shape of a point catalog.
type catalogFile struct {
	Points []GeoPoint `yaml:"points"`
}

// LoadCatalog reads a YAML catalog of the form `points: [...]`.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Points) == 0 {
		return nil, fmt.Errorf("catalog has no points")
	}
	return NewCatalog(f.Points)
}

// Points returns a copy of the catalog's points in load order.
func (c *Catalog) Points() []GeoPoint {
	out := make([]GeoPoint, len(c.points))
	copy(out, c.points)
	return out
}

// Len returns the number of points.
func (c *Catalog) Len() int {
	return len(c.points)
}

// Get looks up a point by id.
func (c *Catalog) Get(id string) (GeoPoint, bool) {
	i, ok := c.index[id]
	if !ok {
		return GeoPoint{}, false
	}
	return c.points[i], true
}

// IndexOf returns the load-order index of id, or -1.
func (c *Catalog) IndexOf(id string) int {
	i, ok := c.index[id]
	if !ok {
		return -1
	}
	return i
}

// defaultPoints are illustrative bloom sites; values are not real forecasts.
var defaultPoints = []GeoPoint{
	{
		ID: "bd-sundarbans", Name: "Sundarbans", Latitude: 23.6850, Longitude: 90.3563,
		Intensity: 0.87, Confidence: 0.91, Region: "Bangladesh",
		BloomType: "Mangrove flowering", PeakWindow: "Apr 02 - Apr 20", Status: StatusPeak,
	},
	{
		ID: "us-central-valley", Name: "Central Valley", Latitude: 36.7783, Longitude: -119.4179,
		Intensity: 0.78, Confidence: 0.88, Region: "California, USA",
		BloomType: "Almond orchards", PeakWindow: "Feb 10 - Mar 05", Status: StatusWaning,
	},
	{
		ID: "jp-kyoto", Name: "Kyoto", Latitude: 35.0116, Longitude: 135.7681,
		Intensity: 0.92, Confidence: 0.84, Region: "Japan",
		BloomType: "Cherry blossom", PeakWindow: "Mar 28 - Apr 08", Status: StatusEmerging,
	},
	{
		ID: "nl-bollenstreek", Name: "Bollenstreek", Latitude: 52.2700, Longitude: 4.5500,
		Intensity: 0.81, Confidence: 0.93, Region: "Netherlands",
		BloomType: "Tulip fields", PeakWindow: "Apr 10 - May 01", Status: StatusForecast,
	},
	{
		ID: "fr-valensole", Name: "Valensole Plateau", Latitude: 43.8370, Longitude: 5.9830,
		Intensity: 0.69, Confidence: 0.79, Region: "Provence, France",
		BloomType: "Lavender", PeakWindow: "Jun 20 - Jul 20", Status: StatusForecast,
	},
	{
		ID: "za-namaqualand", Name: "Namaqualand", Latitude: -30.0000, Longitude: 17.8000,
		Intensity: 0.74, Confidence: 0.67, Region: "South Africa",
		BloomType: "Desert daisies", PeakWindow: "Aug 15 - Sep 15", Status: StatusForecast,
	},
	{
		ID: "cl-atacama", Name: "Atacama", Latitude: -27.3668, Longitude: -70.3314,
		Intensity: 0.46, Confidence: 0.52, Region: "Chile",
		BloomType: "Desierto florido", PeakWindow: "Sep 01 - Oct 30", Status: StatusForecast,
	},
	{
		ID: "in-punjab", Name: "Punjab Plains", Latitude: 30.9010, Longitude: 75.8573,
		Intensity: 0.63, Confidence: 0.81, Region: "India",
		BloomType: "Mustard", PeakWindow: "Jan 10 - Feb 15", Status: StatusWaning,
	},
	{
		ID: "au-wheatbelt", Name: "Wheatbelt", Latitude: -31.0000, Longitude: 117.0000,
		Intensity: 0.58, Confidence: 0.72, Region: "Western Australia",
		BloomType: "Everlastings", PeakWindow: "Aug 20 - Oct 10", Status: StatusForecast,
	},
}

package render

import (
	"math/rand"
	"sync"
)

// Star is one decorative background dot in surface pixels.
type Star struct {
	X, Y       float64
	Brightness float64 // 0.15..0.6, stars are kept dim
}

// Starfield generates a fixed random scatter of stars per surface size.
// The scatter is deterministic for a seed and regenerated only when the
// surface size changes.
type Starfield struct {
	count int
	seed  int64

	mu    sync.Mutex
	w, h  int
	stars []Star
}

// NewStarfield creates a starfield with count stars.
func NewStarfield(count int, seed int64) *Starfield {
	return &Starfield{count: count, seed: seed}
}

// For returns the stars for a w x h surface.
func (f *Starfield) For(w, h int) []Star {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stars != nil && f.w == w && f.h == h {
		return f.stars
	}

	rng := rand.New(rand.NewSource(f.seed))
	stars := make([]Star, f.count)
	for i := range stars {
		stars[i] = Star{
			X:          rng.Float64() * float64(w),
			Y:          rng.Float64() * float64(h),
			Brightness: 0.15 + rng.Float64()*0.45,
		}
	}
	f.w, f.h, f.stars = w, h, stars
	return stars
}

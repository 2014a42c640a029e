package sim

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
)

const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3
	// perlinScale sets how many noise features span the unit square.
	perlinScale = 4.0
	// perlinTries bounds rejection sampling before falling back to uniform.
	perlinTries = 32
)

// placer draws initial positions in [0,1)×[0,1).
type placer func() (x, y float64)

func newPlacer(kind string, rng *rand.Rand) placer {
	uniform := func() (float64, float64) {
		return rng.Float64(), rng.Float64()
	}
	if kind != PlacementPerlin {
		return uniform
	}

	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, rng.Int63())
	return func() (float64, float64) {
		for _i := 0; _i < perlinTries; _i++ {
			x, y := rng.Float64(), rng.Float64()
			// Noise2D is roughly in [-1, 1]; accept with probability mapped to [0, 1].
			density := (noise.Noise2D(x*perlinScale, y*perlinScale) + 1) / 2
			if rng.Float64() < density {
				return x, y
			}
		}
		return uniform()
	}
}

// randomPopulation creates count particles with ids 0..count-1.
func randomPopulation(cfg Config, rng *rand.Rand) []Particle {
	place := newPlacer(cfg.Placement, rng)
	ps := make([]Particle, cfg.Count)
	for i := range ps {
		x, y := place()
		ps[i] = NewParticle(uint32(i), x, y, ColorFor(cfg.Colors, rng.Float64()), cfg.Radius)
	}
	return ps
}

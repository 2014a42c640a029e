package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfig is wrapped by every construction-time validation failure.
var ErrConfig = errors.New("invalid simulation config")

// Placement strategies for the initial population.
const (
	PlacementUniform = "uniform"
	PlacementPerlin  = "perlin"
)

// Config holds the construction parameters of a System. Start from
// DefaultConfig and override fields; a zero field is taken literally.
type Config struct {
	// Count is the number of particles. Zero gives an inert system.
	Count int
	// DT is the integration time step.
	DT float64
	// FrictionHalfLife is the time for velocity to halve without forces.
	FrictionHalfLife float64
	// RMax is the interaction radius in normalized units.
	RMax float64
	// Colors is the palette size m and the rule matrix dimension.
	Colors int
	// ForceFactor scales every pairwise force.
	ForceFactor float64

	// Radius is the render radius given to generated particles.
	Radius float64
	// Seed feeds the generator for rules and particles; 0 seeds from the clock.
	Seed int64
	// Placement selects how initial positions are drawn.
	Placement string
	// Workers splits the force phase across goroutines. 0 or 1 runs it inline.
	Workers int
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{
		Count:            1000,
		DT:               0.01,
		FrictionHalfLife: 0.06,
		RMax:             0.1,
		Colors:           6,
		ForceFactor:      1,
		Radius:           DefaultRadius,
		Placement:        PlacementUniform,
		Workers:          1,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckInit validates the config, filling an empty Placement with the
// uniform strategy.
func (c *Config) CheckInit() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: count must be non-negative, but is %d", ErrConfig, c.Count)
	}
	if c.Colors < 0 {
		return fmt.Errorf("%w: colors must be non-negative, but is %d", ErrConfig, c.Colors)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, but is %d", ErrConfig, c.Workers)
	}
	if !finite(c.DT) || c.DT < 0 {
		return fmt.Errorf("%w: dt must be finite and non-negative, but is %g", ErrConfig, c.DT)
	}
	if !finite(c.RMax) || c.RMax < 0 {
		return fmt.Errorf("%w: rMax must be finite and non-negative, but is %g", ErrConfig, c.RMax)
	}
	if !finite(c.FrictionHalfLife) || c.FrictionHalfLife <= 0 {
		return fmt.Errorf("%w: friction half-life must be finite and positive, but is %g", ErrConfig, c.FrictionHalfLife)
	}
	if !finite(c.ForceFactor) {
		return fmt.Errorf("%w: force factor must be finite, but is %g", ErrConfig, c.ForceFactor)
	}
	if !finite(c.Radius) || c.Radius < 0 {
		return fmt.Errorf("%w: radius must be finite and non-negative, but is %g", ErrConfig, c.Radius)
	}

	switch c.Placement {
	case "":
		c.Placement = PlacementUniform
	case PlacementUniform, PlacementPerlin:
	default:
		return fmt.Errorf("%w: unknown placement %q", ErrConfig, c.Placement)
	}
	return nil
}

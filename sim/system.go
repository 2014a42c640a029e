// Package sim advances a particle-life system: colored particles attract
// and repel each other according to a color×color rule matrix.
package sim

import (
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particles/packed"
	"github.com/olivierh59500/particles/rules"
)

// System owns a fixed population of particles and the rule matrix acting on
// them. It starts paused. A System is not safe for concurrent use; its
// packed buffer may be read by other goroutines between calls to Step.
type System struct {
	cfg            Config
	frictionFactor float64
	rules          rules.Matrix
	particles      []Particle
	forces         []r2.Vec
	buf            *packed.Buffer

	running bool
	ticks   uint64
	log     *log.Logger
}

type options struct {
	rules     rules.Matrix
	particles []Particle
	logger    *log.Logger
	rng       *rand.Rand
}

// Option customizes New.
type Option func(*options)

// WithRules uses mx instead of a random matrix. Its size must equal
// Config.Colors.
func WithRules(mx rules.Matrix) Option {
	return func(o *options) { o.rules = mx }
}

// WithParticles uses ps as the initial population instead of a random one.
// Config.Count is replaced by len(ps).
func WithParticles(ps []Particle) Option {
	return func(o *options) {
		if ps == nil {
			ps = []Particle{}
		}
		o.particles = ps
	}
}

// WithLogger sets where construction details are logged.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRand sets the random source used for rules and particles, overriding
// Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// New validates cfg and builds a paused System.
func New(cfg Config, opts ...Option) (*System, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.particles != nil {
		cfg.Count = len(o.particles)
	}
	if err := cfg.CheckInit(); err != nil {
		return nil, err
	}

	rng := o.rng
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	var mx rules.Matrix
	if o.rules != nil {
		if err := o.rules.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		if o.rules.Size() != cfg.Colors {
			return nil, fmt.Errorf("%w: rule matrix is %d×%d but colors is %d",
				ErrConfig, o.rules.Size(), o.rules.Size(), cfg.Colors)
		}
		mx = o.rules.Clone()
	} else {
		mx = rules.Random(cfg.Colors, rng)
	}

	var ps []Particle
	if o.particles != nil {
		if err := checkParticles(o.particles, cfg.Colors); err != nil {
			return nil, err
		}
		ps = append([]Particle(nil), o.particles...)
		for i := range ps {
			ps[i].acceleration = r2.Vec{}
		}
	} else {
		ps = randomPopulation(cfg, rng)
	}

	s := &System{
		cfg:            cfg,
		frictionFactor: FrictionFactor(cfg.DT, cfg.FrictionHalfLife),
		rules:          mx,
		particles:      ps,
		forces:         make([]r2.Vec, len(ps)),
		buf:            packed.New(len(ps)),
		log:            o.logger,
	}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}
	s.publish()

	s.log.Printf("friction factor: %g", s.frictionFactor)
	s.log.Printf("dt: %g, force factor: %g, r max: %g", cfg.DT, cfg.ForceFactor, cfg.RMax)
	s.log.Printf("%d particles, rule matrix size %d", len(ps), mx.Size())
	return s, nil
}

func checkParticles(ps []Particle, colors int) error {
	ids := make(map[uint32]struct{}, len(ps))
	for i, p := range ps {
		if p.Color < 0 || (colors > 0 && p.Color >= colors) || (colors == 0 && p.Color != 0) {
			return fmt.Errorf("%w: particle %d has color %d outside palette of size %d",
				ErrConfig, i, p.Color, colors)
		}
		if !finite(p.Position.X) || !finite(p.Position.Y) || !finite(p.Velocity.X) || !finite(p.Velocity.Y) {
			return fmt.Errorf("%w: particle %d has a non-finite position or velocity", ErrConfig, i)
		}
		if math.IsNaN(p.Radius) || p.Radius < 0 {
			return fmt.Errorf("%w: particle %d has radius %g", ErrConfig, i, p.Radius)
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("%w: particle id %d used twice", ErrConfig, p.ID)
		}
		ids[p.ID] = struct{}{}
	}
	return nil
}

// Start lets Step advance the system.
func (s *System) Start() { s.running = true }

// Pause turns Step into a no-op.
func (s *System) Pause() { s.running = false }

// Running reports whether Step advances the system.
func (s *System) Running() bool { return s.running }

// Step advances every particle by one time step if the system is running
// and republishes the packed buffer.
func (s *System) Step() {
	if !s.running {
		return
	}
	s.applyForces()
	for i := range s.particles {
		s.particles[i].Move(s.cfg.DT)
	}
	s.ticks++
	s.publish()
}

// applyForces computes every particle's force from the current positions,
// then applies drag and the force. Positions are not touched here.
func (s *System) applyForces() {
	if s.rules.Size() > 0 {
		s.accumulate()
	}
	for i := range s.particles {
		p := &s.particles[i]
		p.ApplyDrag(s.frictionFactor)
		p.ApplyForce(s.forces[i])
	}
}

// accumulate fills s.forces. Each entry is summed in population order by a
// single goroutine, so the result does not depend on Workers.
func (s *System) accumulate() {
	n := len(s.particles)
	workers := s.cfg.Workers
	if workers <= 1 || n < 2*workers {
		for i := 0; i < n; i++ {
			s.forces[i] = s.forceOn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				s.forces[i] = s.forceOn(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// forceOn returns the scaled force all other particles exert on particle i.
func (s *System) forceOn(i int) r2.Vec {
	p := &s.particles[i]
	rMax := s.cfg.RMax
	var total r2.Vec
	for j := range s.particles {
		if j == i {
			continue
		}
		q := &s.particles[j]
		distance := p.DistanceTo(q)
		if distance == 0 || distance >= rMax {
			continue
		}
		f := RuleForce(distance/rMax, s.rules.At(p.Color, q.Color))
		total.X += (q.Position.X - p.Position.X) / distance * f
		total.Y += (q.Position.Y - p.Position.Y) / distance * f
	}
	return r2.Scale(s.cfg.ForceFactor*rMax, total)
}

func (s *System) publish() {
	for i := range s.particles {
		p := &s.particles[i]
		s.buf.Put(i, packed.Record{
			X:      float32(p.Position.X),
			Y:      float32(p.Position.Y),
			VX:     float32(p.Velocity.X),
			VY:     float32(p.Velocity.Y),
			Radius: float32(p.Radius),
			Color:  uint32(p.Color),
			ID:     p.ID,
		})
	}
}

// Count returns the population size.
func (s *System) Count() int { return len(s.particles) }

// Colors returns the palette size m.
func (s *System) Colors() int { return s.cfg.Colors }

// FrictionFactor returns the per-step velocity retention.
func (s *System) FrictionFactor() float64 { return s.frictionFactor }

// Ticks returns the number of steps taken while running.
func (s *System) Ticks() uint64 { return s.ticks }

// Config returns the validated construction parameters.
func (s *System) Config() Config { return s.cfg }

// Rules returns a copy of the rule matrix.
func (s *System) Rules() rules.Matrix { return s.rules.Clone() }

// Particle returns a copy of particle i.
func (s *System) Particle(i int) Particle { return s.particles[i] }

// Particles returns a copy of the population.
func (s *System) Particles() []Particle {
	return append([]Particle(nil), s.particles...)
}

// Buffer returns the packed view of the population. It is rewritten in
// place after every running Step and never reallocated.
func (s *System) Buffer() *packed.Buffer { return s.buf }

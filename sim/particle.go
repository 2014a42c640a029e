package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultRadius is the render radius given to generated particles.
const DefaultRadius = 3.0

// Particle is a single colored point.
type Particle struct {
	ID       uint32
	Position r2.Vec
	Velocity r2.Vec
	Radius   float64
	Color    int

	acceleration r2.Vec
}

// NewParticle returns a stationary particle.
func NewParticle(id uint32, x, y float64, color int, radius float64) Particle {
	return Particle{
		ID:       id,
		Position: r2.Vec{X: x, Y: y},
		Radius:   radius,
		Color:    color,
	}
}

// Acceleration returns the force accumulated since the last Move.
func (p *Particle) Acceleration() r2.Vec {
	return p.acceleration
}

// ApplyForce adds f to the pending acceleration.
func (p *Particle) ApplyForce(f r2.Vec) {
	p.acceleration = r2.Add(p.acceleration, f)
}

// ApplyDrag scales the velocity by factor.
func (p *Particle) ApplyDrag(factor float64) {
	p.Velocity = r2.Scale(factor, p.Velocity)
}

// Move folds the acceleration into the velocity, advances the position by
// one time step and clears the acceleration.
func (p *Particle) Move(dt float64) {
	p.Velocity = r2.Add(p.Velocity, p.acceleration)
	p.Position = r2.Add(p.Position, r2.Scale(dt, p.Velocity))
	p.acceleration = r2.Vec{}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p *Particle) DistanceTo(q *Particle) float64 {
	dx := p.Position.X - q.Position.X
	dy := p.Position.Y - q.Position.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ColorFor maps u in [0, 1] onto a palette index in [0, m).
func ColorFor(m int, u float64) int {
	if m <= 0 {
		return 0
	}
	u = math.Min(1, math.Max(0, u))
	c := int(math.Floor(u * float64(m)))
	if c >= m {
		c = m - 1
	}
	return c
}

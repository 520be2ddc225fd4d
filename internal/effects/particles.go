// Package effects holds visual side effects driven by physics events.
// Nothing here feeds back into the simulation.
package effects

import "github.com/vovakirdan/tui-pinball/internal/geom"

const (
	// DefaultLifespan is the starting life of a particle.
	DefaultLifespan = 255

	// DefaultDecay is the life lost per update.
	DefaultDecay = 2

	// DefaultBurstSize is the number of particles per ceiling hit.
	DefaultBurstSize = 10
)

// DefaultAcceleration pulls particles gently downward.
var DefaultAcceleration = geom.V(0, 0.05)

// Particle is a short-lived decorative point.
type Particle struct {
	Position geom.Vec2
	Velocity geom.Vec2
	Life     int

	// Hue is an index into the renderer's palette.
	Hue int
}

// Dead reports whether the particle has run out of life.
func (p Particle) Dead() bool {
	return p.Life < 0
}

// Alpha returns the remaining life as a fraction of DefaultLifespan.
func (p Particle) Alpha() float64 {
	if p.Life <= 0 {
		return 0
	}
	return float64(p.Life) / DefaultLifespan
}

// Options configures a System. Zero fields take the defaults.
type Options struct {
	Lifespan     int
	Decay        int
	Acceleration geom.Vec2
	// Spread is the half-width of the initial velocity range per axis.
	Spread float64
	// Hues is the number of palette entries particles pick from.
	Hues int
	// Max caps the live particle count; 0 means unlimited.
	Max int
}

func (o Options) withDefaults() Options {
	if o.Lifespan <= 0 {
		o.Lifespan = DefaultLifespan
	}
	if o.Decay <= 0 {
		o.Decay = DefaultDecay
	}
	if o.Acceleration == (geom.Vec2{}) {
		o.Acceleration = DefaultAcceleration
	}
	if o.Spread <= 0 {
		o.Spread = 1
	}
	if o.Hues <= 0 {
		o.Hues = 1
	}
	return o
}

// System owns a set of particles.
type System struct {
	opts      Options
	rng       *SimpleRNG
	particles []Particle
	spawned   int
}

// NewSystem creates a particle system with a seeded RNG.
func NewSystem(seed int64, opts Options) *System {
	return &System{
		opts: opts.withDefaults(),
		rng:  NewSimpleRNG(seed),
	}
}

// Burst spawns n particles at pos with random velocity in
// [-Spread, Spread) on each axis.
func (s *System) Burst(pos geom.Vec2, n int) {
	spread := s.opts.Spread
	for range n {
		if s.opts.Max > 0 && len(s.particles) >= s.opts.Max {
			return
		}
		s.particles = append(s.particles, Particle{
			Position: pos,
			Velocity: geom.V(s.rng.Range(-spread, spread), s.rng.Range(-spread, spread)),
			Life:     s.opts.Lifespan,
			Hue:      s.rng.Intn(s.opts.Hues),
		})
		s.spawned++
	}
}

// Update advances every particle one frame and drops the dead ones.
func (s *System) Update() {
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Velocity = p.Velocity.Add(s.opts.Acceleration)
		p.Position = p.Position.Add(p.Velocity)
		p.Life -= s.opts.Decay
		if !p.Dead() {
			alive = append(alive, p)
		}
	}
	// Clear the tail so dropped particles are not retained.
	clear(s.particles[len(alive):])
	s.particles = alive
}

// Particles returns the live particles. The slice is only valid until the
// next Burst or Update.
func (s *System) Particles() []Particle {
	return s.particles
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return len(s.particles)
}

// Spawned returns the total number of particles ever created.
func (s *System) Spawned() int {
	return s.spawned
}

// Reset removes every particle and reseeds the RNG.
func (s *System) Reset(seed int64) {
	s.particles = s.particles[:0]
	s.spawned = 0
	s.rng = NewSimpleRNG(seed)
}

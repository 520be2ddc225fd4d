package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pinball/internal/geom"
)

func TestBurstSpawnsParticles(t *testing.T) {
	s := NewSystem(42, Options{})
	origin := geom.V(650, 50)

	s.Burst(origin, DefaultBurstSize)
	require.Equal(t, DefaultBurstSize, s.Len())
	assert.Equal(t, DefaultBurstSize, s.Spawned())

	for _, p := range s.Particles() {
		assert.Equal(t, origin, p.Position)
		assert.Equal(t, DefaultLifespan, p.Life)
		assert.GreaterOrEqual(t, p.Velocity.X, -1.0)
		assert.Less(t, p.Velocity.X, 1.0)
		assert.GreaterOrEqual(t, p.Velocity.Y, -1.0)
		assert.Less(t, p.Velocity.Y, 1.0)
	}
}

func TestUpdateIntegrates(t *testing.T) {
	s := NewSystem(1, Options{})
	s.Burst(geom.V(0, 0), 1)
	v0 := s.Particles()[0].Velocity

	s.Update()
	p := s.Particles()[0]
	expectedV := v0.Add(DefaultAcceleration)
	assert.InDelta(t, expectedV.X, p.Velocity.X, 1e-12)
	assert.InDelta(t, expectedV.Y, p.Velocity.Y, 1e-12)
	assert.InDelta(t, expectedV.X, p.Position.X, 1e-12)
	assert.InDelta(t, expectedV.Y, p.Position.Y, 1e-12)
	assert.Equal(t, DefaultLifespan-DefaultDecay, p.Life)
}

func TestParticlesExpire(t *testing.T) {
	s := NewSystem(7, Options{})
	s.Burst(geom.V(10, 10), 3)

	// 255 - 2*127 = 1 is still alive, one more update goes negative.
	for range 127 {
		s.Update()
	}
	assert.Equal(t, 3, s.Len())

	s.Update()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 3, s.Spawned())
}

func TestBurstRespectsMax(t *testing.T) {
	s := NewSystem(7, Options{Max: 15})
	s.Burst(geom.V(0, 0), 10)
	s.Burst(geom.V(0, 0), 10)
	assert.Equal(t, 15, s.Len())
}

func TestBurstDeterministic(t *testing.T) {
	a := NewSystem(99, Options{Hues: 6})
	b := NewSystem(99, Options{Hues: 6})
	c := NewSystem(100, Options{Hues: 6})

	a.Burst(geom.V(1, 1), 5)
	b.Burst(geom.V(1, 1), 5)
	c.Burst(geom.V(1, 1), 5)

	assert.Equal(t, a.Particles(), b.Particles())
	assert.NotEqual(t, a.Particles(), c.Particles())
	for _, p := range a.Particles() {
		assert.GreaterOrEqual(t, p.Hue, 0)
		assert.Less(t, p.Hue, 6)
	}
}

func TestReset(t *testing.T) {
	s := NewSystem(3, Options{})
	s.Burst(geom.V(0, 0), 4)
	first := append([]Particle(nil), s.Particles()...)

	s.Reset(3)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Spawned())

	s.Burst(geom.V(0, 0), 4)
	assert.Equal(t, first, s.Particles())
}

func TestAlpha(t *testing.T) {
	assert.InDelta(t, 1.0, Particle{Life: DefaultLifespan}.Alpha(), 1e-12)
	assert.InDelta(t, 0.0, Particle{Life: -1}.Alpha(), 1e-12)
	assert.True(t, Particle{Life: -1}.Dead())
	assert.False(t, Particle{Life: 0}.Dead())
}

func TestSimpleRNG(t *testing.T) {
	r := NewSimpleRNG(0)
	assert.Equal(t, uint64(1), r.State(), "zero seed is remapped")

	for range 1000 {
		f := r.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
		n := r.Intn(10)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 10)
	}
	assert.Equal(t, 0, r.Intn(0))
}

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-pinball/internal/geom"
)

func ball(id int, x, y, r, vx, vy float64) geom.Circle {
	return geom.Circle{ID: id, Center: geom.V(x, y), Radius: r, Velocity: geom.V(vx, vy)}
}

func assertVec(t *testing.T, expected, actual geom.Vec2, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, 1e-9, msgAndArgs...)
	assert.InDelta(t, expected.Y, actual.Y, 1e-9, msgAndArgs...)
}

func TestResolveBallBallSeparates(t *testing.T) {
	b1 := ball(1, 0, 0, 5, 0, 0)
	b2 := ball(2, 7, 0, 3, 0, 0)

	assert.True(t, ResolveBallBall(&b1, &b2, 1))
	assertVec(t, geom.V(-0.5, 0), b1.Center)
	assertVec(t, geom.V(7.5, 0), b2.Center)
	assert.InDelta(t, 8.0, b1.Center.Dist(b2.Center), 1e-9)

	// Touching and at rest: nothing left to do.
	assert.False(t, ResolveBallBall(&b1, &b2, 1), "second pass should be a no-op")
	assertVec(t, geom.V(-0.5, 0), b1.Center)
	assertVec(t, geom.V(7.5, 0), b2.Center)
}

func TestResolveBallBallHeadOn(t *testing.T) {
	tests := []struct {
		name   string
		cor    float64
		v1, v2 float64
	}{
		{"elastic swaps velocities", 1, -1, 1},
		{"inelastic stops both", 0, 0, 0},
		{"damped", 0.5, -0.5, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b1 := ball(1, 0, 0, 1, 1, 0)
			b2 := ball(2, 1.5, 0, 1, -1, 0)

			assert.True(t, ResolveBallBall(&b1, &b2, tc.cor))
			assert.InDelta(t, tc.v1, b1.Velocity.X, 1e-9)
			assert.InDelta(t, tc.v2, b2.Velocity.X, 1e-9)
			assert.InDelta(t, 0.0, b1.Velocity.Y, 1e-9)
			assert.InDelta(t, 0.0, b2.Velocity.Y, 1e-9)
		})
	}
}

func TestResolveBallBallConservesMomentum(t *testing.T) {
	b1 := ball(1, 0, 0, 2, 3, 1)
	b2 := ball(2, 3, 1, 2, -1, 0.5)

	before := b1.Velocity.Add(b2.Velocity)
	energyBefore := b1.Velocity.LenSq() + b2.Velocity.LenSq()

	assert.True(t, ResolveBallBall(&b1, &b2, 1))

	assertVec(t, before, b1.Velocity.Add(b2.Velocity), "momentum")
	assert.InDelta(t, energyBefore, b1.Velocity.LenSq()+b2.Velocity.LenSq(), 1e-9, "kinetic energy")
}

func TestResolveBallBallSeparatingKeepsVelocity(t *testing.T) {
	b1 := ball(1, 0, 0, 1, -1, 0)
	b2 := ball(2, 1.5, 0, 1, 1, 0)

	assert.True(t, ResolveBallBall(&b1, &b2, 1))
	assertVec(t, geom.V(-1, 0), b1.Velocity)
	assertVec(t, geom.V(1, 0), b2.Velocity)
	assert.InDelta(t, 2.0, b1.Center.Dist(b2.Center), 1e-9)
}

func TestResolveBallBallCoincident(t *testing.T) {
	b1 := ball(1, 5, 5, 1, 0, 0)
	b2 := ball(2, 5, 5, 1, 0, 0)

	assert.True(t, ResolveBallBall(&b1, &b2, 1))
	assertVec(t, geom.V(4, 5), b1.Center)
	assertVec(t, geom.V(6, 5), b2.Center)
}

func TestResolveBallBallApart(t *testing.T) {
	b1 := ball(1, 0, 0, 1, 1, 0)
	b2 := ball(2, 3, 0, 1, -1, 0)

	assert.False(t, ResolveBallBall(&b1, &b2, 1))
	assertVec(t, geom.V(1, 0), b1.Velocity)
}

func TestResolveBallBox(t *testing.T) {
	obstacle := geom.Box{ID: 10, Center: geom.V(50, 100), Width: 20, Height: 10}

	tests := []struct {
		name        string
		in          geom.Circle
		hit         bool
		center, vel geom.Vec2
	}{
		{"from above", ball(1, 50, 92, 5, 0, 3), true, geom.V(50, 90), geom.V(0, -2.4)},
		{"from below", ball(1, 50, 108, 5, 1, -3), true, geom.V(50, 110), geom.V(1, 2.4)},
		{"from left", ball(1, 37, 100, 5, 2, 0), true, geom.V(35, 100), geom.V(-1.6, 0)},
		{"from right", ball(1, 63, 100, 5, -2, 1), true, geom.V(65, 100), geom.V(1.6, 1)},
		{"clear", ball(1, 30, 100, 5, 2, 0), false, geom.V(30, 100), geom.V(2, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.in
			assert.Equal(t, tc.hit, ResolveBallBox(&b, obstacle, 0.8))
			assertVec(t, tc.center, b.Center, "center")
			assertVec(t, tc.vel, b.Velocity, "velocity")

			// Pushed out to exactly touching: a second pass changes nothing.
			assert.False(t, ResolveBallBox(&b, obstacle, 0.8), "second pass should be a no-op")
			assertVec(t, tc.center, b.Center, "center after second pass")
			assertVec(t, tc.vel, b.Velocity, "velocity after second pass")
		})
	}
}

func TestResolveBallCircle(t *testing.T) {
	obstacle := geom.Circle{ID: 5, Center: geom.V(3, 0), Radius: 2}
	b := ball(1, 0, 0, 2, 1, 0)

	assert.True(t, ResolveBallCircle(&b, obstacle))
	assertVec(t, geom.V(-1, 0), b.Center)
	assertVec(t, geom.V(-1, 0), b.Velocity)

	// Now exactly touching.
	assert.False(t, ResolveBallCircle(&b, obstacle))
	assertVec(t, geom.V(-1, 0), b.Center)
}

func TestResolveBallCircleKeepsSpeed(t *testing.T) {
	obstacle := geom.Circle{ID: 5, Center: geom.V(0, 0), Radius: 10}
	b := ball(1, 6, 8, 2, -3, -4)

	assert.True(t, ResolveBallCircle(&b, obstacle))
	assert.InDelta(t, 5.0, b.Velocity.Len(), 1e-9)
	assert.InDelta(t, 12.0, b.Center.Len(), 1e-9)
}

func TestResolveBallSegmentProximity(t *testing.T) {
	s := geom.Segment{ID: 7, P1: geom.V(0, 10), P2: geom.V(100, 10)}

	b := ball(1, 50, 5, 10, 0, 2)
	assert.True(t, ResolveBallSegmentProximity(&b, s, 0.8))
	assertVec(t, geom.V(50, 3), b.Center)
	assertVec(t, geom.V(0, -1.6), b.Velocity)

	far := ball(2, 50, -20, 10, 0, 2)
	assert.False(t, ResolveBallSegmentProximity(&far, s, 0.8))
	assertVec(t, geom.V(0, 2), far.Velocity)

	touching := ball(3, 50, 0, 10, 0, 2)
	assert.False(t, ResolveBallSegmentProximity(&touching, s, 0.8), "distance equal to radius is not a hit")
	assertVec(t, geom.V(50, 0), touching.Center)
}

func TestResolveBallSegmentProximitySecondPass(t *testing.T) {
	s := geom.Segment{ID: 7, P1: geom.V(0, 10), P2: geom.V(100, 10)}

	// Fast enough that the reflected move carries the ball clear.
	b := ball(1, 50, 5, 10, 0, 8)
	assert.True(t, ResolveBallSegmentProximity(&b, s, 0.8))
	assertVec(t, geom.V(50, -3), b.Center)
	assertVec(t, geom.V(0, -6.4), b.Velocity)

	assert.False(t, ResolveBallSegmentProximity(&b, s, 0.8), "second pass should be a no-op")
	assertVec(t, geom.V(50, -3), b.Center)
	assertVec(t, geom.V(0, -6.4), b.Velocity)
}

func TestResolveBallSegmentSwept(t *testing.T) {
	s := geom.Segment{ID: 7, P1: geom.V(0, 10), P2: geom.V(100, 10)}

	b := ball(1, 50, 5, 1, 0, 10)
	assert.True(t, ResolveBallSegmentSwept(&b, s, 1))
	assertVec(t, geom.V(50, 5), b.Center, "position is unchanged")
	assertVec(t, geom.V(0, -10), b.Velocity)

	short := ball(2, 50, 5, 1, 0, 2)
	assert.False(t, ResolveBallSegmentSwept(&short, s, 1))
	assertVec(t, geom.V(0, 2), short.Velocity)

	// A larger dt extends the swept path into the segment.
	assert.True(t, ResolveBallSegmentSwept(&short, s, 3))
}

func TestResolveBallBoundary(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name        string
		in          geom.Circle
		hit         Boundary
		center, vel geom.Vec2
	}{
		{"floor", ball(1, 50, 698, 10, 0, 5), BoundaryFloor, geom.V(50, 690), geom.V(0, -4.5)},
		{"floor moving inward", ball(1, 50, 698, 10, 0, -1), 0, geom.V(50, 698), geom.V(0, -1)},
		{"ceiling", ball(1, 100, 5, 10, 0, -2), BoundaryCeiling, geom.V(100, 10), geom.V(0, 1.8)},
		{"right wall", ball(1, 1295, 100, 10, 3, 0), BoundaryRight, geom.V(1290, 100), geom.V(-3, 0)},
		{"left wall", ball(1, 5, 100, 10, -1, 0), BoundaryLeft, geom.V(10, 100), geom.V(1, 0)},
		{"corner", ball(1, 1295, 698, 10, 2, 5), BoundaryFloor | BoundaryRight, geom.V(1290, 690), geom.V(-2, -4.5)},
		{"inside", ball(1, 650, 350, 10, 3, 3), 0, geom.V(650, 350), geom.V(3, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.in
			assert.Equal(t, tc.hit, ResolveBallBoundary(&b, 1300, 700, p))
			assertVec(t, tc.center, b.Center, "center")
			assertVec(t, tc.vel, b.Velocity, "velocity")
		})
	}
}

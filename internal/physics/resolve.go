package physics

import (
	"math"

	"github.com/vovakirdan/tui-pinball/internal/geom"
)

// separationAxis returns the unit vector along d, or +X when d is zero so
// that coincident centers still separate.
func separationAxis(d geom.Vec2) geom.Vec2 {
	n := d.Normalize()
	if n == (geom.Vec2{}) {
		return geom.V(1, 0)
	}
	return n
}

// ResolveBallBall separates two overlapping balls symmetrically and
// exchanges their normal velocities as a 1-D collision of equal masses with
// restitution cor. Tangential velocity is unchanged. Velocities are only
// exchanged while the balls are closing along the normal.
// Reports whether any state changed.
func ResolveBallBall(b1, b2 *geom.Circle, cor float64) bool {
	if !geom.CircleCircle(*b1, *b2) {
		return false
	}

	d := b2.Center.Sub(b1.Center)
	dist := d.Len()
	dir := separationAxis(d)

	changed := false
	if overlap := (b1.Radius + b2.Radius - dist) / 2; overlap > 0 {
		b1.Center = b1.Center.Sub(dir.Scale(overlap))
		b2.Center = b2.Center.Add(dir.Scale(overlap))
		changed = true
	}

	v1 := b1.Velocity.Dot(dir)
	v2 := b2.Velocity.Dot(dir)
	if v1-v2 <= 0 {
		return changed
	}

	// m1 = m2 = 1
	newV1 := (v1 + v2 - (v1-v2)*cor) / 2
	newV2 := (v1 + v2 + (v1-v2)*cor) / 2

	b1.Velocity = b1.Velocity.Add(dir.Scale(newV1 - v1))
	b2.Velocity = b2.Velocity.Add(dir.Scale(newV2 - v2))
	return true
}

// ResolveBallBox pushes the ball out of the box along the axis of smaller
// overlap and reverses that velocity component scaled by restitution.
// This is a single-axis approximation, not a minimum translation solve.
func ResolveBallBox(ball *geom.Circle, box geom.Box, restitution float64) bool {
	if hit, _ := geom.CircleBox(*ball, box); !hit {
		return false
	}

	vec := ball.Center.Sub(box.Center)
	overlapX := box.Width/2 + ball.Radius - math.Abs(vec.X)
	overlapY := box.Height/2 + ball.Radius - math.Abs(vec.Y)

	if overlapX < overlapY {
		if overlapX <= 0 {
			return false
		}
		if vec.X < 0 {
			overlapX = -overlapX
		}
		ball.Center.X += overlapX
		ball.Velocity.X *= -restitution
		return true
	}

	if overlapY <= 0 {
		return false
	}
	if vec.Y < 0 {
		overlapY = -overlapY
	}
	ball.Center.Y += overlapY
	ball.Velocity.Y *= -restitution
	return true
}

// ResolveBallCircle pushes the ball out of an immovable circular obstacle
// by the full penetration depth and reflects its velocity about the contact
// normal without damping.
func ResolveBallCircle(ball *geom.Circle, obstacle geom.Circle) bool {
	d := ball.Center.Sub(obstacle.Center)
	dist := d.Len()
	overlap := ball.Radius + obstacle.Radius - dist
	if overlap <= 0 {
		return false
	}

	n := separationAxis(d)
	ball.Center = ball.Center.Add(n.Scale(overlap))
	ball.Velocity = ball.Velocity.Reflect(n)
	return true
}

// ResolveBallSegmentProximity handles a ball closer to the segment than its
// radius: the velocity is reflected about the closest-point normal, the ball
// is moved by the reflected velocity and the new velocity is damped.
func ResolveBallSegmentProximity(ball *geom.Circle, s geom.Segment, damping float64) bool {
	closest := geom.ClosestPointOnSegment(s, ball.Center)
	cv := ball.Center.Sub(closest)
	if cv.Len() >= ball.Radius {
		return false
	}

	reflection := ball.Velocity.Reflect(cv.Normalize())
	ball.Center = ball.Center.Add(reflection)
	ball.Velocity = reflection.Scale(damping)
	return true
}

// ResolveBallSegmentSwept tests the ball's motion for the coming step,
// from its center to center + velocity*dt, against the segment. On a hit the
// velocity is reflected about the segment's normal. Position is not changed.
func ResolveBallSegmentSwept(ball *geom.Circle, s geom.Segment, dt float64) bool {
	motion := geom.Segment{P1: ball.Center, P2: ball.Center.Add(ball.Velocity.Scale(dt))}
	if !geom.SegmentSegment(motion, s) {
		return false
	}
	ball.Velocity = ball.Velocity.Reflect(s.Normal())
	return true
}

// Boundary is a bit set of arena edges touched by a ball.
type Boundary uint8

const (
	BoundaryFloor Boundary = 1 << iota
	BoundaryCeiling
	BoundaryRight
	BoundaryLeft
)

// Has reports whether edge is set.
func (b Boundary) Has(edge Boundary) bool {
	return b&edge != 0
}

// ResolveBallBoundary keeps the ball inside a width x height arena whose
// origin is the top-left corner. An edge is resolved only when the ball has
// crossed it and is still moving outward: the velocity component is
// reflected and the position clamped to the edge.
func ResolveBallBoundary(ball *geom.Circle, width, height float64, p Params) Boundary {
	var hit Boundary

	if ball.Center.Y > height-ball.Radius && ball.Velocity.Y > 0 {
		ball.Velocity.Y *= -p.FloorRestitution
		ball.Center.Y = height - ball.Radius
		hit |= BoundaryFloor
	}
	if ball.Center.Y-ball.Radius < 0 && ball.Velocity.Y < 0 {
		ball.Velocity.Y *= -p.FloorRestitution
		ball.Center.Y = ball.Radius
		hit |= BoundaryCeiling
	}
	if ball.Center.X+ball.Radius > width && ball.Velocity.X > 0 {
		ball.Velocity.X *= -p.WallRestitution
		ball.Center.X = width - ball.Radius
		hit |= BoundaryRight
	}
	if ball.Center.X-ball.Radius < 0 && ball.Velocity.X < 0 {
		ball.Velocity.X *= -p.WallRestitution
		ball.Center.X = ball.Radius
		hit |= BoundaryLeft
	}

	return hit
}

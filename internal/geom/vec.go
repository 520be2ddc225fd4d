// Package geom provides 2D vector math, the shape value types used by the
// simulation, and exact collision predicates between those shapes.
// It has no external dependencies and no mutable state.
package geom

import "math"

// Vec2 is an immutable 2D vector. All methods return new values.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LenSq returns the squared magnitude of v.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector in the direction of v.
// A zero-length vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	mag := v.Len()
	if mag == 0 {
		return v
	}
	return Vec2{X: v.X / mag, Y: v.Y / mag}
}

// Dist returns the euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return o.Sub(v).Len()
}

// Perp returns v rotated by 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Reflect mirrors v about the unit normal n: v - 2(v·n)n.
func (v Vec2) Reflect(n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// Clamp restricts val to [lo, hi]. Callers guarantee lo <= hi.
func Clamp(val, lo, hi float64) float64 {
	return math.Min(math.Max(val, lo), hi)
}

// Orientation classifies the ordered triple (p, q, r).
type Orientation int

const (
	Collinear Orientation = iota
	Clockwise
	CounterClockwise
)

// String returns a human-readable name for the orientation.
func (o Orientation) String() string {
	switch o {
	case Collinear:
		return "collinear"
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "unknown"
	}
}

// Orient returns the orientation of the triple (p, q, r) from the sign of
// the cross product of pq and qr.
func Orient(p, q, r Vec2) Orientation {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	if val == 0 {
		return Collinear
	}
	if val > 0 {
		return Clockwise
	}
	return CounterClockwise
}

// OnSegment reports whether q lies within the bounding box of p and r.
// Meaningful only when p, q, r are collinear.
func OnSegment(p, q, r Vec2) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SameSide reports whether p1 and p2 lie on the same side of the line
// through s (points on the line count for both sides).
func SameSide(s Segment, p1, p2 Vec2) bool {
	ab := s.P2.Sub(s.P1)
	z1 := p1.Sub(s.P1).Cross(ab)
	z2 := p2.Sub(s.P1).Cross(ab)
	return (z1 >= 0 && z2 >= 0) || (z1 <= 0 && z2 <= 0)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

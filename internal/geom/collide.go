package geom

import "math"

// All predicates treat boundary contact as a collision (<=, not <).

// CircleCircle reports whether two circles overlap or touch.
func CircleCircle(c1, c2 Circle) bool {
	return c1.Center.Dist(c2.Center) <= c1.Radius+c2.Radius
}

// BoxBox reports whether two boxes overlap on both axes.
func BoxBox(b1, b2 Box) bool {
	if math.Abs(b1.Center.X-b2.Center.X) > (b1.Width+b2.Width)/2 {
		return false
	}
	if math.Abs(b1.Center.Y-b2.Center.Y) > (b1.Height+b2.Height)/2 {
		return false
	}
	return true
}

// ClosestPointOnBox clamps p into the extents of b.
func ClosestPointOnBox(b Box, p Vec2) Vec2 {
	return Vec2{
		X: Clamp(p.X, b.Left(), b.Right()),
		Y: Clamp(p.Y, b.Top(), b.Bottom()),
	}
}

// CircleBox reports whether c overlaps b, along with the point of b
// closest to the circle center.
func CircleBox(c Circle, b Box) (bool, Vec2) {
	closest := ClosestPointOnBox(b, c.Center)
	return closest.Dist(c.Center) <= c.Radius, closest
}

// ClosestPointOnSegment projects p onto the line through s and clamps the
// projection parameter to [0, 1].
func ClosestPointOnSegment(s Segment, p Vec2) Vec2 {
	ab := s.Dir()
	lenSq := ab.LenSq()
	if lenSq == 0 {
		return s.P1
	}
	t := p.Sub(s.P1).Dot(ab) / lenSq
	switch {
	case t < 0:
		return s.P1
	case t > 1:
		return s.P2
	default:
		return s.P1.Add(ab.Scale(t))
	}
}

// CircleSegment reports whether c overlaps s, along with the point of s
// closest to the circle center.
func CircleSegment(c Circle, s Segment) (bool, Vec2) {
	closest := ClosestPointOnSegment(s, c.Center)
	return closest.Dist(c.Center) <= c.Radius, closest
}

// SegmentSegment reports whether two segments intersect, using orientation
// tests with collinear special cases.
func SegmentSegment(s1, s2 Segment) bool {
	o1 := Orient(s1.P1, s1.P2, s2.P1)
	o2 := Orient(s1.P1, s1.P2, s2.P2)
	o3 := Orient(s2.P1, s2.P2, s1.P1)
	o4 := Orient(s2.P1, s2.P2, s1.P2)

	// General case
	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear endpoint lying within the other segment
	if o1 == Collinear && OnSegment(s1.P1, s2.P1, s1.P2) {
		return true
	}
	if o2 == Collinear && OnSegment(s1.P1, s2.P2, s1.P2) {
		return true
	}
	if o3 == Collinear && OnSegment(s2.P1, s1.P1, s2.P2) {
		return true
	}
	if o4 == Collinear && OnSegment(s2.P1, s1.P2, s2.P2) {
		return true
	}

	return false
}

// SegmentBox reports whether s crosses any edge of b or lies inside it.
func SegmentBox(s Segment, b Box) bool {
	for _, edge := range b.Edges() {
		if SegmentSegment(s, edge) {
			return true
		}
	}
	return PointInBox(s.P1, b) || PointInBox(s.P2, b)
}

// BoxSegment is SegmentBox with the arguments swapped.
func BoxSegment(b Box, s Segment) bool {
	return SegmentBox(s, b)
}

// PointInBox is an inclusive range check on both axes.
func PointInBox(p Vec2, b Box) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func circle(x, y, r float64) Circle {
	return Circle{Center: V(x, y), Radius: r}
}

func box(x, y, w, h float64) Box {
	return Box{Center: V(x, y), Width: w, Height: h}
}

func seg(x1, y1, x2, y2 float64) Segment {
	return Segment{P1: V(x1, y1), P2: V(x2, y2)}
}

func TestCircleCircle(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Circle
		expected bool
	}{
		{"overlapping", circle(0, 0, 5), circle(7, 0, 3), true},
		{"touching", circle(0, 0, 5), circle(8, 0, 3), true},
		{"apart", circle(0, 0, 5), circle(8.01, 0, 3), false},
		{"concentric", circle(1, 1, 2), circle(1, 1, 1), true},
		{"diagonal apart", circle(0, 0, 1), circle(2, 2, 1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CircleCircle(tc.a, tc.b))
			assert.Equal(t, tc.expected, CircleCircle(tc.b, tc.a), "reversed")
		})
	}
}

func TestBoxBox(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"x overlap", box(100, 100, 20, 20), box(115, 100, 20, 20), true},
		{"edge touch", box(0, 0, 10, 10), box(10, 0, 10, 10), true},
		{"x apart", box(0, 0, 10, 10), box(10.5, 0, 10, 10), false},
		{"y apart", box(0, 0, 10, 10), box(0, 11, 10, 10), false},
		{"only x overlaps", box(0, 0, 10, 10), box(2, 30, 10, 10), false},
		{"contained", box(0, 0, 20, 20), box(1, 1, 2, 2), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BoxBox(tc.a, tc.b))
			assert.Equal(t, tc.expected, BoxBox(tc.b, tc.a), "reversed")
		})
	}
}

func TestCircleBox(t *testing.T) {
	b := box(0, 0, 10, 10)

	tests := []struct {
		name     string
		c        Circle
		expected bool
		closest  Vec2
	}{
		{"center inside", circle(1, 1, 1), true, V(1, 1)},
		{"side overlap", circle(7, 0, 3), true, V(5, 0)},
		{"side touch", circle(8, 0, 3), true, V(5, 0)},
		{"near corner miss", circle(8, 8, 4), false, V(5, 5)},
		{"corner hit", circle(8, 8, 4.5), true, V(5, 5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, closest := CircleBox(tc.c, b)
			assert.Equal(t, tc.expected, hit)
			assert.Equal(t, tc.closest, closest)
		})
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	s := seg(0, 0, 10, 0)

	assert.Equal(t, V(5, 0), ClosestPointOnSegment(s, V(5, 7)))
	assert.Equal(t, V(0, 0), ClosestPointOnSegment(s, V(-3, 2)))
	assert.Equal(t, V(10, 0), ClosestPointOnSegment(s, V(14, -2)))

	diag := seg(0, 0, 10, 10)
	p := ClosestPointOnSegment(diag, V(0, 10))
	assert.InDelta(t, 5.0, p.X, 1e-12)
	assert.InDelta(t, 5.0, p.Y, 1e-12)
}

func TestCircleSegment(t *testing.T) {
	s := seg(0, 0, 10, 0)

	hit, closest := CircleSegment(circle(5, 3, 3), s)
	assert.True(t, hit, "touching from above")
	assert.Equal(t, V(5, 0), closest)

	hit, _ = CircleSegment(circle(5, 3.5, 3), s)
	assert.False(t, hit)

	hit, closest = CircleSegment(circle(12, 0, 2), s)
	assert.True(t, hit, "touching past the end cap")
	assert.Equal(t, V(10, 0), closest)
}

func TestSegmentSegment(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Segment
		expected bool
	}{
		{"crossing diagonals", seg(0, 0, 10, 10), seg(0, 10, 10, 0), true},
		{"parallel", seg(0, 0, 10, 0), seg(0, 1, 10, 1), false},
		{"t junction", seg(0, 0, 10, 0), seg(5, 0, 5, 5), true},
		{"shared endpoint", seg(0, 0, 5, 5), seg(5, 5, 10, 0), true},
		{"collinear overlapping", seg(0, 0, 10, 0), seg(5, 0, 15, 0), true},
		{"collinear contained", seg(0, 0, 10, 0), seg(2, 0, 3, 0), true},
		{"collinear disjoint", seg(0, 0, 4, 0), seg(5, 0, 9, 0), false},
		{"would cross if extended", seg(0, 0, 4, 4), seg(0, 10, 10, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SegmentSegment(tc.a, tc.b))
			assert.Equal(t, tc.expected, SegmentSegment(tc.b, tc.a), "reversed")
		})
	}
}

func TestSegmentBox(t *testing.T) {
	b := box(0, 0, 10, 10)

	tests := []struct {
		name     string
		s        Segment
		expected bool
	}{
		{"crosses box", seg(-10, 0, 10, 0), true},
		{"fully inside", seg(-1, -1, 1, 1), true},
		{"one endpoint inside", seg(0, 0, 20, 20), true},
		{"along an edge", seg(-5, 5, 5, 5), true},
		{"outside", seg(6, -10, 6, 10), false},
		{"diagonal miss", seg(4, 8, 8, 4), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SegmentBox(tc.s, b))
			assert.Equal(t, tc.expected, BoxSegment(b, tc.s))
		})
	}
}

func TestPointInBox(t *testing.T) {
	b := box(10, 10, 4, 2)

	assert.True(t, PointInBox(V(10, 10), b))
	assert.True(t, PointInBox(V(8, 9), b), "corner is inclusive")
	assert.True(t, PointInBox(V(12, 11), b), "opposite corner is inclusive")
	assert.False(t, PointInBox(V(12.1, 10), b))
	assert.False(t, PointInBox(V(10, 8.9), b))
}

package geom

import (
	"errors"
	"fmt"
)

// ErrInvalidShape is wrapped by every ShapeError.
var ErrInvalidShape = errors.New("invalid shape")

// Validation codes carried by ShapeError.
const (
	CodeNonPositiveRadius = "NON_POSITIVE_RADIUS"
	CodeNonPositiveSize   = "NON_POSITIVE_SIZE"
	CodeDegenerateSegment = "DEGENERATE_SEGMENT"
	CodeNonFinite         = "NON_FINITE"
	CodeDuplicateID       = "DUPLICATE_ID"
)

// ShapeError describes why a shape could not be constructed.
type ShapeError struct {
	Code    string
	Kind    Kind
	ID      int
	Message string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("[%s] %s %d: %s", e.Code, e.Kind, e.ID, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidShape.
func (e *ShapeError) Unwrap() error {
	return ErrInvalidShape
}

// Kind identifies a shape type.
type Kind uint8

const (
	KindCircle Kind = iota
	KindBox
	KindSegment
)

// String returns the shape kind name.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindBox:
		return "box"
	case KindSegment:
		return "segment"
	default:
		return "unknown"
	}
}

// Circle is a ball (mobile, carries velocity) or a static circular obstacle.
type Circle struct {
	ID           int
	Center       Vec2
	Radius       float64
	Velocity     Vec2
	Acceleration Vec2
}

// NewCircle creates a static circle.
func NewCircle(id int, center Vec2, radius float64) (Circle, error) {
	return NewBall(id, center, radius, Vec2{})
}

// NewBall creates a mobile circle with an initial velocity.
func NewBall(id int, center Vec2, radius float64, velocity Vec2) (Circle, error) {
	c := Circle{ID: id, Center: center, Radius: radius, Velocity: velocity}
	if !center.IsFinite() || !velocity.IsFinite() || !isFinite(radius) {
		return Circle{}, &ShapeError{Code: CodeNonFinite, Kind: KindCircle, ID: id,
			Message: "center, radius and velocity must be finite"}
	}
	if radius <= 0 {
		return Circle{}, &ShapeError{Code: CodeNonPositiveRadius, Kind: KindCircle, ID: id,
			Message: fmt.Sprintf("radius %g must be > 0", radius)}
	}
	return c, nil
}

// Move translates the circle by delta.
func (c *Circle) Move(delta Vec2) {
	c.Center = c.Center.Add(delta)
}

// Box is an axis-aligned rectangle described by its center and size.
type Box struct {
	ID     int
	Center Vec2
	Width  float64
	Height float64
}

// NewBox creates an axis-aligned box.
func NewBox(id int, center Vec2, width, height float64) (Box, error) {
	if !center.IsFinite() || !isFinite(width) || !isFinite(height) {
		return Box{}, &ShapeError{Code: CodeNonFinite, Kind: KindBox, ID: id,
			Message: "center and size must be finite"}
	}
	if width <= 0 || height <= 0 {
		return Box{}, &ShapeError{Code: CodeNonPositiveSize, Kind: KindBox, ID: id,
			Message: fmt.Sprintf("size %gx%g must be > 0", width, height)}
	}
	return Box{ID: id, Center: center, Width: width, Height: height}, nil
}

// HalfExtents returns half the width and half the height.
func (b Box) HalfExtents() Vec2 {
	return Vec2{X: b.Width / 2, Y: b.Height / 2}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.Center.X - b.Width/2 }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.Center.X + b.Width/2 }

// Top returns the y-coordinate of the top edge (y grows downward).
func (b Box) Top() float64 { return b.Center.Y - b.Height/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Center.Y + b.Height/2 }

// Edges returns the left, right, top and bottom edges as segments.
func (b Box) Edges() [4]Segment {
	l, r, t, bt := b.Left(), b.Right(), b.Top(), b.Bottom()
	return [4]Segment{
		{P1: V(l, t), P2: V(l, bt)},
		{P1: V(r, t), P2: V(r, bt)},
		{P1: V(l, t), P2: V(r, t)},
		{P1: V(l, bt), P2: V(r, bt)},
	}
}

// Move translates the box by delta.
func (b *Box) Move(delta Vec2) {
	b.Center = b.Center.Add(delta)
}

// Segment is a line segment between two distinct endpoints.
type Segment struct {
	ID     int
	P1, P2 Vec2
}

// NewSegment creates a segment. Coincident endpoints are rejected.
func NewSegment(id int, p1, p2 Vec2) (Segment, error) {
	if !p1.IsFinite() || !p2.IsFinite() {
		return Segment{}, &ShapeError{Code: CodeNonFinite, Kind: KindSegment, ID: id,
			Message: "endpoints must be finite"}
	}
	if p1 == p2 {
		return Segment{}, &ShapeError{Code: CodeDegenerateSegment, Kind: KindSegment, ID: id,
			Message: fmt.Sprintf("endpoints coincide at (%g, %g)", p1.X, p1.Y)}
	}
	return Segment{ID: id, P1: p1, P2: p2}, nil
}

// Dir returns P2 - P1.
func (s Segment) Dir() Vec2 {
	return s.P2.Sub(s.P1)
}

// Normal returns a unit vector perpendicular to the segment.
func (s Segment) Normal() Vec2 {
	return s.Dir().Perp().Normalize()
}

// Plunger is a box shaft with a circular knob that move together.
type Plunger struct {
	Shaft Box
	Knob  Circle
	Color string
}

// NewPlunger pairs a shaft and knob. Plungers are driven externally, so any
// knob velocity is cleared.
func NewPlunger(shaft Box, knob Circle, color string) (Plunger, error) {
	if shaft.ID == knob.ID {
		return Plunger{}, &ShapeError{Code: CodeDuplicateID, Kind: KindBox, ID: shaft.ID,
			Message: "plunger shaft and knob share an id"}
	}
	if _, err := NewBox(shaft.ID, shaft.Center, shaft.Width, shaft.Height); err != nil {
		return Plunger{}, err
	}
	if _, err := NewCircle(knob.ID, knob.Center, knob.Radius); err != nil {
		return Plunger{}, err
	}
	knob.Velocity = Vec2{}
	return Plunger{Shaft: shaft, Knob: knob, Color: color}, nil
}

// Move translates shaft and knob together.
func (p *Plunger) Move(delta Vec2) {
	p.Shaft.Move(delta)
	p.Knob.Move(delta)
}

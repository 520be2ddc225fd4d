// Package physics resolves collisions between balls and the obstacles of
// an Arena. Resolvers mutate ball state in place and never validate their
// inputs: shapes are validated once, when they are constructed.
package physics

import (
	"fmt"
	"strings"
)

// SegmentStrategy selects how balls interact with segment obstacles.
type SegmentStrategy string

const (
	// SegmentSwept tests the path a ball travels during the step against
	// the segment and reflects velocity about the segment's normal.
	SegmentSwept SegmentStrategy = "swept"

	// SegmentProximity reflects velocity when the ball is closer to the
	// segment than its radius and moves the ball by the reflected velocity.
	SegmentProximity SegmentStrategy = "proximity"
)

// ParseSegmentStrategy converts a config string to a SegmentStrategy.
// An empty string selects SegmentSwept.
func ParseSegmentStrategy(s string) (SegmentStrategy, error) {
	switch SegmentStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SegmentSwept:
		return SegmentSwept, nil
	case SegmentProximity:
		return SegmentProximity, nil
	default:
		return "", fmt.Errorf("physics: unknown segment strategy %q", s)
	}
}

// Params holds the response coefficients used by the resolvers.
type Params struct {
	// BallRestitution is the coefficient of restitution between balls.
	BallRestitution float64

	// WallRestitution scales the reflected x velocity at the side walls.
	WallRestitution float64

	// FloorRestitution scales the reflected y velocity at ground and ceiling.
	FloorRestitution float64

	// BoxRestitution scales the reflected velocity component after a box hit.
	BoxRestitution float64

	// SegmentDamping scales velocity after a proximity segment hit.
	SegmentDamping float64

	// SegmentStrategy selects the ball-segment resolver run by Step.
	SegmentStrategy SegmentStrategy

	// OnCeiling, if set, is called synchronously once per ball that hits
	// the ceiling during a step.
	OnCeiling func()
}

// DefaultParams returns the coefficients of the reference table.
func DefaultParams() Params {
	return Params{
		BallRestitution:  1.0,
		WallRestitution:  1.0,
		FloorRestitution: 0.9,
		BoxRestitution:   0.8,
		SegmentDamping:   0.8,
		SegmentStrategy:  SegmentSwept,
	}
}

// Validate checks that every coefficient lies in [0, 1] and the strategy
// is known.
func (p Params) Validate() error {
	coeffs := []struct {
		name string
		val  float64
	}{
		{"ball_restitution", p.BallRestitution},
		{"wall_restitution", p.WallRestitution},
		{"floor_restitution", p.FloorRestitution},
		{"box_restitution", p.BoxRestitution},
		{"segment_damping", p.SegmentDamping},
	}
	for _, c := range coeffs {
		if c.val < 0 || c.val > 1 {
			return fmt.Errorf("physics: %s %g outside [0, 1]", c.name, c.val)
		}
	}
	if p.SegmentStrategy != SegmentSwept && p.SegmentStrategy != SegmentProximity {
		return fmt.Errorf("physics: unknown segment strategy %q", p.SegmentStrategy)
	}
	return nil
}

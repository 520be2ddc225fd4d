// Package scenario loads table layouts from YAML files and builds
// physics arenas from them.
package scenario

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/vovakirdan/tui-pinball/internal/geom"
	"github.com/vovakirdan/tui-pinball/internal/physics"
)

const (
	// DefaultWidth is the arena width used when a file omits it.
	DefaultWidth = 1300

	// DefaultHeight is the arena height used when a file omits it.
	DefaultHeight = 700
)

// ErrMissingID is returned for a scenario file without an id.
var ErrMissingID = errors.New("scenario: missing id")

// PlungerSpec describes a plunger before validation.
type PlungerSpec struct {
	Shaft geom.Box
	Knob  geom.Circle
	Color string
}

// Scenario is a parsed but not yet validated table layout.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Width       float64
	Height      float64

	Balls    []geom.Circle
	Boxes    []geom.Box
	Circles  []geom.Circle
	Segments []geom.Segment
	Plungers []PlungerSpec

	Metadata map[string]string
	FilePath string
}

// Title returns the display name, falling back to the ID.
func (s *Scenario) Title() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// Clone returns a copy of s that shares no slices or maps with it.
func (s *Scenario) Clone() Scenario {
	c := *s
	c.Balls = slices.Clone(s.Balls)
	c.Boxes = slices.Clone(s.Boxes)
	c.Circles = slices.Clone(s.Circles)
	c.Segments = slices.Clone(s.Segments)
	c.Plungers = slices.Clone(s.Plungers)
	c.Metadata = maps.Clone(s.Metadata)
	return c
}

// ShapeCount returns the number of shapes the scenario defines, counting
// each plunger as two.
func (s *Scenario) ShapeCount() int {
	return len(s.Balls) + len(s.Boxes) + len(s.Circles) + len(s.Segments) + 2*len(s.Plungers)
}

// Build validates every shape and returns a fresh arena. The scenario is
// not modified, so Build can be called repeatedly to restart a run.
func (s *Scenario) Build() (*physics.Arena, error) {
	if s.ID == "" {
		return nil, ErrMissingID
	}

	a, err := physics.NewArena(s.Width, s.Height)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
	}

	for _, b := range s.Balls {
		ball, err := geom.NewBall(b.ID, b.Center, b.Radius, b.Velocity)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		if err := a.AddBall(ball); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
	}

	for _, b := range s.Boxes {
		box, err := geom.NewBox(b.ID, b.Center, b.Width, b.Height)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		if err := a.AddBox(box); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
	}

	for _, c := range s.Circles {
		circle, err := geom.NewCircle(c.ID, c.Center, c.Radius)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		if err := a.AddCircle(circle); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
	}

	for _, sg := range s.Segments {
		segment, err := geom.NewSegment(sg.ID, sg.P1, sg.P2)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		if err := a.AddSegment(segment); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
	}

	for _, p := range s.Plungers {
		plunger, err := geom.NewPlunger(p.Shaft, p.Knob, p.Color)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		if err := a.AddPlunger(plunger); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
	}

	return a, nil
}

package physics

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-pinball/internal/geom"
)

// DefaultActivationDelay is how long plunger parts stay inert after the
// simulation starts.
const DefaultActivationDelay = 300 * time.Millisecond

var (
	// ErrDuplicateID is returned when a shape ID is already in the arena.
	ErrDuplicateID = errors.New("physics: duplicate shape id")

	// ErrInvalidArena is returned for non-positive arena dimensions.
	ErrInvalidArena = errors.New("physics: invalid arena size")
)

// plungerSlot records where a plunger's parts were inserted.
type plungerSlot struct {
	box    int
	circle int
}

// Arena owns every shape of one simulation. The collections are ordered;
// order decides which obstacle resolves first when a ball touches several
// in one step. Shapes may be mutated in place but Boxes and Circles must not
// be reordered once plungers are active.
type Arena struct {
	Width, Height float64

	Balls    []geom.Circle
	Boxes    []geom.Box
	Circles  []geom.Circle
	Segments []geom.Segment
	Plungers []geom.Plunger

	// ActivationDelay is the elapsed time after which plunger parts become
	// obstacles.
	ActivationDelay time.Duration

	tick      uint64
	activated bool
	slots     []plungerSlot
	ids       map[int]struct{}
}

// NewArena creates an empty arena of the given size.
func NewArena(width, height float64) (*Arena, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidArena, width, height)
	}
	return &Arena{
		Width:           width,
		Height:          height,
		ActivationDelay: DefaultActivationDelay,
		ids:             make(map[int]struct{}),
	}, nil
}

func (a *Arena) claim(ids ...int) error {
	if a.ids == nil {
		a.ids = make(map[int]struct{})
	}
	for i, id := range ids {
		if _, taken := a.ids[id]; taken {
			return fmt.Errorf("%w: %d", ErrDuplicateID, id)
		}
		for _, other := range ids[:i] {
			if other == id {
				return fmt.Errorf("%w: %d", ErrDuplicateID, id)
			}
		}
	}
	for _, id := range ids {
		a.ids[id] = struct{}{}
	}
	return nil
}

// AddBall appends a mobile circle.
func (a *Arena) AddBall(c geom.Circle) error {
	if err := a.claim(c.ID); err != nil {
		return err
	}
	a.Balls = append(a.Balls, c)
	return nil
}

// AddBox appends a box obstacle.
func (a *Arena) AddBox(b geom.Box) error {
	if err := a.claim(b.ID); err != nil {
		return err
	}
	a.Boxes = append(a.Boxes, b)
	return nil
}

// AddCircle appends a static circle obstacle.
func (a *Arena) AddCircle(c geom.Circle) error {
	if err := a.claim(c.ID); err != nil {
		return err
	}
	a.Circles = append(a.Circles, c)
	return nil
}

// AddSegment appends a segment obstacle.
func (a *Arena) AddSegment(s geom.Segment) error {
	if err := a.claim(s.ID); err != nil {
		return err
	}
	a.Segments = append(a.Segments, s)
	return nil
}

// AddPlunger registers a plunger. Its parts join the obstacle collections
// only when ActivatePlungers fires.
func (a *Arena) AddPlunger(p geom.Plunger) error {
	if a.activated {
		return errors.New("physics: plungers already active")
	}
	if err := a.claim(p.Shaft.ID, p.Knob.ID); err != nil {
		return err
	}
	a.Plungers = append(a.Plungers, p)
	return nil
}

// Tick returns the number of completed steps.
func (a *Arena) Tick() uint64 {
	return a.tick
}

// Active reports whether plunger parts have joined the obstacles.
func (a *Arena) Active() bool {
	return a.activated
}

// ActivatePlungers inserts every plunger shaft into Boxes and knob into
// Circles once elapsed exceeds ActivationDelay. It fires at most once and
// reports whether this call performed the insertion.
func (a *Arena) ActivatePlungers(elapsed time.Duration) bool {
	if a.activated || elapsed <= a.ActivationDelay {
		return false
	}

	a.slots = make([]plungerSlot, len(a.Plungers))
	for i, p := range a.Plungers {
		a.slots[i] = plungerSlot{box: len(a.Boxes), circle: len(a.Circles)}
		a.Boxes = append(a.Boxes, p.Shaft)
		a.Circles = append(a.Circles, p.Knob)
	}
	a.activated = true
	return true
}

// MovePlunger translates plunger i, and its active obstacle copies, by delta.
func (a *Arena) MovePlunger(i int, delta geom.Vec2) error {
	if i < 0 || i >= len(a.Plungers) {
		return fmt.Errorf("physics: plunger %d out of range [0, %d)", i, len(a.Plungers))
	}
	a.Plungers[i].Move(delta)
	if a.activated {
		slot := a.slots[i]
		a.Boxes[slot.box].Move(delta)
		a.Circles[slot.circle].Move(delta)
	}
	return nil
}

// Ball returns a pointer to the ball with the given ID, or nil.
func (a *Arena) Ball(id int) *geom.Circle {
	for i := range a.Balls {
		if a.Balls[i].ID == id {
			return &a.Balls[i]
		}
	}
	return nil
}

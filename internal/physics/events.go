package physics

// EventKind identifies what a ball collided with.
type EventKind uint8

const (
	EventBallBall EventKind = iota
	EventBallBox
	EventBallCircle
	EventBallSegment
	EventWall
	EventFloor
	EventCeiling
)

// NumEventKinds is the number of distinct event kinds.
const NumEventKinds = int(EventCeiling) + 1

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventBallBall:
		return "ball-ball"
	case EventBallBox:
		return "ball-box"
	case EventBallCircle:
		return "ball-circle"
	case EventBallSegment:
		return "ball-segment"
	case EventWall:
		return "wall"
	case EventFloor:
		return "floor"
	case EventCeiling:
		return "ceiling"
	default:
		return "unknown"
	}
}

// Event records one resolved contact during a step.
type Event struct {
	Kind EventKind
	Ball int // ID of the ball
	// Other is the ID of the second ball or the obstacle.
	// Unused for boundary events.
	Other int
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	Tick   uint64
	Events []Event
}

// Count returns how many events of the given kind occurred.
func (r StepResult) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// CeilingHits returns the number of ceiling events this step.
func (r StepResult) CeilingHits() int {
	return r.Count(EventCeiling)
}

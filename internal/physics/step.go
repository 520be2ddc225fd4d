package physics

import "github.com/vovakirdan/tui-pinball/internal/geom"

// Step advances the arena by one tick of length dt (1 = one reference
// frame). Gravity and per-ball acceleration are integrated into velocity,
// velocity into position, and then the resolvers run in this fixed order:
//
//	ball-box -> ball-circle -> ball-segment -> ball-ball -> boundary
//
// Every resolver mutates balls in place, so later resolvers, and later
// pairs within one resolver, see the corrections made before them.
func Step(a *Arena, p Params, gravity geom.Vec2, dt float64) StepResult {
	for i := range a.Balls {
		b := &a.Balls[i]
		b.Velocity = b.Velocity.Add(gravity.Add(b.Acceleration).Scale(dt))
		b.Center = b.Center.Add(b.Velocity.Scale(dt))
	}

	var events []Event
	events = resolveBoxes(a, p, events)
	events = resolveCircles(a, events)
	events = resolveSegments(a, p, dt, events)
	events = resolveBallPairs(a, p, events)
	events = resolveBoundaries(a, p, events)

	a.tick++
	return StepResult{Tick: a.tick, Events: events}
}

func resolveBoxes(a *Arena, p Params, events []Event) []Event {
	for i := range a.Balls {
		ball := &a.Balls[i]
		for _, box := range a.Boxes {
			if ResolveBallBox(ball, box, p.BoxRestitution) {
				events = append(events, Event{Kind: EventBallBox, Ball: ball.ID, Other: box.ID})
			}
		}
	}
	return events
}

func resolveCircles(a *Arena, events []Event) []Event {
	for i := range a.Balls {
		ball := &a.Balls[i]
		for _, obstacle := range a.Circles {
			if ResolveBallCircle(ball, obstacle) {
				events = append(events, Event{Kind: EventBallCircle, Ball: ball.ID, Other: obstacle.ID})
			}
		}
	}
	return events
}

func resolveSegments(a *Arena, p Params, dt float64, events []Event) []Event {
	for i := range a.Balls {
		ball := &a.Balls[i]
		for _, s := range a.Segments {
			var hit bool
			if p.SegmentStrategy == SegmentProximity {
				hit = ResolveBallSegmentProximity(ball, s, p.SegmentDamping)
			} else {
				hit = ResolveBallSegmentSwept(ball, s, dt)
			}
			if hit {
				events = append(events, Event{Kind: EventBallSegment, Ball: ball.ID, Other: s.ID})
			}
		}
	}
	return events
}

// resolveBallPairs visits every unordered pair (i, j), j > i, in index
// order. Ball i is already corrected by earlier pairs when (i, j) runs.
func resolveBallPairs(a *Arena, p Params, events []Event) []Event {
	for i := 0; i < len(a.Balls); i++ {
		for j := i + 1; j < len(a.Balls); j++ {
			b1, b2 := &a.Balls[i], &a.Balls[j]
			if ResolveBallBall(b1, b2, p.BallRestitution) {
				events = append(events, Event{Kind: EventBallBall, Ball: b1.ID, Other: b2.ID})
			}
		}
	}
	return events
}

func resolveBoundaries(a *Arena, p Params, events []Event) []Event {
	for i := range a.Balls {
		ball := &a.Balls[i]
		hit := ResolveBallBoundary(ball, a.Width, a.Height, p)
		if hit.Has(BoundaryFloor) {
			events = append(events, Event{Kind: EventFloor, Ball: ball.ID})
		}
		if hit.Has(BoundaryCeiling) {
			events = append(events, Event{Kind: EventCeiling, Ball: ball.ID})
			if p.OnCeiling != nil {
				p.OnCeiling()
			}
		}
		if hit.Has(BoundaryLeft) || hit.Has(BoundaryRight) {
			events = append(events, Event{Kind: EventWall, Ball: ball.ID})
		}
	}
	return events
}

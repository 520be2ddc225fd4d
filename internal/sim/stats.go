package sim

import "github.com/vovakirdan/tui-pinball/internal/physics"

// Stats accumulates per-run counters.
type Stats struct {
	Steps       uint64
	Contacts    [physics.NumEventKinds]int
	CeilingHits int

	// ActivatedAt is the tick on which plungers joined the obstacles, or
	// zero if they never did.
	ActivatedAt uint64

	// PeakParticles is the largest live particle count seen.
	PeakParticles int
}

func (s *Stats) record(res physics.StepResult) {
	s.Steps++
	for _, e := range res.Events {
		s.Contacts[e.Kind]++
	}
	s.CeilingHits += res.CeilingHits()
}

// TotalContacts returns the number of resolved contacts of every kind.
func (s Stats) TotalContacts() int {
	total := 0
	for _, n := range s.Contacts {
		total += n
	}
	return total
}

// ContactsBy returns the count for one event kind.
func (s Stats) ContactsBy(kind physics.EventKind) int {
	if int(kind) >= len(s.Contacts) {
		return 0
	}
	return s.Contacts[kind]
}

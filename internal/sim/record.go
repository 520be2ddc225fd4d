package sim

import "github.com/vovakirdan/tui-pinball/internal/storage"

// Record converts the result to a storage row. RunID may be empty; the
// store assigns one.
func (r Result) Record() storage.Run {
	return storage.Run{
		RunID:           r.RunID,
		Scenario:        r.Scenario,
		Steps:           int(r.Stats.Steps), //#nosec G115 -- step counts fit in int
		CeilingHits:     r.Stats.CeilingHits,
		Contacts:        r.Stats.TotalContacts(),
		Balls:           r.Balls,
		FinalHash:       r.Hash,
		Restitution:     r.Params.BallRestitution,
		SegmentStrategy: string(r.Params.SegmentStrategy),
		DurationMs:      r.Elapsed.Milliseconds(),
	}
}

// Saver persists finished runs.
type Saver interface {
	SaveRun(run storage.Run) (string, error)
}

// Save stores the result and fills in its RunID.
func (r *Result) Save(s Saver) error {
	id, err := s.SaveRun(r.Record())
	if err != nil {
		return err
	}
	r.RunID = id
	return nil
}

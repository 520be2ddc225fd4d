package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/geom"
	"github.com/vovakirdan/tui-pinball/internal/physics"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/scenario"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

func builtin(t *testing.T, id string) scenario.Scenario {
	t.Helper()
	s, err := registry.Create(id)
	require.NoError(t, err)
	return s
}

func newRunner(t *testing.T, id string, cfg config.SimConfig) *Runner {
	t.Helper()
	s := builtin(t, id)
	a, err := s.Build()
	require.NoError(t, err)
	r, err := New(id, a, cfg, nil)
	require.NoError(t, err)
	return r
}

func TestStepClock(t *testing.T) {
	c := StepClock{Frame: 16 * time.Millisecond}
	assert.Equal(t, time.Duration(0), c.Elapsed(0))
	assert.Equal(t, 320*time.Millisecond, c.Elapsed(20))
}

func TestWallClock(t *testing.T) {
	c := NewWallClock()
	assert.GreaterOrEqual(t, c.Elapsed(0), time.Duration(0))
	c.Restart()
	assert.Less(t, c.Elapsed(1000), time.Minute)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultSimConfig()
	cfg.Physics.SegmentStrategy = "bogus"

	a, err := physics.NewArena(100, 100)
	require.NoError(t, err)
	_, err = New("x", a, cfg, nil)
	assert.Error(t, err)
}

func TestRunnerActivatesPlungersOnce(t *testing.T) {
	cfg := config.DefaultSimConfig()
	r := newRunner(t, "pinball", cfg)
	boxes := len(r.Arena.Boxes)

	// 300ms at 16ms per step: tick 18 is 288ms, tick 19 is 304ms.
	for range 18 {
		r.Tick()
	}
	assert.False(t, r.Arena.Active())
	assert.Equal(t, uint64(0), r.Stats().ActivatedAt)

	r.Tick()
	assert.True(t, r.Arena.Active())
	assert.Equal(t, uint64(19), r.Stats().ActivatedAt)
	assert.Equal(t, boxes+2, len(r.Arena.Boxes))

	for range 100 {
		r.Tick()
	}
	assert.Equal(t, boxes+2, len(r.Arena.Boxes), "plunger parts are inserted once")
	assert.Equal(t, uint64(19), r.Stats().ActivatedAt)
}

func TestRunnerCeilingBursts(t *testing.T) {
	cfg := config.DefaultSimConfig()
	cfg.Physics.GravityY = 0

	a, err := physics.NewArena(200, 200)
	require.NoError(t, err)
	require.NoError(t, a.AddBall(geom.Circle{ID: 1, Center: geom.V(50, 12), Radius: 10, Velocity: geom.V(0, -4)}))

	r, err := New("ceiling", a, cfg, nil)
	require.NoError(t, err)

	res := r.Tick()
	require.Equal(t, 1, res.CeilingHits())
	require.NotNil(t, r.Effects)
	assert.Equal(t, cfg.Effects.BurstSize, r.Effects.Len())
	assert.Equal(t, geom.V(100, 50), r.BurstOrigin)
	assert.Equal(t, 1, r.Stats().CeilingHits)
	assert.Equal(t, cfg.Effects.BurstSize, r.Stats().PeakParticles)
}

func TestRunnerEffectsDisabled(t *testing.T) {
	cfg := config.DefaultSimConfig()
	cfg.Effects.Enabled = false
	r := newRunner(t, "cradle", cfg)
	assert.Nil(t, r.Effects)
	r.Tick()
	assert.Equal(t, 0, r.Stats().PeakParticles)
}

func TestRunnerStats(t *testing.T) {
	cfg := config.DefaultSimConfig()
	r := newRunner(t, "cradle", cfg)

	stats, err := r.Run(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), stats.Steps)
	assert.Equal(t, uint64(200), r.Arena.Tick())
	assert.Greater(t, stats.ContactsBy(physics.EventBallBall), 0, "the striker reaches the row")
	assert.Greater(t, stats.ContactsBy(physics.EventFloor), 0)
	assert.Equal(t, stats.TotalContacts(), sum(stats.Contacts[:]))
	assert.Equal(t, 0, stats.ContactsBy(physics.EventKind(200)))
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestRunnerCancel(t *testing.T) {
	r := newRunner(t, "pegboard", config.DefaultSimConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := r.Run(ctx, 100)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(0), stats.Steps)
}

func TestRunnerDeterministic(t *testing.T) {
	cfg := config.DefaultSimConfig()
	a := newRunner(t, "pinball", cfg)
	b := newRunner(t, "pinball", cfg)

	_, err := a.Run(context.Background(), 1500)
	require.NoError(t, err)
	_, err = b.Run(context.Background(), 1500)
	require.NoError(t, err)

	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Stats().Contacts, b.Stats().Contacts)
	assert.Equal(t, a.Effects.Particles(), b.Effects.Particles())
}

func TestRunnerReset(t *testing.T) {
	cfg := config.DefaultSimConfig()
	r := newRunner(t, "pinball", cfg)
	_, err := r.Run(context.Background(), 50)
	require.NoError(t, err)
	first := r.Hash()

	s := builtin(t, "pinball")
	a, err := s.Build()
	require.NoError(t, err)
	r.Reset(a, cfg.Run.Seed)
	assert.Equal(t, Stats{}, r.Stats())
	assert.Equal(t, cfg.Plunger.ActivationDelay(), r.Arena.ActivationDelay)

	_, err = r.Run(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, first, r.Hash(), "a reset run replays identically")
}

type memSaver struct {
	runs []storage.Run
}

func (m *memSaver) SaveRun(run storage.Run) (string, error) {
	m.runs = append(m.runs, run)
	return "run-1", nil
}

func TestResultRecord(t *testing.T) {
	cfg := config.DefaultSimConfig()
	config.ApplyPreset(&cfg, config.PresetDamped)
	r := newRunner(t, "cradle", cfg)
	_, err := r.Run(context.Background(), 30)
	require.NoError(t, err)

	res := r.Result()
	rec := res.Record()
	assert.Equal(t, "cradle", rec.Scenario)
	assert.Equal(t, 30, rec.Steps)
	assert.Equal(t, 6, rec.Balls)
	assert.Equal(t, 0.1, rec.Restitution)
	assert.Equal(t, "swept", rec.SegmentStrategy)
	assert.Equal(t, r.Hash(), rec.FinalHash)

	var m memSaver
	require.NoError(t, res.Save(&m))
	assert.Equal(t, "run-1", res.RunID)
	assert.Len(t, m.runs, 1)
}

func TestRunBatch(t *testing.T) {
	cfg := config.DefaultSimConfig()
	var jobs []Job
	for _, id := range []string{"pinball", "pegboard", "cradle", "pinball"} {
		jobs = append(jobs, Job{Scenario: builtin(t, id), Config: cfg, Steps: 300})
	}

	results, err := RunBatch(context.Background(), jobs, 2, nil)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, res := range results {
		assert.Equal(t, jobs[i].Scenario.ID, res.Scenario)
		assert.Equal(t, uint64(300), res.Stats.Steps)
	}
	// Same scenario and config, different goroutines: same outcome.
	assert.Equal(t, results[0].Hash, results[3].Hash)

	// Sequential reference run.
	seq := newRunner(t, "pegboard", cfg)
	_, err = seq.Run(context.Background(), 300)
	require.NoError(t, err)
	assert.Equal(t, seq.Hash(), results[1].Hash)
}

func TestRunBatchFailure(t *testing.T) {
	bad := scenario.Scenario{ID: "bad", Width: 100, Height: 100,
		Balls: []geom.Circle{{ID: 1, Center: geom.V(1, 1), Radius: -1}}}
	jobs := []Job{
		{Scenario: builtin(t, "cradle"), Config: config.DefaultSimConfig(), Steps: 10},
		{Scenario: bad, Config: config.DefaultSimConfig(), Steps: 10},
	}

	_, err := RunBatch(context.Background(), jobs, 4, nil)
	assert.ErrorIs(t, err, geom.ErrInvalidShape)
}

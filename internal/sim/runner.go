// Package sim drives physics arenas over time: it owns the step loop,
// plunger activation timing, particle effects and run statistics.
package sim

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/geom"
	"github.com/vovakirdan/tui-pinball/internal/physics"
)

// Runner advances one arena. It is not safe for concurrent use.
type Runner struct {
	Scenario string
	Arena    *physics.Arena
	Params   physics.Params
	Gravity  geom.Vec2
	Dt       float64
	Clock    Clock

	// Effects may be nil to disable particles.
	Effects     *effects.System
	BurstSize   int
	BurstOrigin geom.Vec2

	logger  *log.Logger
	stats   Stats
	last    physics.StepResult
	started time.Time
	elapsed time.Duration
}

// New creates a runner for arena a using cfg. A nil logger discards output.
func New(scenario string, a *physics.Arena, cfg config.SimConfig, logger *log.Logger) (*Runner, error) {
	params, err := cfg.Physics.Params()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	a.ActivationDelay = cfg.Plunger.ActivationDelay()

	r := &Runner{
		Scenario:    scenario,
		Arena:       a,
		Params:      params,
		Gravity:     cfg.Physics.Gravity(),
		Dt:          cfg.Physics.Dt,
		Clock:       StepClock{Frame: cfg.Run.FrameDuration()},
		BurstSize:   cfg.Effects.BurstSize,
		BurstOrigin: geom.V(a.Width/2, cfg.Effects.OriginY),
		logger:      logger.With("scenario", scenario),
	}
	if cfg.Effects.Enabled {
		r.Effects = effects.NewSystem(cfg.Run.Seed, effects.Options{
			Lifespan: cfg.Effects.Lifespan,
			Decay:    cfg.Effects.Decay,
			Max:      cfg.Effects.MaxParticles,
			Hues:     len(ParticlePalette),
		})
	}
	return r, nil
}

// ParticlePalette is the set of colors particles are drawn in. Effects pick
// an index into it.
var ParticlePalette = []string{"#FF5F87", "#FFAF00", "#5FD7FF", "#87FF5F", "#D787FF", "#FFFF87"}

// Tick advances the simulation one step and returns what happened.
func (r *Runner) Tick() physics.StepResult {
	if r.started.IsZero() {
		r.started = time.Now()
	}

	res := physics.Step(r.Arena, r.Params, r.Gravity, r.Dt)

	if r.Arena.ActivatePlungers(r.Clock.Elapsed(res.Tick)) {
		r.stats.ActivatedAt = res.Tick
		r.logger.Debug("plungers active", "tick", res.Tick, "plungers", len(r.Arena.Plungers))
	}

	if r.Effects != nil {
		for i := 0; i < res.CeilingHits(); i++ {
			r.Effects.Burst(r.BurstOrigin, r.BurstSize)
		}
		r.Effects.Update()
		r.stats.PeakParticles = max(r.stats.PeakParticles, r.Effects.Len())
	}

	r.stats.record(res)
	r.last = res
	r.elapsed = time.Since(r.started)
	return res
}

// Run advances up to steps ticks, stopping early if ctx is cancelled.
// Returns the stats so far and ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context, steps int) (Stats, error) {
	r.logger.Debug("run started", "steps", steps, "balls", len(r.Arena.Balls))
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			r.logger.Info("run cancelled", "tick", r.Arena.Tick())
			return r.stats, err
		}
		r.Tick()
	}
	r.logger.Debug("run finished", "tick", r.Arena.Tick(), "contacts", r.stats.TotalContacts())
	return r.stats, nil
}

// Stats returns the counters accumulated so far.
func (r *Runner) Stats() Stats {
	return r.stats
}

// Last returns the result of the most recent Tick.
func (r *Runner) Last() physics.StepResult {
	return r.last
}

// Elapsed returns the wall time spent between the first and latest Tick.
func (r *Runner) Elapsed() time.Duration {
	return r.elapsed
}

// Hash returns the snapshot hash of the current arena state.
func (r *Runner) Hash() uint64 {
	snap := r.Arena.Snapshot()
	return snap.Hash()
}

// Reset swaps in a fresh arena and clears stats and particles. The
// effects RNG is reseeded with seed.
func (r *Runner) Reset(a *physics.Arena, seed int64) {
	a.ActivationDelay = r.Arena.ActivationDelay
	r.Arena = a
	r.stats = Stats{}
	r.last = physics.StepResult{}
	r.started = time.Time{}
	r.elapsed = 0
	if r.Effects != nil {
		r.Effects.Reset(seed)
	}
	if wc, ok := r.Clock.(*WallClock); ok {
		wc.Restart()
	}
	r.logger.Debug("runner reset")
}

// Result summarizes a finished run.
type Result struct {
	RunID    string
	Scenario string
	Stats    Stats
	Balls    int
	Hash     uint64
	Elapsed  time.Duration
	Params   physics.Params
}

// Result returns a summary of the run so far.
func (r *Runner) Result() Result {
	return Result{
		Scenario: r.Scenario,
		Stats:    r.stats,
		Balls:    len(r.Arena.Balls),
		Hash:     r.Hash(),
		Elapsed:  r.elapsed,
		Params:   r.Params,
	}
}

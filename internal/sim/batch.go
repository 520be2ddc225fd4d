package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/scenario"
)

// Job is one independent run in a batch.
type Job struct {
	Scenario scenario.Scenario
	Config   config.SimConfig
	Steps    int
}

// RunBatch runs every job on its own arena with at most workers running at
// once. Each arena is stepped by a single goroutine. Results are returned
// in job order. The first failing job cancels the rest.
func RunBatch(ctx context.Context, jobs []Job, workers int, logger *log.Logger) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			a, err := job.Scenario.Build()
			if err != nil {
				return err
			}
			r, err := New(job.Scenario.ID, a, job.Config, logger)
			if err != nil {
				return fmt.Errorf("sim: job %d (%s): %w", i, job.Scenario.ID, err)
			}

			start := time.Now()
			if _, err := r.Run(ctx, job.Steps); err != nil {
				return fmt.Errorf("sim: job %d (%s): %w", i, job.Scenario.ID, err)
			}

			results[i] = r.Result()
			logger.Debug("job done", "scenario", job.Scenario.ID, "steps", job.Steps, "took", time.Since(start))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

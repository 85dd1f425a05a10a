package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on each tick until ctx is done. Runs never
// overlap; a slow run delays the next tick.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	lg := log.With().Str("component", "scheduler").Str("task", name).Logger()

	runOnce := func() {
		if err := task(ctx); err != nil && ctx.Err() == nil {
			lg.Error().Err(err).Msg("task failed")
		}
	}

	runOnce()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			runOnce()
		}
	}
}

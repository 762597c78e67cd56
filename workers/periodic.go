package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-service-kit/logger"
)

// Periodic runs Fn on a fixed interval until the context is cancelled. The
// first run happens one interval after start, not immediately.
//
// A panic inside Fn is recovered and logged so one bad tick cannot kill the
// worker; errors returned by Fn are logged and the ticker keeps going.
type Periodic struct {
	// Name identifies the worker in logs.
	Name string

	// Interval is the time between runs. Run exits immediately when the
	// interval is not positive.
	Interval time.Duration

	// Fn is the work to perform on every tick.
	Fn func(ctx context.Context) error
}

// Run implements [Worker]. The logger is taken from ctx, so workers started
// through [Group] log with the group's logger.
func (p *Periodic) Run(ctx context.Context) {
	log := logger.FromContext(ctx)

	if p.Interval <= 0 {
		log.Error().Str("worker", p.Name).Msg("periodic worker needs a positive interval")
		return
	}
	if p.Fn == nil {
		log.Error().Str("worker", p.Name).Msg("periodic worker needs a callback")
		return
	}

	log.Debug().Str("worker", p.Name).Dur("interval", p.Interval).Msg("periodic worker started")

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("worker", p.Name).Msg("periodic worker stopped")
			return
		case <-ticker.C:
			p.tick(ctx, log)
		}
	}
}

func (p *Periodic) tick(ctx context.Context, log *logger.Logger) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("worker", p.Name).Interface("panic", rec).Msg("panic recovered in periodic worker")
		}
	}()

	if err := p.Fn(ctx); err != nil {
		log.Err(err).Str("worker", p.Name).Msg("periodic worker tick failed")
	}
}

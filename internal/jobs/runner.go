// Package jobs runs background work on fixed schedules until the context ends.
package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"property-backend/internal/observability"
	"property-backend/internal/timeutil"
)

type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
	log *zap.Logger
	wg  sync.WaitGroup
	now func() time.Time
}

func New(ctx context.Context, log *zap.Logger) *Runner {
	return &Runner{ctx: ctx, log: log, now: timeutil.Now}
}

// Every runs fn after each interval.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

// DailyAt runs fn once a day at hour:minute in the business timezone.
func (r *Runner) DailyAt(hour, minute int, name string, fn Job) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			now := r.now()
			next := timeutil.NextDailyRun(now, hour, minute)
			r.log.Info("job scheduled", zap.String("job", name), zap.Time("next_run", next))

			t := time.NewTimer(next.Sub(now))
			select {
			case <-r.ctx.Done():
				t.Stop()
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

// Wait blocks until every scheduled loop has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) run(name string, fn Job) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			jobErrors.WithLabelValues(name).Inc()
			r.log.Error("job panicked", zap.String("job", name), zap.Any("panic", rec))
		}
	}()
	if err := fn(r.ctx); err != nil {
		jobErrors.WithLabelValues(name).Inc()
		r.log.Error("job failed", zap.String("job", name), zap.Error(err))
		observability.CaptureErr(err)
	}
	jobRuns.WithLabelValues(name).Inc()
	jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

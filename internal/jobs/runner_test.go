package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEveryRunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(ctx, zap.NewNop())

	var calls atomic.Int32
	r.Every(5*time.Millisecond, "tick_test", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	r.Wait()
	assert.GreaterOrEqual(t, testutil.ToFloat64(jobRuns.WithLabelValues("tick_test")), float64(3))
}

func TestRunCountsErrorsAndPanics(t *testing.T) {
	r := New(context.Background(), zap.NewNop())

	r.run("err_test", func(context.Context) error { return errors.New("nope") })
	r.run("err_test", func(context.Context) error { panic("boom") })

	assert.Equal(t, float64(2), testutil.ToFloat64(jobErrors.WithLabelValues("err_test")))
}

func TestDailyAtFiresAtScheduledMinute(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, zap.NewNop())
	// one second before 08:00
	r.now = func() time.Time { return time.Date(2026, 10, 17, 7, 59, 59, 0, time.UTC) }

	fired := make(chan struct{}, 1)
	r.DailyAt(8, 0, "daily_test", func(context.Context) error {
		select {
		case fired <- struct{}{}:
		default:
		}
		return nil
	})

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("daily job did not fire")
	}
	cancel()
	r.Wait()
}

package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/cleanup"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/logging"
)

type fakeSweeper struct {
	calls int
	err   error
}

func (f *fakeSweeper) ExpireFeatured(context.Context) (int64, error) {
	f.calls++
	return 2, f.err
}

type fakePurger struct {
	got cleanup.CleanupConfig
}

func (f *fakePurger) PhysicallyDelete(_ context.Context, cfg cleanup.CleanupConfig) (*cleanup.CleanupResult, error) {
	f.got = cfg
	return &cleanup.CleanupResult{DeletedCount: 1}, nil
}

type fakePruner struct{ calls int }

func (f *fakePruner) Prune() int {
	f.calls++
	return 0
}

func TestRunNowDispatchesJobs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Cleanup.RetentionDays = 30
	cfg.Cleanup.MaxDeletionCount = 5
	sweeper, purger, pruner := &fakeSweeper{}, &fakePurger{}, &fakePruner{}
	s := NewScheduler(cfg, Jobs{Featured: sweeper, Purger: purger, Limiter: pruner}, logging.Discard())
	ctx := context.Background()

	require.NoError(t, s.RunNow(ctx, JobFeaturedSweep))
	require.NoError(t, s.RunNow(ctx, JobPurge))
	require.NoError(t, s.RunNow(ctx, JobPrune))

	assert.Equal(t, 1, sweeper.calls)
	assert.Equal(t, 1, pruner.calls)
	assert.Equal(t, 30, purger.got.RetentionDays)
	assert.Equal(t, 5, purger.got.MaxDeletionCount)
	assert.False(t, purger.got.DryRun)
}

func TestRunNowErrors(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("db down")}
	s := NewScheduler(config.DefaultConfig(), Jobs{Featured: sweeper}, logging.Discard())

	assert.EqualError(t, s.RunNow(context.Background(), JobFeaturedSweep), "db down")
	assert.Error(t, s.RunNow(context.Background(), JobPurge))
	assert.Error(t, s.RunNow(context.Background(), "bogus"))
}

func TestParseSchedule(t *testing.T) {
	s := NewScheduler(config.DefaultConfig(), Jobs{}, logging.Discard())
	assert.Equal(t, "0 2 * * *", s.parseSchedule("02:00", "x"))
	assert.Equal(t, "30 23 * * *", s.parseSchedule("23:30", "x"))
	assert.Equal(t, "*/5 * * * *", s.parseSchedule("*/5 * * * *", "x"))
	assert.Equal(t, "@hourly", s.parseSchedule("@hourly", "x"))
	assert.Equal(t, "x", s.parseSchedule("", "x"))
	assert.Equal(t, "x", s.parseSchedule("25:99", "x"))
}

func TestStartDisabledAndStop(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scheduler.Enabled = false
	s := NewScheduler(cfg, Jobs{Featured: &fakeSweeper{}}, logging.Discard())
	require.NoError(t, s.Start())
	assert.False(t, s.running)

	cfg.Scheduler.Enabled = true
	require.NoError(t, s.Start())
	assert.True(t, s.running)
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
	assert.False(t, s.running)
}

func TestStartRejectsBadCron(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scheduler.Enabled = true
	cfg.Scheduler.FeaturedSweepCron = "not a cron"
	s := NewScheduler(cfg, Jobs{Featured: &fakeSweeper{}}, logging.Discard())
	assert.Error(t, s.Start())
}

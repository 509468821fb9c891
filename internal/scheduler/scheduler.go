// Package scheduler runs the catalog's periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/cleanup"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
)

// Job names accepted by RunNow.
const (
	JobFeaturedSweep = "featured-sweep"
	JobPurge         = "purge"
	JobPrune         = "ratelimit-prune"
)

const pruneSpec = "@every 10m"

// FeaturedSweeper clears featured flags whose window has passed.
type FeaturedSweeper interface {
	ExpireFeatured(ctx context.Context) (int64, error)
}

// Purger physically removes soft-deleted properties.
type Purger interface {
	PhysicallyDelete(ctx context.Context, cfg cleanup.CleanupConfig) (*cleanup.CleanupResult, error)
}

// Pruner drops idle rate limiter state.
type Pruner interface {
	Prune() int
}

// Jobs bundles the work the scheduler can run. Nil members are skipped.
type Jobs struct {
	Featured FeaturedSweeper
	Purger   Purger
	Limiter  Pruner
}

// Scheduler handles scheduled maintenance tasks
type Scheduler struct {
	cron    *cron.Cron
	jobs    Jobs
	config  *config.Config
	logger  *slog.Logger
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg *config.Config, jobs Jobs, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(),
		jobs:   jobs,
		config: cfg,
		logger: logger.With("component", "scheduler"),
	}
}

// Start registers every configured job and starts the cron loop
func (s *Scheduler) Start() error {
	if !s.config.Scheduler.Enabled {
		s.logger.Info("Scheduler disabled in configuration")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	specs := map[string]string{}
	if s.jobs.Featured != nil {
		specs[JobFeaturedSweep] = s.parseSchedule(s.config.Scheduler.FeaturedSweepCron, "*/15 * * * *")
	}
	if s.jobs.Purger != nil {
		specs[JobPurge] = s.parseSchedule(s.config.Scheduler.PurgeCron, "0 3 * * *")
	}
	if s.jobs.Limiter != nil {
		specs[JobPrune] = pruneSpec
	}

	for _, name := range sortedKeys(specs) {
		name := name
		if _, err := s.cron.AddFunc(specs[name], func() {
			if err := s.run(context.Background(), name); err != nil {
				s.logger.Error("Scheduled job failed", "job", name, "error", err)
			}
		}); err != nil {
			return fmt.Errorf("schedule %s (%q): %w", name, specs[name], err)
		}
		s.logger.Info("Scheduled job", "job", name, "cron", specs[name])
	}

	s.cron.Start()
	s.running = true
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("Scheduler stopped")
	}
}

// RunNow immediately executes the named job (for manual trigger)
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.logger.Info("Manual trigger", "job", name)
	return s.run(ctx, name)
}

func (s *Scheduler) run(ctx context.Context, name string) error {
	switch name {
	case JobFeaturedSweep:
		if s.jobs.Featured == nil {
			break
		}
		n, err := s.jobs.Featured.ExpireFeatured(ctx)
		if err != nil {
			return err
		}
		s.logger.Info("Featured sweep completed", "expired", n)
		return nil
	case JobPurge:
		if s.jobs.Purger == nil {
			break
		}
		result, err := s.jobs.Purger.PhysicallyDelete(ctx, cleanup.CleanupConfig{
			RetentionDays:    s.config.Cleanup.RetentionDays,
			MaxDeletionCount: s.config.Cleanup.MaxDeletionCount,
			DeleteBlobs:      s.config.Cleanup.DeleteBlobs,
		})
		if err != nil {
			return err
		}
		s.logger.Info("Purge completed", "deleted", result.DeletedCount, "errors", result.ErrorCount)
		return nil
	case JobPrune:
		if s.jobs.Limiter == nil {
			break
		}
		s.logger.Debug("Rate limiter pruned", "removed", s.jobs.Limiter.Prune())
		return nil
	}
	return fmt.Errorf("unknown or unconfigured job %q", name)
}

// parseSchedule accepts a cron expression or a daily "HH:MM" time.
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseSchedule(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if strings.Contains(value, " ") || strings.HasPrefix(value, "@") {
		return value
	}

	var hour, minute int
	n, _ := fmt.Sscanf(value, "%d:%d", &hour, &minute)
	if n == 2 && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	s.logger.Warn("Failed to parse schedule, using default", "value", value, "default", fallback)
	return fallback
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	cron "github.com/robfig/cron/v3"

	"dnabot/core/log"
	"dnabot/metrics"
)

// Patterns of files generated by command handlers
var artifactPatterns = []string{"NetworkHealth_*.png", "inventory_*.csv"}

// TaskWrapper decorates a background task, e.g. with panic recovery and alerting
type TaskWrapper func(taskName string, task func() error) func() error

// Janitor removes generated chart and inventory files once they are older than the retention
type Janitor struct {
	dir       string
	retention time.Duration
	now       func() time.Time
	parser    cron.Parser

	mtx  sync.Mutex
	cron *cron.Cron
}

func NewJanitor(dir string, retention time.Duration) *Janitor {
	return &Janitor{
		dir:       dir,
		retention: retention,
		now:       time.Now,
		parser:    cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

// Sweep deletes expired artifacts and returns how many were removed
func (j *Janitor) Sweep() (int, error) {
	cutoff := j.now().Add(-j.retention)
	removed := 0
	var errs []error

	for _, pattern := range artifactPatterns {
		matches, err := filepath.Glob(filepath.Join(j.dir, pattern))
		if err != nil {
			return removed, fmt.Errorf("invalid artifact pattern %s: %w", pattern, err)
		}
		for _, path := range matches {
			info, err := os.Stat(path)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					errs = append(errs, err)
				}
				continue
			}
			if info.IsDir() || info.ModTime().After(cutoff) {
				continue
			}
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
				continue
			}
			removed++
		}
	}

	metrics.ArtifactsRemovedTotal.Add(float64(removed))
	return removed, errors.Join(errs...)
}

// Start runs Sweep on schedule (cron spec or descriptor such as "@every 1h")
func (j *Janitor) Start(schedule string, wrap TaskWrapper) error {
	j.mtx.Lock()
	defer j.mtx.Unlock()

	if j.cron != nil {
		return fmt.Errorf("artifact janitor already started")
	}

	sched, err := j.parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid artifact cleanup schedule %q: %w", schedule, err)
	}

	task := func() error {
		removed, err := j.Sweep()
		if removed > 0 {
			log.Info("🧹 Removed expired artifacts", "count", removed, "dir", j.dir)
		}
		return err
	}
	if wrap != nil {
		task = wrap("artifact cleanup", task)
	}

	j.cron = cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	j.cron.Schedule(sched, cron.FuncJob(func() {
		if err := task(); err != nil {
			log.Error("❌ Failed to clean up artifacts", "error", err)
		}
	}))
	j.cron.Start()

	log.Info("📋 Started artifact janitor", "dir", j.dir, "schedule", schedule, "retention", j.retention)
	return nil
}

// Stop halts scheduling; the returned context is done once a running sweep finishes
func (j *Janitor) Stop() context.Context {
	j.mtx.Lock()
	defer j.mtx.Unlock()

	if j.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	ctx := j.cron.Stop()
	j.cron = nil
	return ctx
}

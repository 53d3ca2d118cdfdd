package filecleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/travelops/contact-insights/internal/dependency"
)

// Config holds configuration for the file history cleanup worker.
type Config struct {
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
	Retention      time.Duration `mapstructure:"retention"` // e.g. 2160h - drop history rows older than this
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		WorkerInterval: time.Hour,
		Retention:      90 * 24 * time.Hour,
	}
}

// Worker prunes file-processing history past the retention window and sweeps
// expired blacklisted tokens along the way.
type Worker struct {
	repo dependency.Repository
	c    *Config
	ctx  context.Context
	stop context.CancelFunc
}

// New creates a new cleanup worker.
func New(c *Config, repo dependency.Repository) *Worker {
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	if c.WorkerInterval == 0 {
		c.WorkerInterval = time.Hour
	}
	if c.Retention == 0 {
		c.Retention = 90 * 24 * time.Hour
	}
	return &Worker{
		repo: repo,
		c:    c,
	}
}

// Start starts the worker.
func (w *Worker) Start(ctx context.Context) error {
	if w.ctx != nil && w.stop != nil {
		return fmt.Errorf("file cleanup worker already started")
	}
	w.ctx, w.stop = context.WithCancel(ctx)
	go w.worker(w.ctx)
	return nil
}

// Stop stops the worker gracefully.
func (w *Worker) Stop() error {
	if w.stop == nil {
		return fmt.Errorf("file cleanup worker already stopped or not started")
	}
	w.stop()
	w.stop = nil
	return nil
}

func (w *Worker) worker(ctx context.Context) {
	ticker := time.NewTicker(w.c.WorkerInterval)
	defer ticker.Stop()

	w.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	cutoff := time.Now().Add(-w.c.Retention)
	if err := w.repo.Files().DeleteOlderThan(ctx, cutoff); err != nil {
		slog.Default().ErrorContext(ctx, "file history cleanup failed",
			slog.String("err", err.Error()),
		)
		return
	}
	slog.Default().DebugContext(ctx, "file history cleanup done",
		slog.Time("cutoff", cutoff),
	)
}

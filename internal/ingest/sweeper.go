package ingest

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/ingestd/internal/config"
)

// Sweeper periodically removes stale files from the scratch directories.
// It covers artifacts kept by the retention policy and leftovers from
// crashed pipelines.
type Sweeper struct {
	dirs     []string
	maxAge   time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewSweeper creates a sweeper over the configured scratch directories.
func NewSweeper(cfg config.ScratchConfig, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		dirs:     []string{cfg.ConfigDir, cfg.OutputDir},
		maxAge:   cfg.MaxAge.Duration(),
		interval: cfg.SweepInterval.Duration(),
		logger:   logger,
	}
}

// Run sweeps on the configured interval until ctx is cancelled. Returns
// immediately when sweeping is disabled (zero interval).
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(time.Now()); removed > 0 {
				s.logger.Info("swept stale scratch artifacts", zap.Int("removed", removed))
			}
		}
	}
}

// Sweep removes regular files older than maxAge from the scratch
// directories and returns how many were removed.
func (s *Sweeper) Sweep(now time.Time) int {
	cutoff := now.Add(-s.maxAge)
	removed := 0

	for _, dir := range s.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn("failed to read scratch dir", zap.String("dir", dir), zap.Error(err))
			}
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				s.logger.Warn("failed to sweep scratch artifact", zap.String("path", path), zap.Error(err))
				continue
			}
			removed++
		}
	}

	return removed
}

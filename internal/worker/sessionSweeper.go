// Package worker runs background maintenance of the session store.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Repo is the part of the session store the sweeper needs.
type Repo interface {
	Sweep(context.Context, time.Time) (int, error)
	Count() int
}

// SessionSweeper periodically evicts sessions idle for longer than ttl.
type SessionSweeper struct {
	logger   *zap.Logger
	repo     Repo
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewSessionSweeper checks every interval. A non-positive interval defaults
// to a quarter of ttl.
func NewSessionSweeper(logger *zap.Logger, repo Repo, ttl, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = ttl / 4
	}
	if interval <= 0 {
		interval = time.Minute
	}

	return &SessionSweeper{
		logger:   logger,
		repo:     repo,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
	}
}

// SweepOnce evicts idle sessions and returns how many were removed.
func (s *SessionSweeper) SweepOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	removed, err := s.repo.Sweep(ctx, s.now().Add(-s.ttl))
	if err != nil {
		s.logger.Error("Cannot sweep sessions", zap.Error(err))
	}
	if removed > 0 {
		s.logger.Info("Swept idle sessions",
			zap.Int("removed", removed),
			zap.Int("remaining", s.repo.Count()),
		)
	}
	return removed
}

// Run sweeps on every tick until ctx is done.
func (s *SessionSweeper) Run(ctx context.Context) {
	s.logger.Info("Session sweeper started", zap.Duration("ttl", s.ttl), zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepOnce(ctx)
		case <-ctx.Done():
			s.logger.Info("Session sweeper stopped")
			return
		}
	}
}

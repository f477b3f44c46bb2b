package db

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Health reports whether the durable store is currently reachable.
type Health interface {
	Healthy() bool
}

// Monitor probes the database on an interval and publishes the last observed
// state. Repositories consult it instead of pinging per call.
type Monitor struct {
	pool     *pgxpool.Pool
	interval time.Duration
	logger   *logrus.Logger
	healthy  atomic.Bool
}

// NewMonitor creates a health monitor for the pool. Call Start to begin probing.
func NewMonitor(pool *pgxpool.Pool, interval time.Duration, logger *logrus.Logger) *Monitor {
	return &Monitor{
		pool:     pool,
		interval: interval,
		logger:   logger,
	}
}

// Healthy returns the last observed store state.
func (m *Monitor) Healthy() bool {
	return m.healthy.Load()
}

// Start probes once immediately, then on every tick until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	m.probe(ctx)

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.probe(ctx)
			}
		}
	}()
}

func (m *Monitor) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := m.pool.Ping(pingCtx)
	was := m.healthy.Swap(err == nil)

	switch {
	case err != nil && was:
		m.logger.WithError(err).Warn("store unreachable, entering degraded mode")
	case err == nil && !was:
		m.logger.Info("store reachable")
	}
}

// Static is a fixed health state, used when no database is configured and in tests.
type Static bool

// Healthy implements Health.
func (s Static) Healthy() bool {
	return bool(s)
}

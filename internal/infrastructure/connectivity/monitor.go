package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"go.uber.org/zap"
)

// Monitor tracks whether the cloud database is reachable and announces
// offline/online transitions to subscribers.
type Monitor struct {
	pinger   repository.Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	online bool
	subs   []chan bool
}

// NewMonitor creates a monitor that starts in the offline state. pinger
// may be nil, in which case state only changes through Set.
func NewMonitor(pinger repository.Pinger, interval, timeout time.Duration, logger *zap.Logger) *Monitor {
	return &Monitor{
		pinger:   pinger,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// IsOnline reports the last observed state
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Subscribe returns a channel receiving the new state on every transition.
// Slow subscribers miss intermediate transitions rather than block the monitor.
func (m *Monitor) Subscribe() <-chan bool {
	ch := make(chan bool, 1)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

// Set forces the state, emitting a transition if it changed
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	subs := make([]chan bool, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	m.logger.Info("connectivity changed", zap.Bool("online", online))
	for _, ch := range subs {
		select {
		case ch <- online:
		default:
			// replace a stale pending value with the latest one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- online:
			default:
			}
		}
	}
}

// Probe pings the remote once and records the result
func (m *Monitor) Probe(ctx context.Context) bool {
	if m.pinger == nil {
		return m.IsOnline()
	}
	pctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.pinger.Ping(pctx)
	if err != nil {
		m.logger.Debug("remote ping failed", zap.Error(err))
	}
	m.Set(err == nil)
	return err == nil
}

// Run probes immediately and then on every interval until ctx is done
func (m *Monitor) Run(ctx context.Context) {
	m.Probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

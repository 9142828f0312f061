package utils

import (
	"context"
	"sync"
	"time"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Store     bool      `json:"store"`
	Cache     *bool     `json:"cache,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every configured dependency answered the last probe.
func (h HealthStatus) Healthy() bool {
	return h.Store && (h.Cache == nil || *h.Cache)
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HealthMonitor keeps the latest health snapshot in memory.
type HealthMonitor struct {
	store    HealthCheck
	cache    HealthCheck
	interval time.Duration

	mu      sync.RWMutex
	current HealthStatus
}

// NewHealthMonitor builds a monitor. cache may be nil when no cache is configured.
func NewHealthMonitor(store, cache HealthCheck, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &HealthMonitor{store: store, cache: cache, interval: interval}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CheckNow probes every dependency once and stores the result.
func (m *HealthMonitor) CheckNow(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now().UTC()}
	if m.store != nil {
		status.Store = m.store(ctx) == nil
	}
	if m.cache != nil {
		ok := m.cache(ctx) == nil
		status.Cache = &ok
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx is cancelled.
func (m *HealthMonitor) Start(ctx context.Context) {
	m.CheckNow(ctx)
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.CheckNow(ctx)
			}
		}
	}()
}

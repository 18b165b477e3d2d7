package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger is a health probe for a single dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type component struct {
	name   string
	pinger Pinger
}

// Monitor periodically probes registered dependencies and keeps the latest
// health snapshot for the health endpoint.
type Monitor struct {
	components []component

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Register adds a dependency to probe. Call before Start.
func (m *Monitor) Register(name string, pinger Pinger) {
	if pinger == nil {
		return
	}
	m.components = append(m.components, component{name: name, pinger: pinger})
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	components := make(map[string]bool, len(m.components))
	for _, c := range m.components {
		ok := m.check(c)
		if !ok {
			m.logger.Warn("dependency unhealthy", zap.String("component", c.name))
		}
		components[c.name] = ok
	}

	m.mu.Lock()
	m.status = Status{
		Components: components,
		LastCheck:  time.Now(),
	}
	m.mu.Unlock()
}

func (m *Monitor) check(c component) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return c.pinger.Ping(ctx) == nil
}

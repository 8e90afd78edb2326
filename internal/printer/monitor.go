package printer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Monitor polls the manager for hotplug changes and reports devices
// appearing or disappearing.
type Monitor struct {
	manager  *Manager
	interval time.Duration
	log      *zap.Logger

	onAdded   func(*Device)
	onRemoved func(string)

	ctx    context.Context
	cancel context.CancelFunc
}

// NewMonitor creates a monitor that rescans at the given interval.
func NewMonitor(manager *Manager, interval time.Duration, log *zap.Logger) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		manager:  manager,
		interval: interval,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// OnAdded registers the new-device callback. Set before Start.
func (m *Monitor) OnAdded(fn func(*Device)) { m.onAdded = fn }

// OnRemoved registers the lost-device callback. Set before Start.
func (m *Monitor) OnRemoved(fn func(string)) { m.onRemoved = fn }

// Start begins polling in the background.
func (m *Monitor) Start() {
	previous := make(map[string]*Device)
	for _, d := range m.manager.All() {
		previous[d.ID] = d
	}

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-m.ctx.Done():
				return
			case <-ticker.C:
				current, err := m.manager.Detect()
				if err != nil {
					m.log.Warn("device rescan failed", zap.Error(err))
					continue
				}

				seen := make(map[string]*Device, len(current))
				for _, d := range current {
					seen[d.ID] = d
					if _, known := previous[d.ID]; !known {
						m.log.Info("device appeared",
							zap.String("device_id", d.ID),
							zap.String("description", d.Description))
						if m.onAdded != nil {
							m.onAdded(d)
						}
					}
				}
				for id := range previous {
					if _, still := seen[id]; !still {
						m.log.Info("device disappeared", zap.String("device_id", id))
						if m.onRemoved != nil {
							m.onRemoved(id)
						}
					}
				}
				previous = seen
			}
		}
	}()
}

// Stop halts polling.
func (m *Monitor) Stop() {
	m.cancel()
}

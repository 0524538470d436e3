package metrics

import (
	"context"
	"time"

	"grimm.is/netctl/internal/clock"
	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
	"grimm.is/netctl/internal/network"
)

// Source is the read side of control.Manager.
type Source interface {
	ListLinks(ctx context.Context) ([]network.LinkInfo, error)
	LinkStats(ctx context.Context, name string) (network.LinkStats, error)
}

// Collector copies kernel link counters into a Registry.
type Collector struct {
	registry *Registry
	source   Source
	logger   *logging.Logger
	clock    clock.Clock
	interval time.Duration
}

// NewCollector creates a collector. interval only matters for Run.
func NewCollector(src Source, reg *Registry, logger *logging.Logger, interval time.Duration) *Collector {
	if logger == nil {
		logger = logging.Default()
	}
	return &Collector{
		registry: reg,
		source:   src,
		logger:   logger.WithComponent("metrics"),
		clock:    clock.RealClock{},
		interval: interval,
	}
}

// Update takes one sample of every link. Links that vanish between the
// listing and the counter read are skipped.
func (c *Collector) Update(ctx context.Context) error {
	links, err := c.source.ListLinks(ctx)
	if err != nil {
		return err
	}

	r := c.registry
	r.reset()
	for _, l := range links {
		s, err := c.source.LinkStats(ctx, l.Name)
		if err != nil {
			if nerrors.IsNotFound(err) {
				c.logger.Debug("link vanished", "ifname", l.Name)
				continue
			}
			return err
		}
		up := 0.0
		if l.IsUp() {
			up = 1
		}
		r.InterfaceUp.WithLabelValues(l.Name).Set(up)
		r.InterfaceMTU.WithLabelValues(l.Name).Set(float64(l.MTU))
		r.InterfaceRxBytes.WithLabelValues(l.Name).Set(float64(s.RxBytes))
		r.InterfaceTxBytes.WithLabelValues(l.Name).Set(float64(s.TxBytes))
		r.InterfaceRxPackets.WithLabelValues(l.Name).Set(float64(s.RxPackets))
		r.InterfaceTxPackets.WithLabelValues(l.Name).Set(float64(s.TxPackets))
		r.InterfaceErrors.WithLabelValues(l.Name, "rx").Set(float64(s.RxErrors))
		r.InterfaceErrors.WithLabelValues(l.Name, "tx").Set(float64(s.TxErrors))
		r.InterfaceDropped.WithLabelValues(l.Name, "rx").Set(float64(s.RxDropped))
		r.InterfaceDropped.WithLabelValues(l.Name, "tx").Set(float64(s.TxDropped))
	}
	r.LastUpdate.Set(float64(c.clock.Now().Unix()))
	return nil
}

// Run updates every interval and calls after each time, until ctx is done.
// A failed update is logged and retried on the next tick.
func (c *Collector) Run(ctx context.Context, after func() error) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for ctx.Err() == nil {
		if err := c.Update(ctx); err != nil {
			c.logger.Warn("collection failed", "error", err)
		} else if after != nil {
			if err := after(); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}
	return nil
}

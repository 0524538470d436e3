// Package metrics exports link counters in the Prometheus exposition
// format, for scraping or for node_exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"grimm.is/netctl/internal/brand"
)

// Registry holds the link metrics. Each Registry owns its own
// prometheus.Registry so that nothing leaks into the default one.
type Registry struct {
	reg *prometheus.Registry

	InterfaceUp        *prometheus.GaugeVec
	InterfaceMTU       *prometheus.GaugeVec
	InterfaceRxBytes   *prometheus.GaugeVec
	InterfaceTxBytes   *prometheus.GaugeVec
	InterfaceRxPackets *prometheus.GaugeVec
	InterfaceTxPackets *prometheus.GaugeVec
	InterfaceErrors    *prometheus.GaugeVec
	InterfaceDropped   *prometheus.GaugeVec

	LastUpdate prometheus.Gauge
}

// NewRegistry creates the metric families.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	ns := brand.LowerName

	gauge := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: "interface",
			Name:      name,
			Help:      help,
		}, append([]string{"interface"}, labels...))
	}

	return &Registry{
		reg:                reg,
		InterfaceUp:        gauge("up", "Whether the interface is administratively up"),
		InterfaceMTU:       gauge("mtu_bytes", "Interface MTU"),
		InterfaceRxBytes:   gauge("receive_bytes", "Bytes received"),
		InterfaceTxBytes:   gauge("transmit_bytes", "Bytes transmitted"),
		InterfaceRxPackets: gauge("receive_packets", "Packets received"),
		InterfaceTxPackets: gauge("transmit_packets", "Packets transmitted"),
		InterfaceErrors:    gauge("errors", "Receive and transmit errors", "direction"),
		InterfaceDropped:   gauge("dropped", "Receive and transmit drops", "direction"),
		LastUpdate: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "last_update_timestamp_seconds",
			Help:      "Unix time of the last successful collection",
		}),
	}
}

// Gatherer exposes the registry, e.g. for promhttp.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile atomically replaces path with the current metrics.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}

// reset drops every labelled series so that removed links disappear.
func (r *Registry) reset() {
	for _, v := range []*prometheus.GaugeVec{
		r.InterfaceUp, r.InterfaceMTU,
		r.InterfaceRxBytes, r.InterfaceTxBytes,
		r.InterfaceRxPackets, r.InterfaceTxPackets,
		r.InterfaceErrors, r.InterfaceDropped,
	} {
		v.Reset()
	}
}

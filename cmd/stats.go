package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/metrics"
	"grimm.is/netctl/internal/network"
)

// NewHardwareProber is replaced by tests.
var NewHardwareProber = func() (HardwareProber, error) {
	return network.NewHardwareProber()
}

// HardwareProber is implemented by *network.HardwareProber.
type HardwareProber interface {
	Probe(iface string) (*network.Hardware, error)
	Close()
}

type statsRow struct {
	network.LinkStats
	State    string            `json:"state"`
	Hardware *network.Hardware `json:"hardware,omitempty"`
}

// RunStats prints kernel counters for every link, or one, plus driver
// details where ethtool can read them.
func RunStats(ctx context.Context, g *Globals, iface string, asJSON bool) error {
	return g.withManager(false, func(m *control.Manager) error {
		var links []network.LinkInfo
		if iface != "" {
			l, err := m.GetLinkInfo(ctx, iface)
			if err != nil {
				return err
			}
			links = []network.LinkInfo{l}
		} else {
			var err error
			if links, err = m.ListLinks(ctx); err != nil {
				return err
			}
		}

		prober, err := NewHardwareProber()
		if err != nil {
			g.logger().Debug("ethtool unavailable", "error", err)
			prober = nil
		} else {
			defer prober.Close()
		}

		rows := make([]statsRow, 0, len(links))
		for _, l := range links {
			s, err := m.LinkStats(ctx, l.Name)
			if err != nil {
				return err
			}
			row := statsRow{LinkStats: s, State: l.State.String()}
			if prober != nil {
				if hw, err := prober.Probe(l.Name); err == nil {
					row.Hardware = hw
				}
			}
			rows = append(rows, row)
		}

		if asJSON {
			return writeJSON(Stdout, rows)
		}
		tw := tabwriter.NewWriter(Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "INTERFACE\tSTATE\tRX\tTX\tRX PKTS\tTX PKTS\tERRORS\tDROPPED\tDRIVER\tSPEED")
		for _, r := range rows {
			driver, speed := "-", "-"
			if r.Hardware != nil {
				driver = r.Hardware.Driver
				if r.Hardware.Speed > 0 {
					speed = fmt.Sprintf("%dMb/s %s", r.Hardware.Speed, r.Hardware.Duplex)
				}
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
				r.Name, r.State,
				humanize.IBytes(r.RxBytes), humanize.IBytes(r.TxBytes),
				r.RxPackets, r.TxPackets,
				r.RxErrors+r.TxErrors, r.RxDropped+r.TxDropped,
				driver, speed)
		}
		return tw.Flush()
	})
}

// RunStatsTextfile writes the link counters to path in the Prometheus text
// format. With a non-zero every it keeps rewriting the file until ctx is
// done.
func RunStatsTextfile(ctx context.Context, g *Globals, path string, every time.Duration) error {
	return g.withManager(false, func(m *control.Manager) error {
		reg := metrics.NewRegistry()
		c := metrics.NewCollector(m, reg, g.logger(), every)
		write := func() error { return reg.WriteTextfile(path) }
		if every <= 0 {
			if err := c.Update(ctx); err != nil {
				return err
			}
			return write()
		}
		g.logger().Info("writing metrics", "path", path, "interval", every)
		return c.Run(ctx, write)
	})
}

package cmd

import (
	"context"

	"grimm.is/netctl/internal/control"
)

const networkdUsage = "networkd reload | reconfigure <iface> | path <iface>"

// RunNetworkd talks to systemd-networkd.
func RunNetworkd(ctx context.Context, g *Globals, args []string) error {
	switch {
	case len(args) == 1 && args[0] == "reload":
		return g.withManager(false, func(m *control.Manager) error {
			return m.ReloadNetworkDaemon(ctx)
		})
	case len(args) == 2 && args[0] == "reconfigure":
		return g.withManager(false, func(m *control.Manager) error {
			return m.ReconfigureLink(ctx, args[1])
		})
	case len(args) == 2 && args[0] == "path":
		return g.withManager(false, func(m *control.Manager) error {
			path, err := m.LinkPath(ctx, args[1])
			if err != nil {
				return err
			}
			Printer.Fprintf(Stdout, "%s\n", path)
			return nil
		})
	}
	return usage(networkdUsage)
}

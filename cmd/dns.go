package cmd

import (
	"context"
	"net/netip"

	"grimm.is/netctl/internal/control"
	nerrors "grimm.is/netctl/internal/errors"
)

const dnsUsage = "dns set <iface> <ip>... | dns domains <iface> <domain>... | dns revert <iface> | dns flush"

// RunDNS drives systemd-resolved's per-link settings.
func RunDNS(ctx context.Context, g *Globals, args []string) error {
	if len(args) == 0 {
		return usage(dnsUsage)
	}
	switch args[0] {
	case "set":
		if len(args) < 3 {
			return usage(dnsUsage)
		}
		servers := make([]netip.Addr, 0, len(args)-2)
		for _, s := range args[2:] {
			a, err := netip.ParseAddr(s)
			if err != nil {
				return nerrors.Generic("invalid DNS server '" + s + "'")
			}
			servers = append(servers, a)
		}
		return g.withManager(false, func(m *control.Manager) error {
			return m.SetDNSServers(ctx, args[1], servers)
		})

	case "domains":
		if len(args) < 3 {
			return usage(dnsUsage)
		}
		return g.withManager(false, func(m *control.Manager) error {
			return m.SetDNSDomains(ctx, args[1], args[2:])
		})

	case "revert":
		if len(args) != 2 {
			return usage(dnsUsage)
		}
		return g.withManager(false, func(m *control.Manager) error {
			return m.RevertDNS(ctx, args[1])
		})

	case "flush":
		return g.withManager(false, func(m *control.Manager) error {
			return m.FlushDNSCaches(ctx)
		})
	}
	return usage(dnsUsage)
}

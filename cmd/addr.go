package cmd

import (
	"context"

	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/i18n"
	"grimm.is/netctl/internal/network"
)

const addrUsage = "addr add|del <iface> <cidr> | addr list <iface>"

// RunAddr handles "addr add", "addr del" and "addr list". The CIDR is
// parsed before anything is opened.
func RunAddr(ctx context.Context, g *Globals, args []string) error {
	if len(args) == 2 && (args[0] == "list" || args[0] == "ls") {
		return g.withManager(false, func(m *control.Manager) error {
			addrs, err := m.ListAddresses(ctx, args[1])
			if err != nil {
				return err
			}
			for _, a := range addrs {
				Printer.Fprintf(Stdout, "%s\n", a)
			}
			return nil
		})
	}
	if len(args) != 3 {
		return usage(addrUsage)
	}
	action, iface := args[0], args[1]
	addr, err := network.ParseIPNetwork(args[2])
	if err != nil {
		return err
	}

	switch action {
	case "add":
		return g.withManager(false, func(m *control.Manager) error {
			if err := m.AddAddress(ctx, iface, addr); err != nil {
				return err
			}
			Printer.Fprintf(Stdout, i18n.MsgAddrAdded, addr, iface)
			return nil
		})
	case "del", "delete":
		return g.withManager(false, func(m *control.Manager) error {
			return m.DeleteAddress(ctx, iface, addr)
		})
	}
	return usage(addrUsage)
}

package cmd

import (
	"context"
	"strconv"

	"grimm.is/netctl/internal/control"
	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/i18n"
	"grimm.is/netctl/internal/network"
)

const linkUsage = "link set <iface> state up|down | mtu <n> | mac <mac>"

// RunLink handles "link set".
func RunLink(ctx context.Context, g *Globals, args []string) error {
	if len(args) != 4 || args[0] != "set" {
		return usage(linkUsage)
	}
	iface, field, value := args[1], args[2], args[3]

	switch field {
	case "state":
		state, err := network.ParseLinkState(value)
		if err != nil {
			return err
		}
		return g.withManager(false, func(m *control.Manager) error {
			if state == network.LinkUp {
				err = m.SetLinkUp(ctx, iface)
			} else {
				err = m.SetLinkDown(ctx, iface)
			}
			if err != nil {
				return err
			}
			Printer.Fprintf(Stdout, i18n.MsgLinkSet, iface, "state", state)
			return nil
		})

	case "mtu":
		mtu, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nerrors.Generic("invalid MTU '" + value + "'")
		}
		return g.withManager(false, func(m *control.Manager) error {
			if err := m.SetMTU(ctx, iface, uint32(mtu)); err != nil {
				return err
			}
			Printer.Fprintf(Stdout, i18n.MsgLinkSet, iface, "mtu", mtu)
			return nil
		})

	case "mac":
		if _, err := network.ParseMACAddress(value); err != nil {
			return err
		}
		return nerrors.NotImplemented("set MAC address")
	}
	return usage(linkUsage)
}

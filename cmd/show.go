package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/i18n"
	"grimm.is/netctl/internal/network"
)

// linkDetail is the detail view of one link.
type linkDetail struct {
	network.LinkInfo
	Routes []network.Route `json:"routes"`
}

// RunShow prints all links as a table, or one link with its addresses and
// routes.
func RunShow(ctx context.Context, g *Globals, iface string, asJSON bool) error {
	return g.withManager(false, func(m *control.Manager) error {
		if iface == "" {
			links, err := m.ListLinks(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(Stdout, links)
			}
			printLinkTable(Stdout, links)
			return nil
		}

		d, err := describeLink(ctx, m, iface)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(Stdout, d)
		}
		printLinkDetail(Stdout, d)
		return nil
	})
}

func describeLink(ctx context.Context, m *control.Manager, name string) (*linkDetail, error) {
	info, err := m.GetLinkInfo(ctx, name)
	if err != nil {
		return nil, err
	}
	addrs, err := m.ListAddresses(ctx, name)
	if err != nil {
		return nil, err
	}
	routes, err := m.ListRoutes(ctx, name)
	if err != nil {
		return nil, err
	}
	info.Addresses = addrs
	if routes == nil {
		routes = []network.Route{}
	}
	return &linkDetail{LinkInfo: info, Routes: routes}, nil
}

func printLinkTable(w io.Writer, links []network.LinkInfo) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tSTATE\tMTU\tMAC ADDRESS")
	up := 0
	for _, l := range links {
		if l.IsUp() {
			up++
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", l.Index, l.Name, l.State, l.MTU, macOrDash(l.MAC))
	}
	tw.Flush()
	fmt.Fprintln(w)
	Printer.Fprintf(w, i18n.MsgInterfaces, len(links), up)
}

func printLinkDetail(w io.Writer, d *linkDetail) {
	fmt.Fprintf(w, "Interface: %s\n", d.Name)
	fmt.Fprintf(w, "  Index: %d\n", d.Index)
	fmt.Fprintf(w, "  State: %s\n", d.State)
	fmt.Fprintf(w, "  MTU: %d\n", d.MTU)
	if d.MAC != nil {
		fmt.Fprintf(w, "  MAC Address: %s\n", d.MAC)
	}
	if len(d.Addresses) > 0 {
		fmt.Fprintln(w, "  Addresses:")
		for _, a := range d.Addresses {
			fmt.Fprintf(w, "    %s\n", a)
		}
	}
	if len(d.Routes) > 0 {
		fmt.Fprintln(w, "  Routes:")
		for _, r := range d.Routes {
			fmt.Fprintf(w, "    %s\n", r)
		}
	}
}

func macOrDash(mac *network.MACAddress) string {
	if mac == nil {
		return "-"
	}
	return mac.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

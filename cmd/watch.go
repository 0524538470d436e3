package cmd

import (
	"context"
	"fmt"
	"time"

	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/network"
)

const clearScreen = "\x1b[2J\x1b[H"

// RunWatch redraws the link table every interval until ctx is done. Read
// errors are printed and the loop keeps going.
func RunWatch(ctx context.Context, g *Globals, iface string, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	return g.withManager(false, func(m *control.Manager) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		Printer.Fprintf(Stdout, "Watching network interfaces (Ctrl+C to stop)\n")
		for {
			fmt.Fprint(Stdout, clearScreen)
			fmt.Fprintf(Stdout, "Updated: %s\n\n", Clock.Now().Format(time.DateTime))

			links, err := m.ListLinks(ctx)
			if err != nil {
				Printer.Fprintf(Stderr, "Error fetching interfaces: %v\n", err)
			} else {
				printLinkTable(Stdout, filterLinks(links, iface))
			}

			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
}

func filterLinks(links []network.LinkInfo, name string) []network.LinkInfo {
	if name == "" {
		return links
	}
	var out []network.LinkInfo
	for _, l := range links {
		if l.Name == name {
			out = append(out, l)
		}
	}
	return out
}

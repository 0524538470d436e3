package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/diag"
)

const testUsage = "test ping <host> [-c n] [-i iface] | dns [host] [-s server] | connectivity [-i iface] | all"

// RunTest runs one reachability test.
func RunTest(ctx context.Context, g *Globals, args []string) error {
	if len(args) == 0 {
		return usage(testUsage)
	}
	fs := flag.NewFlagSet("test "+args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	count := fs.Int("c", 4, "Packets to send")
	iface := fs.String("i", "", "Interface")
	server := fs.String("s", "", "DNS server")
	if err := fs.Parse(reorderFlags(fs, args[1:])); err != nil {
		return usage(testUsage)
	}

	switch args[0] {
	case "ping":
		if fs.NArg() != 1 {
			return usage(testUsage)
		}
		res, err := diag.Ping(ctx, fs.Arg(0), diag.PingOptions{Count: *count, Interface: *iface})
		if err != nil {
			return err
		}
		fmt.Fprintln(Stdout, res)
		if !res.OK() {
			return fmt.Errorf("no replies from %s", fs.Arg(0))
		}
		return nil

	case "dns":
		host := diag.DefaultLookupHost
		if fs.NArg() > 0 {
			host = fs.Arg(0)
		}
		res, err := diag.Lookup(ctx, host, *server)
		if err != nil {
			return err
		}
		fmt.Fprintf(Stdout, "%s resolved via %s in %v\n", host, res.Server, res.RTT)
		for _, c := range res.CNAMEs {
			fmt.Fprintf(Stdout, "  alias %s\n", c)
		}
		for _, a := range res.Addrs {
			fmt.Fprintf(Stdout, "  %s\n", a)
		}
		return nil

	case "connectivity":
		return g.withManager(false, func(m *control.Manager) error {
			return testConnectivity(ctx, m, *iface)
		})

	case "all":
		return g.withManager(false, func(m *control.Manager) error {
			checks := []diag.Check{
				{Name: "interface availability", Run: interfacesCheck(m)},
				{Name: "internet connectivity", Run: connectivityCheck("")},
				{Name: "DNS resolution", Run: dnsCheck(diag.DefaultLookupHost, "")},
				{Name: "systemd services", Run: unitsCheck(m)},
			}
			rep := diag.RunChecks(ctx, checks, g.logger())
			rep.Write(Stdout, true)
			if !rep.OK() {
				return fmt.Errorf("some tests failed")
			}
			return nil
		})
	}
	return usage(testUsage)
}

// testConnectivity pings the connectivity target out of each link that is
// up, or only out of iface.
func testConnectivity(ctx context.Context, m *control.Manager, iface string) error {
	links, err := m.ListLinks(ctx)
	if err != nil {
		return err
	}

	var names []string
	for _, l := range links {
		if iface != "" && l.Name == iface || iface == "" && l.IsUp() {
			names = append(names, l.Name)
		}
	}
	if len(names) == 0 {
		fmt.Fprintln(Stdout, "No active interfaces to test")
		return nil
	}

	failed := 0
	for _, name := range names {
		start := Clock.Now()
		res, err := diag.Ping(ctx, diag.ConnectivityTarget, diag.PingOptions{Count: 1, Timeout: 2 * time.Second, Interface: name})
		status := "PASS"
		if err != nil || !res.OK() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(Stdout, "Testing %s ... %s (%.2fs)\n", name, status, Clock.Since(start).Seconds())
	}
	fmt.Fprintf(Stdout, "Results: %d passed, %d failed\n", len(names)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d interface(s) failed", failed)
	}
	return nil
}

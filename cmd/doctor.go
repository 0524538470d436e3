package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/diag"
)

// Units whose state doctor reports.
var doctorUnits = []string{"systemd-networkd.service", "systemd-resolved.service"}

// Geteuid is replaced by tests.
var Geteuid = os.Geteuid

// RunDoctor checks everything netctl depends on. Missing services, root
// privileges or connectivity only warn; an unusable netlink channel or
// system bus fails.
func RunDoctor(ctx context.Context, g *Globals, verbose bool) error {
	m, openErr := OpenManager(g.options(false))
	if openErr == nil {
		defer m.Close()
	}

	checks := []diag.Check{
		{Name: "netlink and system bus", Run: func(context.Context) diag.Result {
			if openErr != nil {
				return diag.Fail(openErr.Error())
			}
			return diag.Pass("connected")
		}},
	}
	if openErr == nil {
		checks = append(checks,
			diag.Check{Name: "network interfaces", Run: interfacesCheck(m)},
			diag.Check{Name: "systemd services", Run: unitsCheck(m)},
			diag.Check{Name: "hostnamed", Run: func(ctx context.Context) diag.Result {
				host, err := m.GetHostname(ctx)
				if err != nil {
					return diag.Fail(err.Error())
				}
				return diag.Pass("hostname " + host)
			}},
		)
	}
	checks = append(checks,
		diag.Check{Name: "permissions", Run: permissionsCheck},
		diag.Check{Name: "connectivity", Run: connectivityCheck("")},
		diag.Check{Name: "DNS resolution", Run: dnsCheck(diag.DefaultLookupHost, "")},
	)

	rep := diag.RunChecks(ctx, checks, g.logger())
	rep.Write(Stdout, verbose)
	if !rep.OK() {
		return fmt.Errorf("some checks failed")
	}
	return nil
}

func interfacesCheck(m *control.Manager) func(context.Context) diag.Result {
	return func(ctx context.Context) diag.Result {
		links, err := m.ListLinks(ctx)
		if err != nil {
			return diag.Fail(err.Error())
		}
		up := 0
		details := make([]string, 0, len(links))
		for _, l := range links {
			if l.IsUp() {
				up++
			}
			details = append(details, fmt.Sprintf("%s: %s", l.Name, l.State))
		}
		summary := fmt.Sprintf("%d interface(s), %d up", len(links), up)
		if up == 0 {
			return diag.Warn(summary, details...)
		}
		return diag.Pass(summary, details...)
	}
}

func unitsCheck(m *control.Manager) func(context.Context) diag.Result {
	return func(ctx context.Context) diag.Result {
		var details []string
		allActive := true
		for _, unit := range doctorUnits {
			state, err := m.UnitActiveState(ctx, unit)
			if err != nil {
				state = "unknown (" + err.Error() + ")"
			}
			if state != "active" {
				allActive = false
			}
			details = append(details, unit+" is "+state)
		}
		if !allActive {
			return diag.Warn("some services are not running; this may limit functionality", details...)
		}
		return diag.Pass("networkd and resolved are active", details...)
	}
}

func permissionsCheck(context.Context) diag.Result {
	if Geteuid() == 0 {
		return diag.Pass("running as root")
	}
	return diag.Warn("not running as root", "changes to links, addresses and DNS need root or CAP_NET_ADMIN")
}

func connectivityCheck(iface string) func(context.Context) diag.Result {
	return func(ctx context.Context) diag.Result {
		res, err := diag.Ping(ctx, diag.ConnectivityTarget, diag.PingOptions{Count: 1, Timeout: 2 * time.Second, Interface: iface})
		if err != nil {
			return diag.Warn("could not ping "+diag.ConnectivityTarget, err.Error())
		}
		if !res.OK() {
			return diag.Warn("no internet connectivity", "this is normal on an isolated network")
		}
		return diag.Pass(fmt.Sprintf("%s reachable in %v", diag.ConnectivityTarget, res.AvgRTT))
	}
}

func dnsCheck(host, server string) func(context.Context) diag.Result {
	return func(ctx context.Context) diag.Result {
		res, err := diag.Lookup(ctx, host, server)
		if err != nil {
			return diag.Warn("DNS resolution failed", err.Error(), "check /etc/resolv.conf or systemd-resolved")
		}
		details := make([]string, 0, len(res.Addrs))
		for _, a := range res.Addrs {
			details = append(details, a.String())
		}
		return diag.Pass(fmt.Sprintf("%s resolved via %s in %v", host, res.Server, res.RTT), details...)
	}
}

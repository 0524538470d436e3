package cmd

import (
	"context"
	"flag"
	"io"
	"strings"

	"grimm.is/netctl/internal/control"
)

const hostnameUsage = "hostname [get] | hostname set <name> [-pretty]"

// RunHostname reads or sets the hostname through systemd-hostnamed.
func RunHostname(ctx context.Context, g *Globals, args []string) error {
	if len(args) == 0 || args[0] == "get" {
		return g.withManager(false, func(m *control.Manager) error {
			name, err := m.GetHostname(ctx)
			if err != nil {
				return err
			}
			Printer.Fprintf(Stdout, "%s\n", name)
			if g != nil && g.Verbose {
				if static, err := m.GetStaticHostname(ctx); err == nil {
					Printer.Fprintf(Stdout, "static: %s\n", static)
				}
				if pretty, err := m.GetPrettyHostname(ctx); err == nil && pretty != "" {
					Printer.Fprintf(Stdout, "pretty: %s\n", pretty)
				}
			}
			return nil
		})
	}
	if args[0] != "set" {
		return usage(hostnameUsage)
	}

	fs := flag.NewFlagSet("hostname set", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pretty := fs.Bool("pretty", false, "Set the pretty hostname instead of the static one")
	if err := fs.Parse(reorderFlags(fs, args[1:])); err != nil || fs.NArg() != 1 {
		return usage(hostnameUsage)
	}
	name := fs.Arg(0)

	return g.withManager(false, func(m *control.Manager) error {
		if *pretty {
			return m.SetPrettyHostname(ctx, name)
		}
		return m.SetHostname(ctx, name)
	})
}

// RunMachineID prints the machine ID.
func RunMachineID(ctx context.Context, g *Globals) error {
	return g.withManager(false, func(m *control.Manager) error {
		id, err := m.GetMachineID(ctx)
		if err != nil {
			return err
		}
		Printer.Fprintf(Stdout, "%s\n", id)
		return nil
	})
}

// reorderFlags moves flags, and the values of non-boolean flags, in front
// of positional arguments so that "set box -pretty" parses like
// "set -pretty box".
func reorderFlags(fs *flag.FlagSet, args []string) []string {
	var flags, rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) < 2 || a[0] != '-' {
			rest = append(rest, a)
			continue
		}
		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBoolFlag(f) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return append(flags, rest...)
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

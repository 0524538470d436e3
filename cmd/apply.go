package cmd

import (
	"context"
	"fmt"
	"os"

	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/i18n"
	"grimm.is/netctl/internal/profile"
)

// RunApply applies an HCL or YAML file. With dryRun the kernel and bus are
// only read and the mutations are printed instead.
func RunApply(ctx context.Context, g *Globals, file string, dryRun bool) error {
	cfg, err := profile.LoadFile(file)
	if err != nil {
		return err
	}
	return applyConfig(ctx, g, cfg, dryRun)
}

func applyConfig(ctx context.Context, g *Globals, cfg *profile.Config, dryRun bool) error {
	if err := checkConfig(cfg); err != nil {
		return err
	}
	return g.withManager(dryRun, func(m *control.Manager) error {
		return applyWith(ctx, g, m, cfg, dryRun)
	})
}

// checkConfig prints warnings and fails on errors.
func checkConfig(cfg *profile.Config) error {
	rep := profile.Validate(cfg)
	for _, w := range rep.Warnings {
		Printer.Fprintf(Stderr, "warning: %s\n", w)
	}
	return rep.Err()
}

func applyWith(ctx context.Context, g *Globals, m *control.Manager, cfg *profile.Config, dryRun bool) error {
	changes, err := profile.Apply(ctx, m, cfg, g.logger())
	if dryRun {
		planned := m.Planned()
		if len(planned) == 0 {
			Printer.Fprintf(Stdout, i18n.MsgNothingToDo)
		} else {
			Printer.Fprintf(Stdout, i18n.MsgPlanned)
			for _, op := range planned {
				fmt.Fprintf(Stdout, "  %s\n", op)
			}
		}
		return err
	}
	for _, c := range changes {
		fmt.Fprintf(Stdout, "  %s\n", c)
	}
	return err
}

// RunValidate checks a file without touching the system. With strict,
// warnings fail too.
func RunValidate(file string, strict bool) error {
	cfg, err := profile.LoadFile(file)
	if err != nil {
		return err
	}
	rep := profile.Validate(cfg)
	for _, e := range rep.Errors {
		fmt.Fprintf(Stdout, "  error: %s\n", e)
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(Stdout, "  warning: %s\n", w)
	}
	if !rep.OK(strict) {
		if err := rep.Err(); err != nil {
			return err
		}
		return fmt.Errorf("validation failed: %d warning(s) in strict mode", len(rep.Warnings))
	}
	Printer.Fprintf(Stdout, i18n.MsgValid, file)
	return nil
}

// RunExport writes the live configuration in the given format to out, or
// stdout when out is empty.
func RunExport(ctx context.Context, g *Globals, format, out string) error {
	return g.withManager(false, func(m *control.Manager) error {
		cfg, err := profile.Capture(ctx, m)
		if err != nil {
			return err
		}
		if host, err := m.GetStaticHostname(ctx); err == nil {
			cfg.Hostname = host
		}
		data, err := profile.Encode(cfg, format)
		if err != nil {
			return err
		}
		if out == "" {
			_, err = Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		Printer.Fprintf(Stderr, "Exported %d interface(s) to %s\n", len(cfg.Interfaces), out)
		return nil
	})
}

// RunDiff prints a unified diff between two states. Each side is "current"
// for the live system, or a profile name.
func RunDiff(ctx context.Context, g *Globals, a, b string) error {
	store := profile.NewStore()

	var m *control.Manager
	load := func(name string) (*profile.Config, error) {
		if name != "current" {
			p, err := store.Load(name)
			if err != nil {
				return nil, err
			}
			return p.Config(), nil
		}
		if m == nil {
			var err error
			if m, err = OpenManager(g.options(false)); err != nil {
				return nil, err
			}
		}
		return profile.Capture(ctx, m)
	}
	defer func() {
		if m != nil {
			m.Close()
		}
	}()

	left, err := load(a)
	if err != nil {
		return err
	}
	right, err := load(b)
	if err != nil {
		return err
	}
	// Profiles do not carry a hostname unless edited in; compare links only.
	left.Hostname, right.Hostname = "", ""

	text, err := profile.Diff(a, left, b, right)
	if err != nil {
		return err
	}
	if text == "" {
		Printer.Fprintf(Stdout, "No differences.\n")
		return nil
	}
	fmt.Fprint(Stdout, text)
	return nil
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/i18n"
	"grimm.is/netctl/internal/profile"
)

const profileUsage = "profile save <name> [-d description] | load <name> [-n] | list | show <name> | delete <name>"

// RunProfile manages saved profiles.
func RunProfile(ctx context.Context, g *Globals, args []string) error {
	if len(args) == 0 {
		return usage(profileUsage)
	}
	store := profile.NewStore()

	switch args[0] {
	case "save":
		fs := flag.NewFlagSet("profile save", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		desc := fs.String("d", "", "Description")
		if err := fs.Parse(reorderFlags(fs, args[1:])); err != nil || fs.NArg() != 1 {
			return usage(profileUsage)
		}
		return g.withManager(false, func(m *control.Manager) error {
			cfg, err := profile.Capture(ctx, m)
			if err != nil {
				return err
			}
			path, err := store.Save(fs.Arg(0), *desc, cfg)
			if err != nil {
				return err
			}
			Printer.Fprintf(Stdout, i18n.MsgProfileSaved, fs.Arg(0), path)
			Printer.Fprintf(Stdout, "  %d interface(s) saved\n", len(cfg.Interfaces))
			return nil
		})

	case "load":
		fs := flag.NewFlagSet("profile load", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		dryRun := fs.Bool("n", false, "Dry run")
		if err := fs.Parse(reorderFlags(fs, args[1:])); err != nil || fs.NArg() != 1 {
			return usage(profileUsage)
		}
		p, err := store.Load(fs.Arg(0))
		if err != nil {
			return err
		}
		Printer.Fprintf(Stdout, "Loading profile '%s'...\n", p.Name)
		return applyConfig(ctx, g, p.Config(), *dryRun)

	case "list", "ls":
		profiles, err := store.List()
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			Printer.Fprintf(Stdout, "No profiles found\n")
			return nil
		}
		for _, p := range profiles {
			Printer.Fprintf(Stdout, "%s\n", p.Name)
			if p.Description != "" {
				Printer.Fprintf(Stdout, "    Description: %s\n", p.Description)
			}
			Printer.Fprintf(Stdout, "    Interfaces: %d\n", len(p.Interfaces))
			Printer.Fprintf(Stdout, "    Created: %s\n", p.CreatedAt)
		}
		return nil

	case "show":
		if len(args) != 2 {
			return usage(profileUsage)
		}
		p, err := store.Load(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(Stdout, "Profile: %s\n", p.Name)
		if p.Description != "" {
			fmt.Fprintf(Stdout, "Description: %s\n", p.Description)
		}
		fmt.Fprintf(Stdout, "Created: %s\n\n", p.CreatedAt)
		out, err := profile.Encode(p.Config(), profile.FormatYAML)
		if err != nil {
			return err
		}
		_, err = Stdout.Write(out)
		return err

	case "delete", "rm":
		if len(args) != 2 {
			return usage(profileUsage)
		}
		if err := store.Delete(args[1]); err != nil {
			return err
		}
		Printer.Fprintf(Stdout, i18n.MsgProfileDelete, args[1])
		return nil
	}
	return usage(profileUsage)
}

package cmd

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/tui"
)

// AskWizard fills a from the interactive form. Tests replace it.
var AskWizard = func(ctx context.Context, links []string, a *tui.WizardAnswers) error {
	return tui.NewWizardForm(links, a).RunWithContext(ctx)
}

// RunWizard asks which link to change and how, then applies the result.
func RunWizard(ctx context.Context, g *Globals) error {
	return g.withManager(false, func(m *control.Manager) error {
		links, err := m.ListLinks(ctx)
		if err != nil {
			return err
		}
		if len(links) == 0 {
			Printer.Fprintf(Stdout, "No network interfaces found\n")
			return nil
		}
		names := make([]string, len(links))
		for i, l := range links {
			names[i] = l.Name
		}

		var a tui.WizardAnswers
		if err := AskWizard(ctx, names, &a); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				Printer.Fprintf(Stdout, "Configuration cancelled\n")
				return nil
			}
			return err
		}
		if !a.Confirmed {
			Printer.Fprintf(Stdout, "Configuration cancelled\n")
			return nil
		}

		cfg, err := a.Config()
		if err != nil {
			return err
		}
		if err := checkConfig(cfg); err != nil {
			return err
		}
		return applyWith(ctx, g, m, cfg, false)
	})
}

package cmd

import (
	"context"
	"time"

	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/tui"
)

// RunDashboard shows the live dashboard until the user quits.
func RunDashboard(ctx context.Context, g *Globals, interval time.Duration) error {
	return g.withManager(false, func(m *control.Manager) error {
		return tui.Run(ctx, m, interval)
	})
}

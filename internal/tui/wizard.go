package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"grimm.is/netctl/internal/network"
	"grimm.is/netctl/internal/profile"
)

// Wizard tasks.
const (
	TaskStaticIP = "static-ip"
	TaskState    = "state"
	TaskMTU      = "mtu"
	TaskDHCP     = "dhcp"
	TaskComplete = "complete"
)

// WizardAnswers are the values collected by the setup wizard.
type WizardAnswers struct {
	Interface string
	Task      string
	Address   string
	State     string
	MTU       string
	Confirmed bool
}

// NewWizardForm builds the setup wizard over the given link names. Answers
// are written into a as the user moves through the form.
func NewWizardForm(links []string, a *WizardAnswers) *huh.Form {
	if a.MTU == "" {
		a.MTU = "1500"
	}
	if a.State == "" {
		a.State = "up"
	}
	a.Confirmed = true

	needs := func(tasks ...string) func() bool {
		return func() bool {
			for _, t := range tasks {
				if a.Task == t {
					return false
				}
			}
			return true
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Network interface").
				Options(huh.NewOptions(links...)...).
				Value(&a.Interface),
			huh.NewSelect[string]().
				Title("What would you like to configure?").
				Options(
					huh.NewOption("Static IP address", TaskStaticIP),
					huh.NewOption("Enable or disable", TaskState),
					huh.NewOption("MTU", TaskMTU),
					huh.NewOption("Prepare for DHCP", TaskDHCP),
					huh.NewOption("Complete setup (address, MTU, up)", TaskComplete),
				).
				Value(&a.Task),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Address").
				Description("CIDR notation, e.g. 192.168.1.100/24").
				Placeholder("192.168.1.100/24").
				Validate(validateCIDR).
				Value(&a.Address),
		).WithHideFunc(needs(TaskStaticIP, TaskComplete)),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("State").
				Options(huh.NewOptions("up", "down")...).
				Value(&a.State),
		).WithHideFunc(needs(TaskState)),
		huh.NewGroup(
			huh.NewInput().
				Title("MTU").
				Description("1500 standard, 9000 jumbo frames, 1280 IPv6 minimum").
				Validate(validateMTU).
				Value(&a.MTU),
		).WithHideFunc(needs(TaskMTU, TaskComplete)),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Apply this configuration?").
				Affirmative("Apply").
				Negative("Cancel").
				Value(&a.Confirmed),
		),
	).WithTheme(huh.ThemeBase16())
}

func validateCIDR(s string) error {
	_, err := network.ParseIPNetwork(s)
	return err
}

func validateMTU(s string) error {
	mtu, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if mtu < profile.MinMTU || mtu > profile.MaxMTU {
		return fmt.Errorf("must be between %d and %d", profile.MinMTU, profile.MaxMTU)
	}
	return nil
}

// Config turns the answers into an apply config for one interface.
func (a *WizardAnswers) Config() (*profile.Config, error) {
	if a.Interface == "" {
		return nil, fmt.Errorf("no interface selected")
	}
	iface := profile.Interface{Name: a.Interface}

	mtu := func() error {
		if err := validateMTU(a.MTU); err != nil {
			return fmt.Errorf("MTU %s: %w", a.MTU, err)
		}
		v, _ := strconv.ParseUint(a.MTU, 10, 32)
		iface.MTU = uint32(v)
		return nil
	}

	switch a.Task {
	case TaskStaticIP:
		iface.State = "up"
		iface.Addresses = []string{a.Address}
	case TaskState:
		iface.State = a.State
	case TaskMTU:
		if err := mtu(); err != nil {
			return nil, err
		}
	case TaskDHCP:
		iface.State = "up"
		iface.MTU = 1500
		iface.DHCP = "yes"
	case TaskComplete:
		if err := mtu(); err != nil {
			return nil, err
		}
		iface.State = "up"
		iface.Addresses = []string{a.Address}
	default:
		return nil, fmt.Errorf("unknown task %q", a.Task)
	}
	return &profile.Config{Interfaces: []profile.Interface{iface}}, nil
}

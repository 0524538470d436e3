// Package cmd implements the netctl subcommands. Each Run function parses
// nothing global; main hands it the shared Globals and its own arguments.
package cmd

import (
	"fmt"
	"io"
	"os"

	"grimm.is/netctl/internal/clock"
	"grimm.is/netctl/internal/control"
	"grimm.is/netctl/internal/i18n"
	"grimm.is/netctl/internal/logging"
)

// Printer renders user-facing messages in the caller's locale.
var Printer = i18n.NewCLIPrinter()

// Stdout and Stderr are swapped out by tests.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Clock stamps watch output and connectivity timings.
var Clock clock.Clock = clock.RealClock{}

// OpenManager builds the control facade. Tests replace it.
var OpenManager = control.New

// Globals are the options shared by every command.
type Globals struct {
	Netns   string
	Verbose bool
	Logger  *logging.Logger
}

func (g *Globals) logger() *logging.Logger {
	if g == nil || g.Logger == nil {
		return logging.Default()
	}
	return g.Logger
}

func (g *Globals) options(dryRun bool) control.Options {
	opts := control.Options{DryRun: dryRun, Logger: g.logger()}
	if g != nil {
		opts.Netns = g.Netns
	}
	return opts
}

// withManager opens a Manager, runs fn and closes it again.
func (g *Globals) withManager(dryRun bool, fn func(m *control.Manager) error) error {
	m, err := OpenManager(g.options(dryRun))
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

// usageError is returned for malformed command lines.
type usageError struct {
	usage string
}

func (e *usageError) Error() string {
	return "usage: " + e.usage
}

func usage(format string, args ...any) error {
	return &usageError{usage: fmt.Sprintf(format, args...)}
}

// Fail prints err and returns the process exit code for it.
func Fail(err error) int {
	if err == nil {
		return 0
	}
	Printer.Fprintf(Stderr, i18n.MsgError, err)
	return 1
}

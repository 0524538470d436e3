package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grimm.is/netctl/cmd"
	"grimm.is/netctl/internal/brand"
	"grimm.is/netctl/internal/i18n"
	"grimm.is/netctl/internal/logging"
	"grimm.is/netctl/internal/tui"
)

var printer = i18n.NewCLIPrinter()

func main() {
	global := flag.NewFlagSet(brand.BinaryName, flag.ExitOnError)
	global.Usage = printUsage
	verbose := global.Bool("v", false, "Verbose output")
	global.BoolVar(verbose, "verbose", false, "Verbose output")
	netns := global.String("netns", brand.Env("NETNS"), "Operate inside the named network namespace")
	global.Parse(os.Args[1:])

	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	logCfg := logging.ConfigFromEnv()
	if *verbose && logCfg.Level > logging.LevelDebug {
		logCfg.Level = logging.LevelDebug
	}
	logger := logging.New(logCfg)
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := &cmd.Globals{Netns: *netns, Verbose: *verbose, Logger: logger}
	command, rest := args[0], args[1:]

	var err error
	switch command {
	case "show":
		fs := flag.NewFlagSet("show", flag.ExitOnError)
		asJSON := fs.Bool("json", false, "Print JSON")
		fs.Parse(rest)
		err = cmd.RunShow(ctx, g, fs.Arg(0), *asJSON)

	case "link":
		err = cmd.RunLink(ctx, g, rest)

	case "addr", "address":
		err = cmd.RunAddr(ctx, g, rest)

	case "dns":
		err = cmd.RunDNS(ctx, g, rest)

	case "hostname":
		err = cmd.RunHostname(ctx, g, rest)

	case "machine-id":
		err = cmd.RunMachineID(ctx, g)

	case "networkd":
		err = cmd.RunNetworkd(ctx, g, rest)

	case "profile":
		err = cmd.RunProfile(ctx, g, rest)

	case "apply":
		fs := flag.NewFlagSet("apply", flag.ExitOnError)
		dryRun := fs.Bool("dry-run", false, "Print the changes without making them")
		fs.BoolVar(dryRun, "n", false, "Dry run (short)")
		fs.Parse(rest)
		if fs.NArg() != 1 {
			printer.Fprintf(os.Stderr, "Usage: %s apply [-n] <file>\n", brand.BinaryName)
			os.Exit(1)
		}
		err = cmd.RunApply(ctx, g, fs.Arg(0), *dryRun)

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ExitOnError)
		strict := fs.Bool("strict", false, "Treat warnings as errors")
		fs.Parse(rest)
		if fs.NArg() != 1 {
			printer.Fprintf(os.Stderr, "Usage: %s validate [-strict] <file>\n", brand.BinaryName)
			os.Exit(1)
		}
		err = cmd.RunValidate(fs.Arg(0), *strict)

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		format := fs.String("format", "yaml", "Output format: yaml, json or hcl")
		out := fs.String("o", "", "Write to file instead of stdout")
		fs.Parse(rest)
		err = cmd.RunExport(ctx, g, *format, *out)

	case "diff":
		if len(rest) != 2 {
			printer.Fprintf(os.Stderr, "Usage: %s diff <profile|current> <profile|current>\n", brand.BinaryName)
			os.Exit(1)
		}
		err = cmd.RunDiff(ctx, g, rest[0], rest[1])

	case "doctor":
		fs := flag.NewFlagSet("doctor", flag.ExitOnError)
		v := fs.Bool("v", *verbose, "Show details for passing checks")
		fs.Parse(rest)
		err = cmd.RunDoctor(ctx, g, *v)

	case "test":
		err = cmd.RunTest(ctx, g, rest)

	case "stats":
		fs := flag.NewFlagSet("stats", flag.ExitOnError)
		asJSON := fs.Bool("json", false, "Print JSON")
		textfile := fs.String("textfile", "", "Write Prometheus metrics to this file instead")
		watch := fs.Duration("watch", 0, "With -textfile, rewrite the file at this interval")
		fs.Parse(rest)
		if *textfile != "" {
			err = cmd.RunStatsTextfile(ctx, g, *textfile, *watch)
			break
		}
		err = cmd.RunStats(ctx, g, fs.Arg(0), *asJSON)

	case "dashboard", "tui":
		fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
		interval := fs.Duration("interval", tui.DefaultInterval, "Refresh interval")
		fs.Parse(rest)
		err = cmd.RunDashboard(ctx, g, *interval)

	case "watch":
		fs := flag.NewFlagSet("watch", flag.ExitOnError)
		interval := fs.Duration("interval", time.Second, "Refresh interval")
		fs.Parse(rest)
		err = cmd.RunWatch(ctx, g, fs.Arg(0), *interval)

	case "wizard":
		err = cmd.RunWizard(ctx, g)

	case "version":
		printer.Printf("%s %s (%s)\n", brand.Name, brand.Version, brand.GitCommit)

	case "help", "-h", "--help":
		printUsage()

	default:
		printer.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		stop()
		os.Exit(cmd.Fail(err))
	}
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s [-v] [-netns <name>] <command> [options]

Link Commands:
  show        List interfaces, or one interface with addresses and routes
              Options: -json, [iface]
  link        link set <iface> state up|down | mtu <n> | mac <mac>
  addr        addr add|del <iface> <cidr> | addr list <iface>
  stats       Interface counters and driver details
              Options: -json, [iface], -textfile <path> [-watch <duration>]

System Services:
  dns         dns set <iface> <ip>... | domains <iface> <domain>... | revert <iface> | flush
  hostname    hostname [get] | hostname set <name> [-pretty]
  machine-id  Print the machine ID
  networkd    networkd reload | reconfigure <iface> | path <iface>

Configuration:
  apply       Apply an HCL or YAML file
              Options: --dry-run (-n)
  validate    Check a file without applying it
              Options: -strict
  export      Print the live configuration
              Options: -format yaml|json|hcl, -o <file>
  profile     profile save <name> [-d desc] | load <name> [-n] | list | show <name> | delete <name>
  diff        Compare two profiles, or a profile and "current"

Diagnostics:
  doctor      Check netlink, system bus, services and connectivity
  test        test ping <host> | dns [host] | connectivity | all
  dashboard   Live interface dashboard
              Options: -interval <duration>
  watch       Redraw the interface table until interrupted
              Options: -interval <duration>, [iface]
  wizard      Guided setup of one interface

Other:
  version     Print version
  help        Show this help

Environment:
  %s_NETNS         Default network namespace
  %s_LOG           Log level: trace, debug, info, warn, error
  %s_LOG_FORMAT    "json" for JSON logs
  %s_PROFILE_DIR   Where profiles are stored
`, brand.Name, brand.Description, brand.BinaryName,
		brand.ConfigEnvPrefix, brand.ConfigEnvPrefix, brand.ConfigEnvPrefix, brand.ConfigEnvPrefix)
}

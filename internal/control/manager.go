// Package control is the single entry point for callers that want to
// change host network state. A Manager owns one netlink channel and one
// system-bus connection and routes each operation to the right one.
//
// Operations that take an interface name resolve it to a kernel index
// first and then act on that index. Nothing is cached: a rename or
// re-creation between two calls is always observed.
package control

import (
	"context"
	"errors"
	"io"
	"net/netip"

	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
	"grimm.is/netctl/internal/network"
	"grimm.is/netctl/internal/sysbus"
)

// Links is the netlink side, implemented by *network.Ops.
type Links interface {
	ResolveIndex(name string) (uint32, error)
	ListLinks() ([]network.LinkInfo, error)
	GetLinkInfo(name string) (network.LinkInfo, error)
	SetLinkUp(index uint32) error
	SetLinkDown(index uint32) error
	SetLinkMTU(index uint32, mtu uint32) error
	AddAddress(index uint32, addr network.IPNetwork) error
	ListAddresses(index uint32) ([]network.IPNetwork, error)
	ListRoutes(index uint32) ([]network.Route, error)
	LinkStats(name string) (network.LinkStats, error)
}

// Networkd is implemented by *sysbus.NetworkdService.
type Networkd interface {
	Reload(ctx context.Context) error
	ReconfigureLink(ctx context.Context, index uint32) error
	LinkPath(ctx context.Context, index uint32) (string, error)
}

// Resolver is implemented by *sysbus.ResolvedService.
type Resolver interface {
	SetLinkDNS(ctx context.Context, index uint32, servers []netip.Addr) error
	SetLinkDomains(ctx context.Context, index uint32, domains []string) error
	RevertLink(ctx context.Context, index uint32) error
	FlushCaches(ctx context.Context) error
}

// Hostnamer is implemented by *sysbus.HostnamedService.
type Hostnamer interface {
	SetStaticHostname(ctx context.Context, hostname string) error
	SetPrettyHostname(ctx context.Context, hostname string) error
	StaticHostname(ctx context.Context) (string, error)
	PrettyHostname(ctx context.Context) (string, error)
	Hostname(ctx context.Context) (string, error)
	MachineID(ctx context.Context) (string, error)
}

// UnitStater is implemented by *sysbus.SystemdService.
type UnitStater interface {
	UnitActiveState(ctx context.Context, unit string) (string, error)
}

// Options configures New.
type Options struct {
	// Netns runs the netlink channel inside a named network namespace.
	Netns string
	// DryRun reads real state but records mutations instead of sending them.
	DryRun bool
	Logger *logging.Logger
}

// Manager is the network control facade. It takes no locks; concurrent
// calls rely on the transports to keep replies apart.
type Manager struct {
	links    Links
	networkd Networkd
	resolver Resolver
	hostname Hostnamer
	units    UnitStater

	closers []io.Closer
	dryNL   *network.DryRunNetlinker
	dryBus  *sysbus.DryRunConn
	logger  *logging.Logger
}

// New opens the netlink channel and the system bus. If either fails,
// nothing stays open.
func New(opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	nl, err := network.NewRealNetlinkerAt(opts.Netns)
	if err != nil {
		return nil, nerrors.Netlink(err)
	}

	var (
		linker network.Netlinker = nl
		dryNL  *network.DryRunNetlinker
		dryBus *sysbus.DryRunConn
		bus    *sysbus.Client
	)
	if opts.DryRun {
		dryNL = network.NewDryRunNetlinker(nl)
		linker = dryNL
		bus, dryBus = sysbus.ConnectDryRun(logger)
	} else {
		bus, err = sysbus.Connect(logger)
		if err != nil {
			nl.Close()
			return nil, err
		}
	}

	m := NewWithDeps(network.NewOps(linker, logger), bus.Networkd(), bus.Resolved(), bus.Hostnamed(), bus.Systemd(), logger)
	m.closers = []io.Closer{bus, nl}
	m.dryNL = dryNL
	m.dryBus = dryBus
	return m, nil
}

// NewWithDeps builds a Manager over caller-supplied channels. It owns none
// of them; Close is a no-op.
func NewWithDeps(links Links, networkd Networkd, resolver Resolver, hostname Hostnamer, units UnitStater, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{
		links:    links,
		networkd: networkd,
		resolver: resolver,
		hostname: hostname,
		units:    units,
		logger:   logger.WithComponent("control"),
	}
}

// Close releases the bus connection and the netlink socket.
func (m *Manager) Close() error {
	var errs []error
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Planned returns the mutations a dry-run Manager recorded, netlink first.
func (m *Manager) Planned() []string {
	var out []string
	if m.dryNL != nil {
		out = append(out, m.dryNL.Ops()...)
	}
	if m.dryBus != nil {
		out = append(out, m.dryBus.Calls()...)
	}
	return out
}

// resolveThen resolves name to an index and only then runs act with it.
// A failed resolve, or a context cancelled in between, stops before act.
func (m *Manager) resolveThen(ctx context.Context, name string, act func(index uint32) error) error {
	if err := ctx.Err(); err != nil {
		return nerrors.Wrap(err, nerrors.KindGeneric, "aborted before resolving "+name)
	}
	index, err := m.links.ResolveIndex(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return nerrors.Wrap(err, nerrors.KindGeneric, "aborted after resolving "+name)
	}
	return act(index)
}

// Link queries

func (m *Manager) ListLinks(ctx context.Context) ([]network.LinkInfo, error) {
	m.logger.Debug("listing all network links")
	return m.links.ListLinks()
}

func (m *Manager) GetLinkInfo(ctx context.Context, name string) (network.LinkInfo, error) {
	m.logger.Debug("getting link information", "ifname", name)
	return m.links.GetLinkInfo(name)
}

func (m *Manager) LinkStats(ctx context.Context, name string) (network.LinkStats, error) {
	return m.links.LinkStats(name)
}

// ListAddresses returns the addresses currently assigned to the link.
func (m *Manager) ListAddresses(ctx context.Context, name string) ([]network.IPNetwork, error) {
	var addrs []network.IPNetwork
	err := m.resolveThen(ctx, name, func(index uint32) error {
		var err error
		addrs, err = m.links.ListAddresses(index)
		return err
	})
	return addrs, err
}

// ListRoutes returns the routes whose output device is the link.
func (m *Manager) ListRoutes(ctx context.Context, name string) ([]network.Route, error) {
	var routes []network.Route
	err := m.resolveThen(ctx, name, func(index uint32) error {
		var err error
		routes, err = m.links.ListRoutes(index)
		return err
	})
	return routes, err
}

// Link management

func (m *Manager) SetLinkUp(ctx context.Context, name string) error {
	m.logger.Info("bringing link up", "ifname", name)
	return m.resolveThen(ctx, name, m.links.SetLinkUp)
}

func (m *Manager) SetLinkDown(ctx context.Context, name string) error {
	m.logger.Info("bringing link down", "ifname", name)
	return m.resolveThen(ctx, name, m.links.SetLinkDown)
}

func (m *Manager) SetMTU(ctx context.Context, name string, mtu uint32) error {
	m.logger.Info("setting MTU", "ifname", name, "mtu", mtu)
	return m.resolveThen(ctx, name, func(index uint32) error {
		return m.links.SetLinkMTU(index, mtu)
	})
}

func (m *Manager) AddAddress(ctx context.Context, name string, addr network.IPNetwork) error {
	m.logger.Info("adding address", "ifname", name, "addr", addr.String())
	return m.resolveThen(ctx, name, func(index uint32) error {
		return m.links.AddAddress(index, addr)
	})
}

// DeleteAddress always fails with a not-implemented error. The name is not
// resolved and no request reaches the kernel.
func (m *Manager) DeleteAddress(ctx context.Context, name string, addr network.IPNetwork) error {
	m.logger.Debug("address removal requested", "ifname", name, "addr", addr.String())
	return nerrors.NotImplemented("delete address")
}

// systemd-networkd

func (m *Manager) ReloadNetworkDaemon(ctx context.Context) error {
	m.logger.Info("reloading systemd-networkd")
	return m.networkd.Reload(ctx)
}

func (m *Manager) ReconfigureLink(ctx context.Context, name string) error {
	m.logger.Info("reconfiguring link via networkd", "ifname", name)
	return m.resolveThen(ctx, name, func(index uint32) error {
		return m.networkd.ReconfigureLink(ctx, index)
	})
}

// LinkPath returns networkd's D-Bus object path for the link.
func (m *Manager) LinkPath(ctx context.Context, name string) (string, error) {
	var path string
	err := m.resolveThen(ctx, name, func(index uint32) error {
		var err error
		path, err = m.networkd.LinkPath(ctx, index)
		return err
	})
	return path, err
}

// systemd-resolved

func (m *Manager) SetDNSServers(ctx context.Context, name string, servers []netip.Addr) error {
	m.logger.Info("setting DNS servers", "ifname", name, "server_count", len(servers))
	return m.resolveThen(ctx, name, func(index uint32) error {
		return m.resolver.SetLinkDNS(ctx, index, servers)
	})
}

func (m *Manager) SetDNSDomains(ctx context.Context, name string, domains []string) error {
	m.logger.Info("setting DNS domains", "ifname", name, "domain_count", len(domains))
	return m.resolveThen(ctx, name, func(index uint32) error {
		return m.resolver.SetLinkDomains(ctx, index, domains)
	})
}

func (m *Manager) RevertDNS(ctx context.Context, name string) error {
	m.logger.Info("reverting DNS configuration", "ifname", name)
	return m.resolveThen(ctx, name, func(index uint32) error {
		return m.resolver.RevertLink(ctx, index)
	})
}

func (m *Manager) FlushDNSCaches(ctx context.Context) error {
	m.logger.Info("flushing DNS caches")
	return m.resolver.FlushCaches(ctx)
}

// systemd-hostnamed

// SetHostname sets the static hostname.
func (m *Manager) SetHostname(ctx context.Context, hostname string) error {
	m.logger.Info("setting static hostname", "hostname", hostname)
	return m.hostname.SetStaticHostname(ctx, hostname)
}

func (m *Manager) SetPrettyHostname(ctx context.Context, hostname string) error {
	m.logger.Info("setting pretty hostname", "hostname", hostname)
	return m.hostname.SetPrettyHostname(ctx, hostname)
}

// GetHostname returns the transient hostname.
func (m *Manager) GetHostname(ctx context.Context) (string, error) {
	return m.hostname.Hostname(ctx)
}

func (m *Manager) GetStaticHostname(ctx context.Context) (string, error) {
	return m.hostname.StaticHostname(ctx)
}

func (m *Manager) GetPrettyHostname(ctx context.Context) (string, error) {
	return m.hostname.PrettyHostname(ctx)
}

func (m *Manager) GetMachineID(ctx context.Context) (string, error) {
	return m.hostname.MachineID(ctx)
}

// UnitActiveState reports a systemd unit's ActiveState.
func (m *Manager) UnitActiveState(ctx context.Context, unit string) (string, error) {
	return m.units.UnitActiveState(ctx, unit)
}

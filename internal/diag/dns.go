package diag

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"
)

// DefaultLookupHost is resolved by "test dns" when no name is given.
const DefaultLookupHost = "www.google.com"

// ResolvConf is where Nameservers looks by default.
var ResolvConf = "/etc/resolv.conf"

// LookupResult holds the answers for one name from one server.
type LookupResult struct {
	Name   string        `json:"name"`
	Server string        `json:"server"`
	Addrs  []netip.Addr  `json:"addrs"`
	CNAMEs []string      `json:"cnames,omitempty"`
	RTT    time.Duration `json:"rtt"`
}

// Nameservers returns the servers in a resolv.conf style file as
// host:port pairs.
func Nameservers(path string) ([]string, error) {
	if path == "" {
		path = ResolvConf
	}
	cfg, err := dns.ClientConfigFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	servers := make([]string, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		servers = append(servers, net.JoinHostPort(s, cfg.Port))
	}
	if len(servers) == 0 {
		return nil, fmt.Errorf("no nameservers in %s", path)
	}
	return servers, nil
}

// Lookup queries server for the A and AAAA records of name. An empty
// server means the first resolv.conf nameserver. A name without records
// is an error.
func Lookup(ctx context.Context, name, server string) (*LookupResult, error) {
	if server == "" {
		servers, err := Nameservers("")
		if err != nil {
			return nil, err
		}
		server = servers[0]
	} else if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	c := new(dns.Client)
	c.Timeout = 2 * time.Second

	res := &LookupResult{Name: name, Server: server}
	var errs []error
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		m := new(dns.Msg)
		m.SetQuestion(dns.Fqdn(name), qtype)
		m.RecursionDesired = true

		resp, rtt, err := c.ExchangeContext(ctx, m, server)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s query: %w", dns.TypeToString[qtype], err))
			continue
		}
		res.RTT += rtt
		if resp.Rcode != dns.RcodeSuccess {
			errs = append(errs, fmt.Errorf("%s query: %s", dns.TypeToString[qtype], dns.RcodeToString[resp.Rcode]))
			continue
		}
		for _, rr := range resp.Answer {
			switch rr := rr.(type) {
			case *dns.A:
				if a, ok := netip.AddrFromSlice(rr.A); ok {
					res.Addrs = append(res.Addrs, a.Unmap())
				}
			case *dns.AAAA:
				if a, ok := netip.AddrFromSlice(rr.AAAA); ok {
					res.Addrs = append(res.Addrs, a)
				}
			case *dns.CNAME:
				res.CNAMEs = appendUnique(res.CNAMEs, rr.Target)
			}
		}
	}

	if len(res.Addrs) == 0 {
		if len(errs) > 0 {
			return res, fmt.Errorf("resolving %s via %s: %w", name, server, errors.Join(errs...))
		}
		return res, fmt.Errorf("resolving %s via %s: no addresses", name, server)
	}
	return res, nil
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

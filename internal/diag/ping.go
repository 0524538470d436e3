// Package diag implements the reachability checks behind the test and
// doctor commands.
package diag

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// ConnectivityTarget is pinged when no host is given.
const ConnectivityTarget = "8.8.8.8"

// PingOptions tune a Ping. Zero values pick the defaults.
type PingOptions struct {
	Count      int
	Timeout    time.Duration
	Interface  string
	Privileged bool
}

// PingResult summarises one run.
type PingResult struct {
	Target string        `json:"target"`
	Addr   string        `json:"addr"`
	Sent   int           `json:"sent"`
	Recv   int           `json:"recv"`
	Loss   float64       `json:"loss"`
	MinRTT time.Duration `json:"min_rtt"`
	AvgRTT time.Duration `json:"avg_rtt"`
	MaxRTT time.Duration `json:"max_rtt"`
}

// OK reports whether at least one reply came back.
func (r *PingResult) OK() bool {
	return r != nil && r.Recv > 0
}

func (r *PingResult) String() string {
	return fmt.Sprintf("%s (%s): %d sent, %d received, %.0f%% loss, rtt min/avg/max %v/%v/%v",
		r.Target, r.Addr, r.Sent, r.Recv, r.Loss, r.MinRTT, r.AvgRTT, r.MaxRTT)
}

// PingFunc runs the ICMP exchange. Tests replace it.
var PingFunc = ping

// Ping sends ICMP echo requests to host and waits for replies or the
// timeout. Losing every packet is not an error; check OK.
func Ping(ctx context.Context, host string, opts PingOptions) (*PingResult, error) {
	if opts.Count <= 0 {
		opts.Count = 4
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Duration(opts.Count)*time.Second + time.Second
	}
	return PingFunc(ctx, host, opts)
}

func ping(ctx context.Context, host string, opts PingOptions) (*PingResult, error) {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		return nil, fmt.Errorf("failed to create pinger: %w", err)
	}

	pinger.Count = opts.Count
	pinger.Timeout = opts.Timeout
	pinger.InterfaceName = opts.Interface
	pinger.SetPrivileged(opts.Privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return nil, err
	}

	stats := pinger.Statistics()
	return &PingResult{
		Target: host,
		Addr:   stats.Addr,
		Sent:   stats.PacketsSent,
		Recv:   stats.PacketsRecv,
		Loss:   stats.PacketLoss,
		MinRTT: stats.MinRtt,
		AvgRTT: stats.AvgRtt,
		MaxRTT: stats.MaxRtt,
	}, nil
}

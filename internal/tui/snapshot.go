package tui

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/network"
)

// Backend is the read side the dashboard polls; *control.Manager
// implements it.
type Backend interface {
	ListLinks(ctx context.Context) ([]network.LinkInfo, error)
	ListAddresses(ctx context.Context, name string) ([]network.IPNetwork, error)
	LinkStats(ctx context.Context, name string) (network.LinkStats, error)
	GetHostname(ctx context.Context) (string, error)
}

// LinkView is one row of the dashboard.
type LinkView struct {
	Info      network.LinkInfo
	Addresses []network.IPNetwork
	Stats     network.LinkStats
}

// Snapshot is everything one refresh read.
type Snapshot struct {
	Hostname string
	Links    []LinkView
	Taken    time.Time
}

// Up counts links that are administratively up.
func (s *Snapshot) Up() int {
	n := 0
	for _, l := range s.Links {
		if l.Info.IsUp() {
			n++
		}
	}
	return n
}

// Fetch reads the hostname and the link list concurrently, then the
// addresses and counters of every link concurrently. A link removed while
// the fetch is running keeps its row with empty details. The hostname is
// optional; without a system bus it is left blank.
func Fetch(ctx context.Context, b Backend, now time.Time) (*Snapshot, error) {
	snap := &Snapshot{Taken: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if h, err := b.GetHostname(gctx); err == nil {
			snap.Hostname = h
		}
		return nil
	})
	var links []network.LinkInfo
	g.Go(func() error {
		var err error
		links, err = b.ListLinks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.Links = make([]LinkView, len(links))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, link := range links {
		snap.Links[i].Info = link
		g.Go(func() error {
			addrs, err := b.ListAddresses(gctx, link.Name)
			if err != nil && !nerrors.IsNotFound(err) {
				return err
			}
			snap.Links[i].Addresses = addrs

			stats, err := b.LinkStats(gctx, link.Name)
			if err != nil && !nerrors.IsNotFound(err) {
				return err
			}
			snap.Links[i].Stats = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

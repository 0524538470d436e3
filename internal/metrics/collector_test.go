package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/netctl/internal/clock"
	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
	"grimm.is/netctl/internal/network"
)

type fakeSource struct {
	links []network.LinkInfo
	stats map[string]network.LinkStats
	err   error
}

func (f *fakeSource) ListLinks(ctx context.Context) ([]network.LinkInfo, error) {
	return f.links, f.err
}

func (f *fakeSource) LinkStats(ctx context.Context, name string) (network.LinkStats, error) {
	s, ok := f.stats[name]
	if !ok {
		return network.LinkStats{}, nerrors.InterfaceNotFound(name)
	}
	return s, nil
}

func newTestCollector(src Source) (*Collector, *Registry) {
	reg := NewRegistry()
	c := NewCollector(src, reg, logging.Discard(), time.Millisecond)
	c.clock = clock.NewMockClock(time.Unix(1700000000, 0))
	return c, reg
}

func TestUpdate(t *testing.T) {
	src := &fakeSource{
		links: []network.LinkInfo{
			{Index: 2, Name: "eth0", State: network.LinkUp, MTU: 1500},
			{Index: 3, Name: "gone0", State: network.LinkDown, MTU: 1500},
		},
		stats: map[string]network.LinkStats{
			"eth0": {Name: "eth0", RxBytes: 4096, TxBytes: 1024, RxErrors: 3},
		},
	}
	c, reg := newTestCollector(src)
	require.NoError(t, c.Update(context.Background()))

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.InterfaceUp.WithLabelValues("eth0")))
	assert.Equal(t, 4096.0, testutil.ToFloat64(reg.InterfaceRxBytes.WithLabelValues("eth0")))
	assert.Equal(t, 3.0, testutil.ToFloat64(reg.InterfaceErrors.WithLabelValues("eth0", "rx")))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(reg.LastUpdate))
	assert.Equal(t, 1, testutil.CollectAndCount(reg.InterfaceMTU))
}

func TestUpdateDropsRemovedLinks(t *testing.T) {
	src := &fakeSource{
		links: []network.LinkInfo{{Name: "eth0"}, {Name: "eth1"}},
		stats: map[string]network.LinkStats{"eth0": {}, "eth1": {}},
	}
	c, reg := newTestCollector(src)
	require.NoError(t, c.Update(context.Background()))
	assert.Equal(t, 2, testutil.CollectAndCount(reg.InterfaceRxBytes))

	src.links = src.links[:1]
	require.NoError(t, c.Update(context.Background()))
	assert.Equal(t, 1, testutil.CollectAndCount(reg.InterfaceRxBytes))
}

func TestUpdateError(t *testing.T) {
	c, _ := newTestCollector(&fakeSource{err: errors.New("netlink: permission denied")})
	assert.Error(t, c.Update(context.Background()))
}

func TestWriteTextfile(t *testing.T) {
	src := &fakeSource{
		links: []network.LinkInfo{{Name: "eth0", State: network.LinkUp, MTU: 9000}},
		stats: map[string]network.LinkStats{"eth0": {TxBytes: 77}},
	}
	c, reg := newTestCollector(src)
	require.NoError(t, c.Update(context.Background()))

	path := filepath.Join(t.TempDir(), "netctl.prom")
	require.NoError(t, reg.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `netctl_interface_mtu_bytes{interface="eth0"} 9000`)
	assert.Contains(t, text, `netctl_interface_transmit_bytes{interface="eth0"} 77`)
	assert.True(t, strings.Contains(text, "# HELP netctl_last_update_timestamp_seconds"))
}

func TestRunStopsOnCancel(t *testing.T) {
	src := &fakeSource{links: []network.LinkInfo{{Name: "eth0"}}, stats: map[string]network.LinkStats{"eth0": {}}}
	c, _ := newTestCollector(src)

	ctx, cancel := context.WithCancel(context.Background())
	runs := 0
	err := c.Run(ctx, func() error {
		runs++
		if runs == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, runs)
}

func TestRunReturnsAfterError(t *testing.T) {
	src := &fakeSource{links: []network.LinkInfo{}, stats: map[string]network.LinkStats{}}
	c, _ := newTestCollector(src)
	boom := errors.New("disk full")
	assert.ErrorIs(t, c.Run(context.Background(), func() error { return boom }), boom)
}

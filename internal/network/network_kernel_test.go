//go:build linux

package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nerrors "grimm.is/netctl/internal/errors"
	"grimm.is/netctl/internal/logging"
	"grimm.is/netctl/internal/testutil"
)

func TestLoopback_Integration(t *testing.T) {
	testutil.RequireKernel(t)

	nl, err := NewRealNetlinker()
	require.NoError(t, err)
	defer nl.Close()
	ops := NewOps(nl, logging.Discard())

	idx, err := ops.ResolveIndex("lo")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), idx)

	require.NoError(t, ops.SetLinkUp(idx))
	info, err := ops.GetLinkInfo("lo")
	require.NoError(t, err)
	assert.Equal(t, LinkUp, info.State)

	addrs, err := ops.ListAddresses(idx)
	require.NoError(t, err)
	assert.Contains(t, addrs, MustParseIPNetwork("127.0.0.1/8"))

	_, err = ops.ResolveIndex("nonexistent0")
	assert.Equal(t, nerrors.KindInterfaceNotFound, nerrors.GetKind(err))
}

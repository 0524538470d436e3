//go:build linux

package network

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkSettingsFromSysfs(t *testing.T) {
	root := t.TempDir()
	old := sysClassNet
	sysClassNet = root
	defer func() { sysClassNet = old }()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "eth0"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "eth0", "speed"), []byte("1000\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "eth0", "duplex"), []byte("full\n"), 0o644))

	speed, duplex := linkSettingsFromSysfs("eth0")
	assert.Equal(t, uint32(1000), speed)
	assert.Equal(t, "full", duplex)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "veth0"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "veth0", "speed"), []byte("-1\n"), 0o644))
	speed, duplex = linkSettingsFromSysfs("veth0")
	assert.Zero(t, speed)
	assert.Equal(t, "unknown", duplex)

	assert.True(t, isVirtualNIC("veth0"), "no device directory means virtual")
}

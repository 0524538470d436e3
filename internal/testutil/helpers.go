package testutil

import (
	"os"
	"testing"
)

// RequireKernel skips the test unless NETCTL_KERNEL_TEST is set and the
// process runs as root. These tests touch real links and are meant for a
// throwaway VM or network namespace.
func RequireKernel(t *testing.T) {
	t.Helper()
	if os.Getenv("NETCTL_KERNEL_TEST") == "" {
		t.Skip("Skipping test: requires NETCTL_KERNEL_TEST environment")
	}
	if os.Geteuid() != 0 {
		t.Skip("Skipping test: requires root")
	}
}

// RequireSystemBus skips the test unless NETCTL_DBUS_TEST is set.
func RequireSystemBus(t *testing.T) {
	t.Helper()
	if os.Getenv("NETCTL_DBUS_TEST") == "" {
		t.Skip("Skipping test: requires NETCTL_DBUS_TEST environment")
	}
}

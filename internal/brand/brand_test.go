package brand

import (
	"path/filepath"
	"testing"
)

func TestGet(t *testing.T) {
	b := Get()
	if b.Name == "" {
		t.Error("Brand name should not be empty")
	}
	if Version == "" {
		t.Error("Global Version should be initialized (to dev default)")
	}
	if BinaryName != "netctl" {
		t.Errorf("unexpected binary name %q", BinaryName)
	}
}

func TestGetDirectories(t *testing.T) {
	t.Setenv(ConfigEnvPrefix+"_CONFIG_DIR", "")
	t.Setenv(ConfigEnvPrefix+"_PROFILE_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	if got := GetConfigDir(); got != filepath.Join("/xdg", "netctl") {
		t.Errorf("expected XDG config dir, got %s", got)
	}
	if got := GetProfileDir(); got != filepath.Join("/xdg", "netctl", "profiles") {
		t.Errorf("expected profile dir under config dir, got %s", got)
	}

	t.Setenv(ConfigEnvPrefix+"_CONFIG_DIR", "/etc/netctl")
	if got := GetConfigDir(); got != "/etc/netctl" {
		t.Errorf("expected override, got %s", got)
	}

	t.Setenv(ConfigEnvPrefix+"_PROFILE_DIR", "/tmp/p")
	if got := GetProfileDir(); got != "/tmp/p" {
		t.Errorf("expected profile override, got %s", got)
	}
}

func TestEnv(t *testing.T) {
	t.Setenv("NETCTL_NETNS", "blue")
	if Env("NETNS") != "blue" {
		t.Errorf("Env did not read prefixed variable")
	}
}

// Package brand provides centralized naming and default path constants.
//
// The identity is loaded from brand.json at compile time via go:embed.
package brand

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information
type Brand struct {
	Name            string `json:"name"`
	LowerName       string `json:"lowerName"`
	Description     string `json:"description"`
	Tagline         string `json:"tagline"`
	ConfigEnvPrefix string `json:"configEnvPrefix"`
	BinaryName      string `json:"binaryName"`
	ProfileDirName  string `json:"profileDirName"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Description = b.Description
	Tagline = b.Tagline
	ConfigEnvPrefix = b.ConfigEnvPrefix
	BinaryName = b.BinaryName
	ProfileDirName = b.ProfileDirName
}

var (
	Name            string
	LowerName       string
	Description     string
	Tagline         string
	ConfigEnvPrefix string
	BinaryName      string
	ProfileDirName  string

	// Version is set at build time via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// Env returns the value of PREFIX_<key>, e.g. Env("NETNS") reads NETCTL_NETNS.
func Env(key string) string {
	return os.Getenv(ConfigEnvPrefix + "_" + key)
}

// GetConfigDir returns the per-user config directory.
// Priority: NETCTL_CONFIG_DIR > $XDG_CONFIG_HOME/netctl > ~/.config/netctl
func GetConfigDir() string {
	if dir := Env("CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, LowerName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", LowerName)
	}
	return filepath.Join(os.TempDir(), LowerName)
}

// GetProfileDir returns the directory holding saved profiles.
// Priority: NETCTL_PROFILE_DIR > GetConfigDir()/profiles
func GetProfileDir() string {
	if dir := Env("PROFILE_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(GetConfigDir(), ProfileDirName)
}

package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"grimm.is/netctl/internal/brand"
	"grimm.is/netctl/internal/clock"
)

const profileExt = ".yaml"

// Profile is a named, saved Config.
type Profile struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	CreatedAt   string      `yaml:"created_at" json:"created_at"`
	Hostname    string      `yaml:"hostname,omitempty" json:"hostname,omitempty"`
	Interfaces  []Interface `yaml:"interfaces" json:"interfaces"`
}

// Config returns the profile's desired state.
func (p *Profile) Config() *Config {
	return &Config{Hostname: p.Hostname, Interfaces: p.Interfaces}
}

// Store keeps profiles as YAML files in one directory.
type Store struct {
	Dir   string
	Clock clock.Clock
}

// NewStore returns a store rooted at the configured profile directory.
func NewStore() *Store {
	return &Store{Dir: brand.GetProfileDir(), Clock: clock.RealClock{}}
}

// Path returns the file a profile is stored in.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+profileExt)
}

func checkName(name string) error {
	if name == "" || name == "current" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid profile name %q", name)
	}
	return nil
}

// Save writes cfg as profile name and returns the file path.
func (s *Store) Save(name, description string, cfg *Config) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	now := time.Now
	if s.Clock != nil {
		now = s.Clock.Now
	}
	p := Profile{
		Name:        name,
		Description: description,
		CreatedAt:   now().UTC().Format(time.RFC3339),
		Hostname:    cfg.Hostname,
		Interfaces:  cfg.Interfaces,
	}
	data, err := yaml.Marshal(&p)
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create profile directory: %w", err)
	}
	path := s.Path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write profile: %w", err)
	}
	return path, nil
}

// Load reads profile name.
func (s *Store) Load(name string) (*Profile, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("profile '%s' not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", name, err)
	}
	return &p, nil
}

// List returns every readable profile, sorted by name. Files that do not
// parse are skipped. A missing directory is an empty list.
func (s *Store) List() ([]Profile, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}
	var out []Profile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != profileExt {
			continue
		}
		p, err := s.Load(strings.TrimSuffix(e.Name(), profileExt))
		if err != nil {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes profile name.
func (s *Store) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	err := os.Remove(s.Path(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("profile '%s' not found", name)
	}
	return err
}

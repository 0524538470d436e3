// Package profile handles declarative interface state: apply files in HCL
// or YAML, saved profiles, validation, diffing and export.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v2"
)

// Config describes the desired state of a set of interfaces.
type Config struct {
	Hostname   string      `hcl:"hostname,optional" yaml:"hostname,omitempty" json:"hostname,omitempty"`
	Interfaces []Interface `hcl:"interface,block" yaml:"interfaces" json:"interfaces"`
}

// Interface is the desired state of one link. Zero values mean "leave as is".
type Interface struct {
	Name       string   `hcl:"name,label" yaml:"name" json:"name"`
	State      string   `hcl:"state,optional" yaml:"state,omitempty" json:"state,omitempty"`
	MTU        uint32   `hcl:"mtu,optional" yaml:"mtu,omitempty" json:"mtu,omitempty"`
	MACAddress string   `hcl:"mac_address,optional" yaml:"mac_address,omitempty" json:"mac_address,omitempty"` // recorded, never applied
	Addresses  []string `hcl:"addresses,optional" yaml:"addresses,omitempty" json:"addresses,omitempty"`
	DHCP       string   `hcl:"dhcp,optional" yaml:"dhcp,omitempty" json:"dhcp,omitempty"` // declarative only
	DNS        []string `hcl:"dns,optional" yaml:"dns,omitempty" json:"dns,omitempty"`
	Domains    []string `hcl:"domains,optional" yaml:"domains,omitempty" json:"domains,omitempty"`
}

// LoadFile reads an apply file. The format follows the extension:
// .hcl, or .yaml/.yml.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadBytes(path, data)
}

// LoadBytes decodes data, choosing the format from filename.
func LoadBytes(filename string, data []byte) (*Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		if err := hclsimple.Decode(filename, data, nil, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q: use .hcl, .yaml or .yml", filepath.Ext(filename))
	}
	return &cfg, nil
}

// Lookup returns the named interface, or nil.
func (c *Config) Lookup(name string) *Interface {
	for i := range c.Interfaces {
		if c.Interfaces[i].Name == name {
			return &c.Interfaces[i]
		}
	}
	return nil
}

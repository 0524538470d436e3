package profile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v2"
)

// Formats accepted by Encode.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatHCL  = "hcl"
)

// Encode renders cfg in the given format. YAML and HCL output can be fed
// back to LoadBytes.
func Encode(cfg *Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatYAML, "yml", "":
		return yaml.Marshal(cfg)
	case FormatJSON:
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case FormatHCL:
		return EncodeHCL(cfg), nil
	}
	return nil, fmt.Errorf("unknown format %q: use yaml, json or hcl", format)
}

// EncodeHCL writes one interface block per link.
func EncodeHCL(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	if cfg.Hostname != "" {
		body.SetAttributeValue("hostname", cty.StringVal(cfg.Hostname))
		body.AppendNewline()
	}

	for i, iface := range cfg.Interfaces {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("interface", []string{iface.Name})
		b := block.Body()
		if iface.State != "" {
			b.SetAttributeValue("state", cty.StringVal(iface.State))
		}
		if iface.MTU != 0 {
			b.SetAttributeValue("mtu", cty.NumberUIntVal(uint64(iface.MTU)))
		}
		if iface.MACAddress != "" {
			b.SetAttributeValue("mac_address", cty.StringVal(iface.MACAddress))
		}
		setStringList(b, "addresses", iface.Addresses)
		if iface.DHCP != "" {
			b.SetAttributeValue("dhcp", cty.StringVal(iface.DHCP))
		}
		setStringList(b, "dns", iface.DNS)
		setStringList(b, "domains", iface.Domains)
	}
	return hclwrite.Format(f.Bytes())
}

func setStringList(b *hclwrite.Body, name string, vals []string) {
	if len(vals) == 0 {
		return
	}
	items := make([]cty.Value, 0, len(vals))
	for _, v := range vals {
		items = append(items, cty.StringVal(v))
	}
	b.SetAttributeValue(name, cty.ListVal(items))
}

// Diff returns a unified diff of the YAML renderings of a and b. It is
// empty when they are equal.
func Diff(aName string, a *Config, bName string, b *Config) (string, error) {
	aText, err := yaml.Marshal(a)
	if err != nil {
		return "", err
	}
	bText, err := yaml.Marshal(b)
	if err != nil {
		return "", err
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(aText)),
		B:        difflib.SplitLines(string(bText)),
		FromFile: aName,
		ToFile:   bName,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

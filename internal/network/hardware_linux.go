//go:build linux

package network

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/safchain/ethtool"
)

// HardwareProber reads driver and link settings over an ethtool socket.
type HardwareProber struct {
	handle *ethtool.Ethtool
}

// NewHardwareProber opens the ethtool handle.
func NewHardwareProber() (*HardwareProber, error) {
	h, err := ethtool.NewEthtool()
	if err != nil {
		return nil, fmt.Errorf("failed to open ethtool handle: %w", err)
	}
	return &HardwareProber{handle: h}, nil
}

// Close closes the ethtool handle.
func (p *HardwareProber) Close() {
	p.handle.Close()
}

// Probe returns hardware details for iface. Link settings for virtual
// drivers come from sysfs, since GetLinkSettings is noisy or unsupported
// there.
func (p *HardwareProber) Probe(iface string) (*Hardware, error) {
	info, err := p.handle.DriverInfo(iface)
	if err != nil {
		return nil, fmt.Errorf("ethtool DriverInfo failed for %s: %w", iface, err)
	}
	hw := &Hardware{
		Driver:   info.Driver,
		Version:  info.Version,
		Firmware: info.FwVersion,
		BusInfo:  info.BusInfo,
		Duplex:   "unknown",
	}

	if isVirtualNIC(iface) {
		hw.Speed, hw.Duplex = linkSettingsFromSysfs(iface)
		return hw, nil
	}

	settings, err := p.handle.GetLinkSettings(iface)
	if err != nil {
		hw.Speed, hw.Duplex = linkSettingsFromSysfs(iface)
		return hw, nil
	}
	hw.Speed = settings.Speed
	switch settings.Duplex {
	case ethtool.DUPLEX_FULL:
		hw.Duplex = "full"
	case ethtool.DUPLEX_HALF:
		hw.Duplex = "half"
	}
	return hw, nil
}

var sysClassNet = "/sys/class/net"

func linkSettingsFromSysfs(iface string) (uint32, string) {
	var speed uint32
	if data, err := os.ReadFile(filepath.Join(sysClassNet, iface, "speed")); err == nil {
		if v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 32); err == nil {
			speed = uint32(v)
		}
	}
	duplex := "unknown"
	if data, err := os.ReadFile(filepath.Join(sysClassNet, iface, "duplex")); err == nil {
		if d := strings.TrimSpace(string(data)); d == "full" || d == "half" {
			duplex = d
		}
	}
	return speed, duplex
}

var virtualDrivers = map[string]bool{
	"virtio_net": true, "veth": true, "tun": true, "tap": true,
	"bridge": true, "dummy": true, "xen_netfront": true, "vmxnet3": true,
	"hv_netvsc": true,
}

// isVirtualNIC reports links with a virtual driver or no backing device.
func isVirtualNIC(name string) bool {
	dev := filepath.Join(sysClassNet, name, "device")
	if target, err := os.Readlink(filepath.Join(dev, "driver")); err == nil {
		if virtualDrivers[filepath.Base(target)] {
			return true
		}
	}
	if data, err := os.ReadFile(filepath.Join(dev, "modalias")); err == nil {
		if strings.HasPrefix(string(data), "virtio") {
			return true
		}
	}
	_, err := os.Stat(dev)
	return os.IsNotExist(err)
}

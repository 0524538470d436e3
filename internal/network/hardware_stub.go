//go:build !linux

package network

// HardwareProber is unavailable off Linux.
type HardwareProber struct{}

func NewHardwareProber() (*HardwareProber, error) {
	return nil, errUnsupported
}

func (p *HardwareProber) Close() {}

func (p *HardwareProber) Probe(iface string) (*Hardware, error) {
	return nil, errUnsupported
}

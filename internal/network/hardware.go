package network

// Hardware describes the driver and PHY state of a link as reported by
// ethtool. Virtual links typically have no speed and report duplex "unknown".
type Hardware struct {
	Driver   string `json:"driver"`
	Version  string `json:"version,omitempty"`
	Firmware string `json:"firmware,omitempty"`
	BusInfo  string `json:"bus_info,omitempty"`
	Speed    uint32 `json:"speed_mbps"`
	Duplex   string `json:"duplex"`
}

package hba

// PortType enumerates the SAS port types reported by a Source. Only
// PortTypeSASDevice is meaningful to Discover; the rest are passed
// through for attribute purposes.
type PortType int

const (
	PortTypeUnknown PortType = iota
	PortTypeSASDevice
	PortTypeExpander
)

// AdapterHandle is an opaque handle a Source hands back from Open and
// expects on every subsequent call for that adapter.
type AdapterHandle interface{}

// AdapterAttrs carries the identification fields Discover copies onto
// the initiator vertex's attribute group.
type AdapterAttrs struct {
	Manufacturer string
	Model        string
	Serial       string
}

// PortAttrs is a SAS-port record: local/attached SAS addresses, PHY
// count, port type, and the number of devices the HBA itself
// discovered attached to this port.
type PortAttrs struct {
	LocalSASAddress        uint64
	AttachedSASAddress     uint64
	NumPhys                int
	PortType               PortType
	NumberOfDiscoveredPorts int
}

// PhyAttrs carries a single PHY's identifier.
type PhyAttrs struct {
	PhyIdentifier uint32
}

// Source is the opaque HBA discovery API an HBA management library
// exposes, modeled the way spec §6.1 describes it: load/unload,
// num_adapters, adapter_name, open, adapter_attrs, num_ports, port_attrs,
// phy_attrs.
type Source interface {
	Load() error
	Unload()

	NumAdapters() (int, error)
	AdapterName(i int) (string, error)
	Open(name string) (AdapterHandle, error)

	AdapterAttrs(h AdapterHandle) (AdapterAttrs, error)
	NumPorts(h AdapterHandle) (int, error)
	PortAttrs(h AdapterHandle, j int) (PortAttrs, error)
	PhyAttrs(h AdapterHandle, j, k int) (PhyAttrs, error)
}

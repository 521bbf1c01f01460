package expander

// AttachedDeviceType classifies what Discover found attached to a PHY.
type AttachedDeviceType int

const (
	AttachedNone AttachedDeviceType = iota
	AttachedSASSATA
	AttachedExpander
)

// ReportGeneralResp is the SMP Report General response: PHY count and
// the expander's own SAS address.
type ReportGeneralResp struct {
	NumPhys    int
	SASAddress uint64
}

// DiscoverResp is the SMP Discover response for a single PHY.
type DiscoverResp struct {
	Vacant bool

	AttachedDeviceType AttachedDeviceType
	AttachedSSPTarget  bool
	AttachedSTPTarget  bool
	AttachedSMPTarget  bool

	AttachedSSPInitiator bool
	AttachedSTPInitiator bool
	AttachedSMPInitiator bool

	// ConnectorType, per SES-3, identifies an expander backplane
	// receptacle when it falls in 0x20-0x2F; 0x20 specifically marks an
	// end-device attachment per sas.c.
	ConnectorType uint8

	SASAddress         uint64
	PhyIdentifier      uint32
	AttachedSASAddress uint64
	AttachedPhy        uint32
}

// Target is an open SMP session against one expander's devfs node.
type Target interface {
	ReportGeneral() (ReportGeneralResp, error)
	Discover(phy int) (DiscoverResp, error)
	Close() error
}

// Transport opens an SMP Target against a devfs path of the form
// "/devices<path>:smp".
type Transport interface {
	Open(devfsPath string) (Target, error)
}

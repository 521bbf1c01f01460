package fmri

// Scheme and Version are the constant scheme name and current FMRI
// version this package produces and accepts.
const (
	Scheme  = "sas"
	Version = uint8(0)
)

// AuthorityType distinguishes the two resource shapes this scheme names.
type AuthorityType string

const (
	// TypePath identifies a complete initiator-to-target walk.
	TypePath AuthorityType = "path"
	// TypePathnode identifies a single vertex.
	TypePathnode AuthorityType = "pathnode"
)

// Name is the sas-path component name, one of the four vertex kinds.
type Name string

const (
	NameInitiator Name = "initiator"
	NamePort      Name = "port"
	NameExpander  Name = "expander"
	NameTarget    Name = "target"
)

// Authority is the nvlist authority portion of an FMRI: a type tag plus,
// for port pathnodes only, an inclusive PHY range.
type Authority struct {
	Type AuthorityType

	// HasPhyRange is true iff both StartPhy and EndPhy are present. Per
	// L3, the textual phy-range fragment appears iff both fields are
	// set together; there is no partial form.
	HasPhyRange bool
	StartPhy    uint32
	EndPhy      uint32
}

// PathComponent is one (name, id) pair in an FMRI's sas-path.
type PathComponent struct {
	Name Name
	ID   uint64
}

// NVL is the structured form of a sas-scheme FMRI.
type NVL struct {
	Scheme    string
	Version   uint8
	Authority Authority
	SASPath   []PathComponent
}

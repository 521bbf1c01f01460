package core

import (
	"fmt"
	"sync"
)

// Kind identifies one of the four vertex kinds in a SAS fabric digraph.
type Kind uint8

const (
	KindInitiator Kind = iota
	KindPort
	KindExpander
	KindTarget
)

// String renders the kind the way it appears in FMRI sas-path names.
func (k Kind) String() string {
	switch k {
	case KindInitiator:
		return "initiator"
	case KindPort:
		return "port"
	case KindExpander:
		return "expander"
	case KindTarget:
		return "target"
	default:
		return "unknown"
	}
}

// PhyRange is an inclusive range of PHY identifiers, valid only on port
// vertices. StartPhy must be <= EndPhy. A range with Start == End is a
// narrow port; Start < End is a wide port.
type PhyRange struct {
	StartPhy uint32
	EndPhy   uint32
}

// Wide reports whether this range spans more than one PHY.
func (r PhyRange) Wide() bool { return r.StartPhy < r.EndPhy }

// VertexKey is the unique identity of a vertex. For non-port kinds only
// Kind and SASAddress are significant; HasRange is false and the phy
// fields are zero. For port vertices HasRange is true and the phy range
// participates in identity.
type VertexKey struct {
	Kind       Kind
	SASAddress uint64
	HasRange   bool
	Range      PhyRange
}

func (k VertexKey) canonical() string {
	if k.HasRange {
		return fmt.Sprintf("%d:%016x:%d-%d", k.Kind, k.SASAddress, k.Range.StartPhy, k.Range.EndPhy)
	}
	return fmt.Sprintf("%d:%016x", k.Kind, k.SASAddress)
}

// AttrKind tags the scalar type held by an AttrValue.
type AttrKind uint8

const (
	AttrString AttrKind = iota
	AttrUint32
	AttrUint64
)

// AttrValue is a typed scalar stored in a vertex's attribute bag.
type AttrValue struct {
	Kind AttrKind
	Str  string
	U32  uint32
	U64  uint64
}

func StringAttr(s string) AttrValue { return AttrValue{Kind: AttrString, Str: s} }
func Uint32Attr(v uint32) AttrValue { return AttrValue{Kind: AttrUint32, U32: v} }
func Uint64Attr(v uint64) AttrValue { return AttrValue{Kind: AttrUint64, U64: v} }

// Vertex is one node of the fabric digraph: an initiator, port, expander,
// or target. Attrs is write-once per key (see SetAttr).
type Vertex struct {
	Key   VertexKey
	Attrs map[string]AttrValue

	// seq is the vertex's creation index. Iteration order itself comes
	// from Graph.order, not from this field.
	seq int

	// outgoing/incoming hold edge targets in insertion order, plus a
	// presence set for O(1) idempotency checks on AddEdge.
	outgoing    []*Vertex
	outgoingSet map[*Vertex]struct{}
	incoming    []*Vertex
	incomingSet map[*Vertex]struct{}
}

// Kind returns the vertex's kind.
func (v *Vertex) Kind() Kind { return v.Key.Kind }

// SASAddress returns the vertex's SAS address (WWN).
func (v *Vertex) SASAddress() uint64 { return v.Key.SASAddress }

// PhyRange returns the vertex's PHY range and whether it has one (ports only).
func (v *Vertex) PhyRange() (PhyRange, bool) { return v.Key.Range, v.Key.HasRange }

// Outgoing returns the outgoing edge targets in creation order.
func (v *Vertex) Outgoing() []*Vertex { return append([]*Vertex(nil), v.outgoing...) }

// Incoming returns the incoming edge sources in creation order.
func (v *Vertex) Incoming() []*Vertex { return append([]*Vertex(nil), v.incoming...) }

// Edge is a directed connection between two vertices. The graph stores no
// separate Edge value beyond the adjacency recorded on each Vertex; Edge is
// a read-only view handed to IterEdges callbacks.
type Edge struct {
	From *Vertex
	To   *Vertex
}

// WalkDirective is returned by IterVertices/IterEdges callbacks to control
// traversal, mirroring the TOPO_WALK_NEXT/TOPO_WALK_TERMINATE contract of
// the topo digraph callback API this package replaces.
type WalkDirective int

const (
	WalkContinue WalkDirective = iota
	WalkStop
)

// Graph is the SAS fabric digraph. Zero value is not usable; use NewGraph.
type Graph struct {
	mu       sync.RWMutex
	vertices map[string]*Vertex
	order    []*Vertex
	nextSeq  int
}

// NewGraph returns an empty, ready-to-use Graph.
func NewGraph() *Graph {
	return &Graph{vertices: make(map[string]*Vertex)}
}

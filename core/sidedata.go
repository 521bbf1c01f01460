package core

import "sync"

// Origin records which discovery component produced a port or expander
// vertex's side-data: C3 (HBA discovery) or C4 (expander/SMP discovery).
type Origin uint8

const (
	OriginHBA Origin = iota
	OriginExpander
)

// PortSide is the side-data record of a port or expander vertex. Discovery
// records one for every HBA port, every expander, and every port vertex
// the expander wide-port scanner emits; the port vertices emitted for a
// directly attached end device, and the device-side port HBA discovery
// synthesizes, carry none, and the stitcher skips ports without one.
// It is kept in a table keyed by vertex handle rather than as a
// pointer embedded in Vertex, per the design note on avoiding pointer
// cycles from side-data back into the graph.
type PortSide struct {
	// AttachedWWN is the expected peer SAS address seen during local
	// discovery (the port's "attached SAS address" on an HBA port, or
	// the peer identified during an expander's PHY scan).
	AttachedWWN uint64

	// Origin identifies which discovery component produced this record.
	Origin Origin

	// HasHBAEdge is set on an expander's side-data by the stitcher once
	// it has proven that expander reaches an initiator.
	HasHBAEdge bool
}

// SideTable is a mutex-guarded map from vertex handle to its PortSide
// record. The zero value is not usable; use NewSideTable.
type SideTable struct {
	mu   sync.RWMutex
	data map[*Vertex]*PortSide
}

// NewSideTable returns an empty, ready-to-use SideTable.
func NewSideTable() *SideTable {
	return &SideTable{data: make(map[*Vertex]*PortSide)}
}

// Set records side-data for v, overwriting any previous record. Unlike the
// attribute bag, side-data is mutable: the stitcher updates HasHBAEdge in
// place during Pass A.
func (t *SideTable) Set(v *Vertex, side *PortSide) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data[v] = side
}

// Get returns v's side-data record and whether one is present.
func (t *SideTable) Get(v *Vertex) (*PortSide, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.data[v]
	return s, ok
}

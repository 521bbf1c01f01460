package core

import (
	"fmt"

	"github.com/joyent/sastopo/fmri"
)

func kindToName(k Kind) (fmri.Name, error) {
	switch k {
	case KindInitiator:
		return fmri.NameInitiator, nil
	case KindPort:
		return fmri.NamePort, nil
	case KindExpander:
		return fmri.NameExpander, nil
	case KindTarget:
		return fmri.NameTarget, nil
	default:
		return "", ErrUnknownKind
	}
}

// NewVertex creates and registers a vertex of the given kind and SAS
// address. phyRange must be provided iff kind == KindPort; it must be nil
// for the other three kinds. The standard attribute group
// for the kind is created empty and ready for SetAttr calls, and a
// "resource" attribute holding the vertex's pathnode FMRI is attached
// automatically.
//
// NewVertex fails ErrUnknownKind for an unrecognized kind,
// ErrPortRangeRequired if the phyRange/kind pairing is wrong, and
// ErrInvalidPhyRange if start > end, and ErrDuplicateVertex if a vertex
// with the same identity already exists.
func (g *Graph) NewVertex(kind Kind, sasAddress uint64, phyRange *PhyRange) (*Vertex, error) {
	name, err := kindToName(kind)
	if err != nil {
		return nil, err
	}

	key := VertexKey{Kind: kind, SASAddress: sasAddress}
	if kind == KindPort {
		if phyRange == nil {
			return nil, ErrPortRangeRequired
		}
		if phyRange.StartPhy > phyRange.EndPhy {
			return nil, ErrInvalidPhyRange
		}
		key.HasRange = true
		key.Range = *phyRange
	} else if phyRange != nil {
		return nil, ErrPortRangeRequired
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ck := key.canonical()
	if _, exists := g.vertices[ck]; exists {
		return nil, fmt.Errorf("%w: %s=%016x", ErrDuplicateVertex, name, sasAddress)
	}

	v := &Vertex{
		Key:         key,
		Attrs:       make(map[string]AttrValue),
		seq:         g.nextSeq,
		outgoingSet: make(map[*Vertex]struct{}),
		incomingSet: make(map[*Vertex]struct{}),
	}
	g.nextSeq++

	auth := fmri.Authority{Type: fmri.TypePathnode}
	if kind == KindPort {
		auth.HasPhyRange = true
		auth.StartPhy = phyRange.StartPhy
		auth.EndPhy = phyRange.EndPhy
	}
	nvl, err := fmri.Construct(name, sasAddress, auth)
	if err != nil {
		return nil, fmt.Errorf("constructing resource fmri: %w", err)
	}
	resource, err := fmri.Encode(nvl)
	if err != nil {
		return nil, fmt.Errorf("encoding resource fmri: %w", err)
	}
	v.Attrs[AttrResource] = StringAttr(resource)

	g.vertices[ck] = v
	g.order = append(g.order, v)

	return v, nil
}

// AddEdge draws a directed edge from -> to. It is idempotent: adding the
// same edge twice is a no-op and returns no error. Edge order (as seen by
// IterEdges) is insertion order.
func (g *Graph) AddEdge(from, to *Vertex) error {
	if from == nil || to == nil {
		return ErrVertexNotFound
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := from.outgoingSet[to]; ok {
		return nil
	}
	from.outgoingSet[to] = struct{}{}
	from.outgoing = append(from.outgoing, to)
	to.incomingSet[from] = struct{}{}
	to.incoming = append(to.incoming, from)

	return nil
}

// Find returns the unique vertex with the given kind and SAS address.
// Valid for initiator/expander/target kinds, where (kind, sasAddress) is
// the full identity; a port's identity also includes a PHY range, so
// Find on KindPort always misses — use FindPorts instead.
func (g *Graph) Find(kind Kind, sasAddress uint64) (*Vertex, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	key := VertexKey{Kind: kind, SASAddress: sasAddress}
	v, ok := g.vertices[key.canonical()]
	return v, ok
}

// FindPort searches for a port vertex with the given SAS address whose
// side-data records attachedWWN as its expected peer. Used by the
// stitcher to locate a candidate peer port by local/attached WWN match.
// Returns all matches; the stitcher decides how to handle more than one
// (AMBIGUOUS_TOPOLOGY).
func (g *Graph) FindPort(sasAddress, attachedWWN uint64, sides *SideTable) []*Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var matches []*Vertex
	for _, v := range g.order {
		if v.Kind() != KindPort || v.SASAddress() != sasAddress {
			continue
		}
		side, ok := sides.Get(v)
		if !ok || side.AttachedWWN != attachedWWN {
			continue
		}
		matches = append(matches, v)
	}
	return matches
}

// FindPorts returns every port vertex with the given SAS address,
// regardless of PHY range — a port's full identity includes its range,
// so unlike Find this may return more than one vertex. Used by tests and
// callers that only know a port's address.
func (g *Graph) FindPorts(sasAddress uint64) []*Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var matches []*Vertex
	for _, v := range g.order {
		if v.Kind() == KindPort && v.SASAddress() == sasAddress {
			matches = append(matches, v)
		}
	}
	return matches
}

// IterVertices walks every vertex in creation order, invoking fn until it
// returns WalkStop or the vertices are exhausted.
func (g *Graph) IterVertices(fn func(*Vertex) WalkDirective) {
	g.mu.RLock()
	snapshot := append([]*Vertex(nil), g.order...)
	g.mu.RUnlock()

	for _, v := range snapshot {
		if fn(v) == WalkStop {
			return
		}
	}
}

// IterEdges walks v's outgoing edges in creation order, invoking fn until
// it returns WalkStop or the edges are exhausted.
func (g *Graph) IterEdges(v *Vertex, fn func(Edge) WalkDirective) {
	g.mu.RLock()
	snapshot := append([]*Vertex(nil), v.outgoing...)
	g.mu.RUnlock()

	for _, to := range snapshot {
		if fn(Edge{From: v, To: to}) == WalkStop {
			return
		}
	}
}

// VertexCount returns the number of vertices currently in the graph.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.order)
}

// EdgeCount returns the number of directed edges currently in the graph.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, v := range g.order {
		n += len(v.outgoing)
	}
	return n
}

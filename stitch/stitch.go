package stitch

import (
	"fmt"

	"github.com/joyent/sastopo/core"
)

// Stitch cross-links the islands hba.Discover and expander.Discover leave
// in g and orients expander-to-expander edges, implementing spec §4.5.
//
// The three passes run as linkHBAToExpander, orientExpanderEdges, then
// linkInterExpander. This reimplementation runs the orientation sweep
// before the inter-expander linkage pass: in the original source the two
// are interleaved in a single vertex walk in exactly that relative order
// (per-vertex expander-orientation happens during the same walk that
// processes HBA edges, before the second walk that performs inter-expander
// linkage), and that ordering is load-bearing — it is what prevents a
// two-expander pair from being linked in both directions. Running
// orientation first gives the port on the non-HBA-reachable expander an
// outgoing P -> E edge before linkInterExpander's "zero outgoing edges"
// entry condition is evaluated, so only the port on the HBA-reachable
// expander (which received an inbound E -> P edge) is chosen as the
// link's source. A pair in which both expanders are HBA-reachable is
// rejected with an error.
func Stitch(g *core.Graph, sides *core.SideTable) error {
	if err := linkHBAToExpander(g, sides); err != nil {
		return err
	}
	if err := orientExpanderEdges(g, sides); err != nil {
		return err
	}
	if err := linkInterExpander(g, sides); err != nil {
		return err
	}
	return nil
}

func filterPorts(ports []*core.Vertex, pred func(*core.Vertex) bool) []*core.Vertex {
	var out []*core.Vertex
	for _, p := range ports {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// linkHBAToExpander is Pass A (spec §4.5): for every initiator, every
// outgoing HBA port with zero outgoing edges is matched to the expander
// port it attaches to and wired through to that port's expander.
func linkHBAToExpander(g *core.Graph, sides *core.SideTable) error {
	var initiators []*core.Vertex
	g.IterVertices(func(v *core.Vertex) core.WalkDirective {
		if v.Kind() == core.KindInitiator {
			initiators = append(initiators, v)
		}
		return core.WalkContinue
	})

	for _, ini := range initiators {
		for _, h := range ini.Outgoing() {
			if len(h.Outgoing()) != 0 {
				continue
			}
			hSide, ok := sides.Get(h)
			if !ok {
				continue
			}

			candidates := filterPorts(g.FindPorts(hSide.AttachedWWN), func(e *core.Vertex) bool {
				eSide, ok := sides.Get(e)
				return ok && eSide.AttachedWWN == h.SASAddress() && len(e.Incoming()) == 0
			})
			if len(candidates) > 1 {
				return fmt.Errorf("%w: hba port %016x has %d candidate expander peers",
					ErrAmbiguousTopology, h.SASAddress(), len(candidates))
			}
			if len(candidates) == 0 {
				continue
			}
			ep := candidates[0]

			if err := g.AddEdge(h, ep); err != nil {
				return err
			}

			exp, ok := g.Find(core.KindExpander, ep.SASAddress())
			if !ok {
				return fmt.Errorf("stitch: no expander vertex for port %016x", ep.SASAddress())
			}
			if err := g.AddEdge(ep, exp); err != nil {
				return err
			}

			expSide, ok := sides.Get(exp)
			if !ok {
				expSide = &core.PortSide{Origin: core.OriginExpander}
			}
			expSide.HasHBAEdge = true
			sides.Set(exp, expSide)
		}
	}
	return nil
}

// orientExpanderEdges decides, for every expander-origin port with zero
// incoming edges, whether it is the outbound or inbound side of its
// expander's edge (spec §4.5, "edge orientation"). An expander reachable
// from an HBA (has_hba_edge) projects its edges outward to its remaining
// ports; one that is not reachable accepts an inbound edge instead.
func orientExpanderEdges(g *core.Graph, sides *core.SideTable) error {
	var ports []*core.Vertex
	g.IterVertices(func(v *core.Vertex) core.WalkDirective {
		if v.Kind() == core.KindPort {
			ports = append(ports, v)
		}
		return core.WalkContinue
	})

	for _, p := range ports {
		side, ok := sides.Get(p)
		if !ok || side.Origin != core.OriginExpander {
			continue
		}
		if len(p.Incoming()) != 0 {
			continue
		}

		exp, ok := g.Find(core.KindExpander, p.SASAddress())
		if !ok {
			return fmt.Errorf("stitch: no expander vertex for port %016x", p.SASAddress())
		}
		expSide, ok := sides.Get(exp)
		if ok && expSide.HasHBAEdge {
			if err := g.AddEdge(exp, p); err != nil {
				return err
			}
		} else {
			if err := g.AddEdge(p, exp); err != nil {
				return err
			}
		}
	}
	return nil
}

// linkInterExpander is Pass B (spec §4.5): every remaining expander-origin
// port with zero outgoing edges is matched to its peer on the facing
// expander and wired directly, port to port.
func linkInterExpander(g *core.Graph, sides *core.SideTable) error {
	var ports []*core.Vertex
	g.IterVertices(func(v *core.Vertex) core.WalkDirective {
		if v.Kind() == core.KindPort {
			ports = append(ports, v)
		}
		return core.WalkContinue
	})

	for _, p := range ports {
		side, ok := sides.Get(p)
		if !ok || side.Origin != core.OriginExpander {
			continue
		}
		if len(p.Outgoing()) != 0 {
			continue
		}

		candidates := filterPorts(g.FindPorts(side.AttachedWWN), func(q *core.Vertex) bool {
			qSide, ok := sides.Get(q)
			return ok && qSide.AttachedWWN == p.SASAddress()
		})
		if len(candidates) > 1 {
			return fmt.Errorf("%w: expander port %016x has %d candidate peers",
				ErrAmbiguousTopology, p.SASAddress(), len(candidates))
		}
		if len(candidates) == 0 {
			continue
		}

		reachable := 0
		for _, addr := range []uint64{p.SASAddress(), candidates[0].SASAddress()} {
			if exp, ok := g.Find(core.KindExpander, addr); ok {
				if s, ok := sides.Get(exp); ok && s.HasHBAEdge {
					reachable++
				}
			}
		}
		if reachable == 2 {
			return fmt.Errorf("stitch: expander ports %016x and %016x link two HBA-reachable expanders",
				p.SASAddress(), candidates[0].SASAddress())
		}

		if err := g.AddEdge(p, candidates[0]); err != nil {
			return err
		}
	}
	return nil
}

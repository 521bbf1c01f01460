package stitch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joyent/sastopo/core"
	"github.com/joyent/sastopo/stitch"
)

// buildTwoExpanderFabric assembles the islands hba.Discover and
// expander.Discover would have left behind for S6: one initiator behind
// one HBA port, two expanders connected to each other, only the first
// HBA-reachable.
func buildTwoExpanderFabric(t *testing.T) (*core.Graph, *core.SideTable, map[string]*core.Vertex) {
	t.Helper()
	g := core.NewGraph()
	sides := core.NewSideTable()

	const (
		iniAddr  = 0x5003048023567a00
		exp1Addr = 0x500304801861347f
		exp2Addr = 0xDEADBEEF
	)

	ini, err := g.NewVertex(core.KindInitiator, iniAddr, nil)
	require.NoError(t, err)

	hPort, err := g.NewVertex(core.KindPort, iniAddr, &core.PhyRange{StartPhy: 0, EndPhy: 0})
	require.NoError(t, err)
	sides.Set(hPort, &core.PortSide{AttachedWWN: exp1Addr, Origin: core.OriginHBA})
	require.NoError(t, g.AddEdge(ini, hPort))

	epInit, err := g.NewVertex(core.KindPort, exp1Addr, &core.PhyRange{StartPhy: 0, EndPhy: 7})
	require.NoError(t, err)
	sides.Set(epInit, &core.PortSide{AttachedWWN: iniAddr, Origin: core.OriginExpander})

	exp1, err := g.NewVertex(core.KindExpander, exp1Addr, nil)
	require.NoError(t, err)
	sides.Set(exp1, &core.PortSide{Origin: core.OriginExpander})

	p1, err := g.NewVertex(core.KindPort, exp1Addr, &core.PhyRange{StartPhy: 10, EndPhy: 17})
	require.NoError(t, err)
	sides.Set(p1, &core.PortSide{AttachedWWN: exp2Addr, Origin: core.OriginExpander})

	exp2, err := g.NewVertex(core.KindExpander, exp2Addr, nil)
	require.NoError(t, err)
	sides.Set(exp2, &core.PortSide{Origin: core.OriginExpander})

	p2, err := g.NewVertex(core.KindPort, exp2Addr, &core.PhyRange{StartPhy: 0, EndPhy: 7})
	require.NoError(t, err)
	sides.Set(p2, &core.PortSide{AttachedWWN: exp1Addr, Origin: core.OriginExpander})

	targetAddr := uint64(0xDEADBEED)
	exp2TgtPort, err := g.NewVertex(core.KindPort, exp2Addr, &core.PhyRange{StartPhy: 8, EndPhy: 8})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(exp2, exp2TgtPort))
	devPort, err := g.NewVertex(core.KindPort, targetAddr, &core.PhyRange{StartPhy: 0, EndPhy: 0})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(exp2TgtPort, devPort))
	target, err := g.NewVertex(core.KindTarget, targetAddr, nil)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(devPort, target))

	return g, sides, map[string]*core.Vertex{
		"initiator": ini,
		"hPort":     hPort,
		"epInit":    epInit,
		"exp1":      exp1,
		"p1":        p1,
		"exp2":      exp2,
		"p2":        p2,
		"target":    target,
	}
}

func TestStitch_Orientation_S6(t *testing.T) {
	g, sides, v := buildTwoExpanderFabric(t)

	require.NoError(t, stitch.Stitch(g, sides))

	require.Equal(t, []*core.Vertex{v["epInit"]}, v["hPort"].Outgoing())
	require.Equal(t, []*core.Vertex{v["exp1"]}, v["epInit"].Outgoing())

	require.Equal(t, []*core.Vertex{v["p1"]}, v["exp1"].Outgoing(), "E1 -> P1, outbound from the HBA-reachable expander")
	require.Equal(t, []*core.Vertex{v["p2"]}, v["p1"].Outgoing(), "P1 -> P2, the inter-expander link")
	require.Equal(t, []*core.Vertex{v["exp2"]}, v["p2"].Outgoing(), "P2 -> E2, inbound to the non-HBA-reachable expander")

	require.Equal(t, []*core.Vertex{v["p1"]}, v["p2"].Incoming(), "P2's only incoming edge is the inter-expander link from P1")
	require.Len(t, v["p1"].Incoming(), 1, "P1 receives exactly E1's outbound edge")
}

func TestStitch_NoDuplicateReverseEdge(t *testing.T) {
	g, sides, v := buildTwoExpanderFabric(t)
	require.NoError(t, stitch.Stitch(g, sides))

	require.Len(t, v["p1"].Outgoing(), 1)
	require.Len(t, v["p2"].Outgoing(), 1)
	require.NotContains(t, v["p2"].Outgoing(), v["p1"], "the reverse of P1->P2 must not also be drawn")
}

func TestStitch_InvariantsHoldOnFixture(t *testing.T) {
	g, sides, v := buildTwoExpanderFabric(t)
	require.NoError(t, stitch.Stitch(g, sides))

	// I1: every target has exactly one incoming edge from a port whose
	// sas_address equals the target's.
	require.Len(t, v["target"].Incoming(), 1)
	require.Equal(t, v["target"].SASAddress(), v["target"].Incoming()[0].SASAddress())

	// I2: every port has <=1 incoming and <=1 outgoing edge.
	g.IterVertices(func(vtx *core.Vertex) core.WalkDirective {
		if vtx.Kind() == core.KindPort {
			require.LessOrEqual(t, len(vtx.Incoming()), 1)
			require.LessOrEqual(t, len(vtx.Outgoing()), 1)
		}
		return core.WalkContinue
	})

	// I4: no path contains more than two expander vertices (this fixture
	// has exactly two).
	expanders := 0
	g.IterVertices(func(vtx *core.Vertex) core.WalkDirective {
		if vtx.Kind() == core.KindExpander {
			expanders++
		}
		return core.WalkContinue
	})
	require.Equal(t, 2, expanders)
}

func TestStitch_AmbiguousTopologyAborts(t *testing.T) {
	g := core.NewGraph()
	sides := core.NewSideTable()

	const iniAddr = 0x1
	const expAddr = 0x2

	ini, err := g.NewVertex(core.KindInitiator, iniAddr, nil)
	require.NoError(t, err)
	hPort, err := g.NewVertex(core.KindPort, iniAddr, &core.PhyRange{StartPhy: 0, EndPhy: 0})
	require.NoError(t, err)
	sides.Set(hPort, &core.PortSide{AttachedWWN: expAddr, Origin: core.OriginHBA})
	require.NoError(t, g.AddEdge(ini, hPort))

	// Two candidate expander ports both claim to attach to this HBA port.
	c1, err := g.NewVertex(core.KindPort, expAddr, &core.PhyRange{StartPhy: 0, EndPhy: 3})
	require.NoError(t, err)
	sides.Set(c1, &core.PortSide{AttachedWWN: iniAddr, Origin: core.OriginExpander})
	c2, err := g.NewVertex(core.KindPort, expAddr, &core.PhyRange{StartPhy: 4, EndPhy: 7})
	require.NoError(t, err)
	sides.Set(c2, &core.PortSide{AttachedWWN: iniAddr, Origin: core.OriginExpander})

	err = stitch.Stitch(g, sides)
	require.ErrorIs(t, err, stitch.ErrAmbiguousTopology)
}

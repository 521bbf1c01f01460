package expander_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joyent/sastopo/core"
	"github.com/joyent/sastopo/expander"
)

const expdAddr = 0x500304801861347f

func wideAttachedPhy(attWWN uint64) expander.DiscoverResp {
	return expander.DiscoverResp{
		AttachedDeviceType: expander.AttachedExpander,
		SASAddress:         expdAddr,
		AttachedSASAddress: attWWN,
	}
}

func TestDiscover_WidePortCoalescing_S5(t *testing.T) {
	g := core.NewGraph()
	sides := core.NewSideTable()

	a := uint64(0xA)
	b := uint64(0xB)
	c := uint64(0xC)

	phys := []expander.DiscoverResp{
		wideAttachedPhy(a),
		wideAttachedPhy(a),
		wideAttachedPhy(a),
		wideAttachedPhy(a),
		wideAttachedPhy(b),
		wideAttachedPhy(b),
		wideAttachedPhy(c),
	}
	for i := range phys {
		phys[i].PhyIdentifier = uint32(i)
	}

	tr := &expander.FakeTransport{
		DevfsPath: "/devices/smp@0:smp",
		Report:    expander.ReportGeneralResp{NumPhys: 7, SASAddress: expdAddr},
		Phys:      phys,
	}

	require.NoError(t, expander.Discover(g, sides, tr, "/devices/smp@0:smp"))

	var ranges []core.PhyRange
	g.IterVertices(func(v *core.Vertex) core.WalkDirective {
		if v.Kind() == core.KindPort && v.SASAddress() == expdAddr {
			r, _ := v.PhyRange()
			ranges = append(ranges, r)
		}
		return core.WalkContinue
	})

	require.Equal(t, []core.PhyRange{
		{StartPhy: 0, EndPhy: 3},
		{StartPhy: 4, EndPhy: 5},
		{StartPhy: 6, EndPhy: 6},
	}, ranges)
}

func TestDiscover_VacantPhySkipped(t *testing.T) {
	g := core.NewGraph()
	sides := core.NewSideTable()

	tr := &expander.FakeTransport{
		DevfsPath: "/devices/smp@0:smp",
		Report:    expander.ReportGeneralResp{NumPhys: 2, SASAddress: expdAddr},
		Phys: []expander.DiscoverResp{
			{Vacant: true},
			wideAttachedPhy(0xA),
		},
	}

	require.NoError(t, expander.Discover(g, sides, tr, "/devices/smp@0:smp"))

	count := 0
	g.IterVertices(func(v *core.Vertex) core.WalkDirective {
		if v.Kind() == core.KindPort {
			count++
		}
		return core.WalkContinue
	})
	require.Equal(t, 1, count, "a vacant phy must never produce a vertex")
}

func TestDiscover_EndDeviceFlushesPendingWidePort(t *testing.T) {
	g := core.NewGraph()
	sides := core.NewSideTable()

	end := expander.DiscoverResp{
		AttachedDeviceType: expander.AttachedSASSATA,
		AttachedSSPTarget:  true,
		ConnectorType:      0x20,
		SASAddress:         expdAddr,
		PhyIdentifier:      2,
		AttachedSASAddress: 0x5000cca2531b1025,
		AttachedPhy:        0,
	}

	tr := &expander.FakeTransport{
		DevfsPath: "/devices/smp@0:smp",
		Report:    expander.ReportGeneralResp{NumPhys: 3, SASAddress: expdAddr},
		Phys: []expander.DiscoverResp{
			wideAttachedPhy(0xA),
			wideAttachedPhy(0xA),
			end,
		},
	}
	tr.Phys[0].PhyIdentifier = 0
	tr.Phys[1].PhyIdentifier = 1

	require.NoError(t, expander.Discover(g, sides, tr, "/devices/smp@0:smp"))

	ports := g.FindPorts(expdAddr)
	require.Len(t, ports, 2, "the coalesced wide port and the end-device's expander-side port")
	var wide *core.Vertex
	for _, p := range ports {
		if r, _ := p.PhyRange(); r.Wide() {
			wide = p
		}
	}
	require.NotNil(t, wide)
	r, _ := wide.PhyRange()
	require.Equal(t, core.PhyRange{StartPhy: 0, EndPhy: 1}, r)

	target, ok := g.Find(core.KindTarget, 0x5000cca2531b1025)
	require.True(t, ok)
	require.NotNil(t, target)
}

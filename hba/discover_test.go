package hba_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joyent/sastopo/core"
	"github.com/joyent/sastopo/hba"
)

func TestDiscover_SinglePortSASDevice(t *testing.T) {
	g := core.NewGraph()
	sides := core.NewSideTable()

	fake := &hba.Fake{
		Adapters: []hba.FakeAdapter{
			{
				Name: "mpt_sas0",
				Attrs: hba.AdapterAttrs{
					Manufacturer: "LSI",
					Model:        "SAS3008",
					Serial:       "SN001",
				},
				Ports: []hba.FakePort{
					{
						Attrs: hba.PortAttrs{
							LocalSASAddress:         0x5003048023567a00,
							AttachedSASAddress:      0x5000cca2531b1025,
							NumPhys:                 1,
							PortType:                hba.PortTypeSASDevice,
							NumberOfDiscoveredPorts: 1,
						},
						Phys: []uint32{0},
					},
				},
			},
		},
	}

	require.NoError(t, hba.Discover(g, sides, fake))

	ini, ok := g.Find(core.KindInitiator, 0x5003048023567a00)
	require.True(t, ok)
	require.Equal(t, "LSI", ini.StringAttr(core.AttrInitiatorManufacturer))

	ports := g.FindPorts(0x5003048023567a00)
	require.Len(t, ports, 1)
	port := ports[0]
	require.Equal(t, []*core.Vertex{port}, ini.Outgoing())

	side, ok := sides.Get(port)
	require.True(t, ok)
	require.Equal(t, uint64(0x5000cca2531b1025), side.AttachedWWN)
	require.Equal(t, core.OriginHBA, side.Origin)

	devPorts := g.FindPorts(0x5000cca2531b1025)
	require.Len(t, devPorts, 1)
	devPort := devPorts[0]
	require.Equal(t, []*core.Vertex{devPort}, port.Outgoing())

	dev, ok := g.Find(core.KindTarget, 0x5000cca2531b1025)
	require.True(t, ok)
	require.Equal(t, []*core.Vertex{dev}, devPort.Outgoing())
}

func TestDiscover_MultipleDiscoveredPortsSkipsSynthesis(t *testing.T) {
	g := core.NewGraph()
	sides := core.NewSideTable()

	fake := &hba.Fake{
		Adapters: []hba.FakeAdapter{
			{
				Name: "mpt_sas0",
				Ports: []hba.FakePort{
					{
						Attrs: hba.PortAttrs{
							LocalSASAddress:         0x1,
							AttachedSASAddress:      0x2,
							NumPhys:                 1,
							PortType:                hba.PortTypeSASDevice,
							NumberOfDiscoveredPorts: 2,
						},
						Phys: []uint32{0},
					},
				},
			},
		},
	}

	require.NoError(t, hba.Discover(g, sides, fake))

	_, ok := g.Find(core.KindTarget, 0x2)
	require.False(t, ok, "an ambiguous attachment is left for SMP discovery, not synthesized")
}

func TestDiscover_PhyRangeFromFirstAndLastPhy(t *testing.T) {
	g := core.NewGraph()
	sides := core.NewSideTable()

	fake := &hba.Fake{
		Adapters: []hba.FakeAdapter{
			{
				Name: "mpt_sas0",
				Ports: []hba.FakePort{
					{
						Attrs: hba.PortAttrs{
							LocalSASAddress: 0x500304801861347f,
							NumPhys:         4,
						},
						Phys: []uint32{0, 1, 2, 3},
					},
				},
			},
		},
	}

	require.NoError(t, hba.Discover(g, sides, fake))

	ports := g.FindPorts(0x500304801861347f)
	require.Len(t, ports, 1)
	port := ports[0]
	r, hasRange := port.PhyRange()
	require.True(t, hasRange)
	require.Equal(t, core.PhyRange{StartPhy: 0, EndPhy: 3}, r)
	require.True(t, r.Wide())
}

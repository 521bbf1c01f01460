package topo

import (
	"fmt"

	"github.com/joyent/sastopo/core"
)

// FakeEnumerate builds the hard-coded two-expander, three-target fixture
// topology (spec §8.S1), the fixture this package's original source used
// to exercise the digraph machinery before real SMHBAAPI/SMP discovery
// existed. Every vertex and edge is wired directly rather than produced
// by hba.Discover/expander.Discover/stitch.Stitch, matching the fixture's
// original role as a hand-built acceptance topology rather than a
// discovery trace.
func FakeEnumerate() (*core.Graph, *core.SideTable, error) {
	const (
		iniAddr  = 0x5003048023567a00
		exp1Addr = 0x500304801861347f
		tgt1Addr = 0x5000cca2531b1025
		tgt2Addr = 0x5000cca2531a41b9
		tgt3Addr = 0xDEADBEED
		exp2Addr = 0xDEADBEEF
	)

	g := core.NewGraph()
	sides := core.NewSideTable()

	ini, err := g.NewVertex(core.KindInitiator, iniAddr, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("fixture: initiator: %w", err)
	}
	if err := setStrings(ini, map[string]string{
		core.AttrInitiatorManufacturer: "LSI",
		core.AttrInitiatorModel:        "LSI3008-IT",
		core.AttrInitiatorSerial:       "LSI23098420374",
	}); err != nil {
		return nil, nil, err
	}

	iniPort, err := newPort(g, sides, iniAddr, 0, 7, iniAddr, exp1Addr, core.OriginHBA)
	if err != nil {
		return nil, nil, err
	}
	if err := g.AddEdge(ini, iniPort); err != nil {
		return nil, nil, err
	}

	exp1In, err := newPort(g, sides, exp1Addr, 0, 7, exp1Addr, iniAddr, core.OriginExpander)
	if err != nil {
		return nil, nil, err
	}
	if err := g.AddEdge(iniPort, exp1In); err != nil {
		return nil, nil, err
	}

	exp1, err := g.NewVertex(core.KindExpander, exp1Addr, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("fixture: expander 1: %w", err)
	}
	if err := exp1.SetAttr(core.AttrExpanderDevfsName, core.StringAttr("/dev/smp/expd0")); err != nil {
		return nil, nil, err
	}
	if err := g.AddEdge(exp1In, exp1); err != nil {
		return nil, nil, err
	}

	exp1Out1, err := newPort(g, sides, exp1Addr, 8, 8, exp1Addr, tgt2Addr, core.OriginExpander)
	if err != nil {
		return nil, nil, err
	}
	if err := g.AddEdge(exp1, exp1Out1); err != nil {
		return nil, nil, err
	}
	if err := wireTarget(g, exp1Out1, tgt2Addr, exp1Addr, "HGST", "HUH721212AL4200"); err != nil {
		return nil, nil, err
	}

	exp1Out2, err := newPort(g, sides, exp1Addr, 9, 9, exp1Addr, tgt1Addr, core.OriginExpander)
	if err != nil {
		return nil, nil, err
	}
	if err := g.AddEdge(exp1, exp1Out2); err != nil {
		return nil, nil, err
	}
	if err := wireTarget(g, exp1Out2, tgt1Addr, exp1Addr, "HGST", "HUH721212AL4200"); err != nil {
		return nil, nil, err
	}

	exp1Out3, err := newPort(g, sides, exp1Addr, 10, 17, exp1Addr, exp2Addr, core.OriginExpander)
	if err != nil {
		return nil, nil, err
	}
	if err := g.AddEdge(exp1, exp1Out3); err != nil {
		return nil, nil, err
	}

	exp2In, err := newPort(g, sides, exp2Addr, 0, 7, exp2Addr, exp1Addr, core.OriginExpander)
	if err != nil {
		return nil, nil, err
	}
	if err := g.AddEdge(exp1Out3, exp2In); err != nil {
		return nil, nil, err
	}

	exp2, err := g.NewVertex(core.KindExpander, exp2Addr, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("fixture: expander 2: %w", err)
	}
	if err := exp2.SetAttr(core.AttrExpanderDevfsName, core.StringAttr("/dev/smp/expd1")); err != nil {
		return nil, nil, err
	}
	if err := g.AddEdge(exp2In, exp2); err != nil {
		return nil, nil, err
	}

	exp2Out1, err := newPort(g, sides, exp2Addr, 8, 8, exp2Addr, tgt3Addr, core.OriginExpander)
	if err != nil {
		return nil, nil, err
	}
	if err := g.AddEdge(exp2, exp2Out1); err != nil {
		return nil, nil, err
	}
	if err := wireTarget(g, exp2Out1, tgt3Addr, exp2Addr, "HGST", "HUH721212AL4200"); err != nil {
		return nil, nil, err
	}

	return g, sides, nil
}

func setStrings(v *core.Vertex, attrs map[string]string) error {
	for key, val := range attrs {
		if err := v.SetAttr(key, core.StringAttr(val)); err != nil {
			return err
		}
	}
	return nil
}

// newPort creates a port vertex keyed on the owning device's sas address
// and records its (decorative, spec §3) local/attach address attributes
// plus Origin-tagged side-data for attachedWWN.
func newPort(g *core.Graph, sides *core.SideTable, sasAddress uint64, startPhy, endPhy uint32, localAddr, attachAddr uint64, origin core.Origin) (*core.Vertex, error) {
	p, err := g.NewVertex(core.KindPort, sasAddress, &core.PhyRange{StartPhy: startPhy, EndPhy: endPhy})
	if err != nil {
		return nil, fmt.Errorf("fixture: port %016x[%d-%d]: %w", sasAddress, startPhy, endPhy, err)
	}
	if err := p.SetAttr(core.AttrPortLocalAddr, core.Uint64Attr(localAddr)); err != nil {
		return nil, err
	}
	if err := p.SetAttr(core.AttrPortAttachAddr, core.Uint64Attr(attachAddr)); err != nil {
		return nil, err
	}
	sides.Set(p, &core.PortSide{AttachedWWN: attachAddr, Origin: origin})
	return p, nil
}

// wireTarget creates the internal device port (PHY 0) plus the target
// vertex itself downstream of parentPort, and draws both edges.
func wireTarget(g *core.Graph, parentPort *core.Vertex, tgtAddr, parentAddr uint64, manuf, model string) error {
	devPort, err := g.NewVertex(core.KindPort, tgtAddr, &core.PhyRange{StartPhy: 0, EndPhy: 0})
	if err != nil {
		return fmt.Errorf("fixture: device port %016x: %w", tgtAddr, err)
	}
	if err := devPort.SetAttr(core.AttrPortLocalAddr, core.Uint64Attr(tgtAddr)); err != nil {
		return err
	}
	if err := devPort.SetAttr(core.AttrPortAttachAddr, core.Uint64Attr(parentAddr)); err != nil {
		return err
	}
	if err := g.AddEdge(parentPort, devPort); err != nil {
		return err
	}

	tgt, err := g.NewVertex(core.KindTarget, tgtAddr, nil)
	if err != nil {
		return fmt.Errorf("fixture: target %016x: %w", tgtAddr, err)
	}
	if err := setStrings(tgt, map[string]string{
		core.AttrTargetManufacturer: manuf,
		core.AttrTargetModel:        model,
	}); err != nil {
		return err
	}
	return g.AddEdge(devPort, tgt)
}

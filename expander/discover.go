package expander

import (
	"fmt"

	"github.com/joyent/sastopo/core"
)

// widePortScan tracks an in-progress wide-port group while scanning an
// expander's PHYs in increasing identifier order. commit flushes the
// pending group, if any, as a port vertex on the expander.
type widePortScan struct {
	active bool
	attWWN uint64
	start  int
	end    int
}

// feed extends the active group if attWWN matches, else commits the
// previous group (if any) and starts a new one at phy.
func (s *widePortScan) feed(g *core.Graph, sides *core.SideTable, expdAddr uint64, phy int, attWWN uint64) error {
	if s.active && attWWN != s.attWWN {
		if err := s.commit(g, sides, expdAddr); err != nil {
			return err
		}
	}
	if !s.active {
		s.active = true
		s.attWWN = attWWN
		s.start = phy
		s.end = phy
		return nil
	}
	s.end = phy
	return nil
}

func (s *widePortScan) commit(g *core.Graph, sides *core.SideTable, expdAddr uint64) error {
	if !s.active {
		return nil
	}
	s.active = false
	r := core.PhyRange{StartPhy: uint32(s.start), EndPhy: uint32(s.end)}
	port, err := g.NewVertex(core.KindPort, expdAddr, &r)
	if err != nil {
		return fmt.Errorf("creating expander port vertex: %w", err)
	}
	sides.Set(port, &core.PortSide{AttachedWWN: s.attWWN, Origin: core.OriginExpander})
	return nil
}

// isEndDevice reports whether a Discover response describes a directly
// attached SAS/SATA end device behind an expander backplane receptacle,
// per sas.c's SMP_DEV_SAS_SATA + connector 0x20 + not-SMP-target test.
func isEndDevice(r DiscoverResp) bool {
	return r.AttachedDeviceType == AttachedSASSATA &&
		(r.AttachedSSPTarget || r.AttachedSTPTarget) &&
		r.ConnectorType == 0x20 &&
		!r.AttachedSMPTarget
}

// isComplicated reports whether a Discover response describes an
// attachment that may participate in a wide port: another expander, or
// any attached initiator role.
func isComplicated(r DiscoverResp) bool {
	return r.AttachedDeviceType == AttachedExpander ||
		r.AttachedSSPInitiator || r.AttachedSTPInitiator || r.AttachedSMPInitiator
}

// Discover implements spec §4.4 for one SMP device node: Report General
// to identify the expander, then Discover on every PHY, coalescing
// consecutive same-peer PHYs into wide ports and emitting end-device
// trios directly.
func Discover(g *core.Graph, sides *core.SideTable, t Transport, devfsPath string) error {
	tgt, err := t.Open(devfsPath)
	if err != nil {
		return fmt.Errorf("%w: open(%q): %v", ErrIO, devfsPath, err)
	}
	defer tgt.Close()

	rg, err := tgt.ReportGeneral()
	if err != nil {
		return fmt.Errorf("%w: report general(%q): %v", ErrIO, devfsPath, err)
	}

	expd, err := g.NewVertex(core.KindExpander, rg.SASAddress, nil)
	if err != nil {
		return fmt.Errorf("creating expander vertex: %w", err)
	}
	sides.Set(expd, &core.PortSide{Origin: core.OriginExpander})
	if err := expd.SetAttr(core.AttrExpanderDevfsName, core.StringAttr(devfsPath)); err != nil {
		return err
	}

	var scan widePortScan

	for i := 0; i < rg.NumPhys; i++ {
		resp, err := tgt.Discover(i)
		if err != nil {
			return fmt.Errorf("%w: discover(%q, phy=%d): %v", ErrIO, devfsPath, i, err)
		}
		if resp.Vacant {
			continue
		}

		if isEndDevice(resp) {
			if err := scan.commit(g, sides, rg.SASAddress); err != nil {
				return err
			}
			if err := emitEndDevice(g, expd, resp); err != nil {
				return err
			}
			continue
		}

		if isComplicated(resp) {
			if err := scan.feed(g, sides, rg.SASAddress, i, resp.AttachedSASAddress); err != nil {
				return err
			}
		}
	}

	// The last wide-port group is never followed by a boundary event, so
	// it must be committed explicitly once the scan loop ends.
	if err := scan.commit(g, sides, rg.SASAddress); err != nil {
		return err
	}

	return nil
}

func emitEndDevice(g *core.Graph, expd *core.Vertex, resp DiscoverResp) error {
	exPortRange := core.PhyRange{StartPhy: resp.PhyIdentifier, EndPhy: resp.PhyIdentifier}
	exPort, err := g.NewVertex(core.KindPort, resp.SASAddress, &exPortRange)
	if err != nil {
		return fmt.Errorf("creating expander-side end-device port vertex: %w", err)
	}
	if err := g.AddEdge(expd, exPort); err != nil {
		return err
	}

	devRange := core.PhyRange{StartPhy: resp.AttachedPhy, EndPhy: resp.AttachedPhy}
	devPort, err := g.NewVertex(core.KindPort, resp.AttachedSASAddress, &devRange)
	if err != nil {
		return fmt.Errorf("creating device port vertex: %w", err)
	}
	if err := g.AddEdge(exPort, devPort); err != nil {
		return err
	}

	target, err := g.NewVertex(core.KindTarget, resp.AttachedSASAddress, nil)
	if err != nil {
		return fmt.Errorf("creating target vertex: %w", err)
	}
	return g.AddEdge(devPort, target)
}

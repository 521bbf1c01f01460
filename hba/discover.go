package hba

import (
	"fmt"

	"github.com/joyent/sastopo/core"
)

// Discover implements spec §4.3: for every adapter reported by src, create
// one initiator vertex keyed on the local SAS address of its first port,
// a port vertex per adapter port, side-data recording each port's
// attached WWN, and (for a lone SAS_DEVICE attachment) the synthesized
// device port/target pair.
func Discover(g *core.Graph, sides *core.SideTable, src Source) error {
	if err := src.Load(); err != nil {
		return fmt.Errorf("%w: load: %v", ErrIO, err)
	}
	defer src.Unload()

	numAdapters, err := src.NumAdapters()
	if err != nil {
		return fmt.Errorf("%w: num_adapters: %v", ErrIO, err)
	}

	for i := 0; i < numAdapters; i++ {
		if err := discoverAdapter(g, sides, src, i); err != nil {
			return err
		}
	}
	return nil
}

func discoverAdapter(g *core.Graph, sides *core.SideTable, src Source, i int) error {
	name, err := src.AdapterName(i)
	if err != nil {
		return fmt.Errorf("%w: adapter_name(%d): %v", ErrIO, i, err)
	}
	handle, err := src.Open(name)
	if err != nil {
		return fmt.Errorf("%w: open(%q): %v", ErrIO, name, err)
	}

	adapterAttrs, err := src.AdapterAttrs(handle)
	if err != nil {
		return fmt.Errorf("%w: adapter_attrs(%q): %v", ErrIO, name, err)
	}
	numPorts, err := src.NumPorts(handle)
	if err != nil {
		return fmt.Errorf("%w: num_ports(%q): %v", ErrIO, name, err)
	}

	var initiator *core.Vertex

	for j := 0; j < numPorts; j++ {
		port, err := src.PortAttrs(handle, j)
		if err != nil {
			return fmt.Errorf("%w: port_attrs(%q, %d): %v", ErrIO, name, j, err)
		}

		phyRange, err := scanPortPhys(src, handle, j, port.NumPhys)
		if err != nil {
			return err
		}

		portVtx, err := g.NewVertex(core.KindPort, port.LocalSASAddress, &phyRange)
		if err != nil {
			return fmt.Errorf("creating hba port vertex: %w", err)
		}
		sides.Set(portVtx, &core.PortSide{
			AttachedWWN: port.AttachedSASAddress,
			Origin:      core.OriginHBA,
		})

		if initiator == nil {
			initiator, err = g.NewVertex(core.KindInitiator, port.LocalSASAddress, nil)
			if err != nil {
				return fmt.Errorf("creating initiator vertex: %w", err)
			}
			if err := initiator.SetAttr(core.AttrInitiatorManufacturer, core.StringAttr(adapterAttrs.Manufacturer)); err != nil {
				return err
			}
			if err := initiator.SetAttr(core.AttrInitiatorModel, core.StringAttr(adapterAttrs.Model)); err != nil {
				return err
			}
			if err := initiator.SetAttr(core.AttrInitiatorSerial, core.StringAttr(adapterAttrs.Serial)); err != nil {
				return err
			}
		}

		if err := g.AddEdge(initiator, portVtx); err != nil {
			return err
		}

		if port.PortType == PortTypeSASDevice && port.NumberOfDiscoveredPorts == 1 {
			devRange := core.PhyRange{StartPhy: 0, EndPhy: 0}
			devPort, err := g.NewVertex(core.KindPort, port.AttachedSASAddress, &devRange)
			if err != nil {
				return fmt.Errorf("creating synthesized device port vertex: %w", err)
			}
			dev, err := g.NewVertex(core.KindTarget, port.AttachedSASAddress, nil)
			if err != nil {
				return fmt.Errorf("creating synthesized target vertex: %w", err)
			}
			if err := g.AddEdge(portVtx, devPort); err != nil {
				return err
			}
			if err := g.AddEdge(devPort, dev); err != nil {
				return err
			}
		}
	}

	return nil
}

// scanPortPhys computes a port's PHY range from the first and last PHY
// identifier seen in discovery order (spec §4.3 step 2).
func scanPortPhys(src Source, handle AdapterHandle, j, numPhys int) (core.PhyRange, error) {
	var r core.PhyRange
	for k := 0; k < numPhys; k++ {
		phy, err := src.PhyAttrs(handle, j, k)
		if err != nil {
			return core.PhyRange{}, fmt.Errorf("%w: phy_attrs(%d,%d): %v", ErrIO, j, k, err)
		}
		if k == 0 {
			r.StartPhy = phy.PhyIdentifier
		}
		r.EndPhy = phy.PhyIdentifier
	}
	return r, nil
}

// Package topo orchestrates the discovery and stitch passes into the
// enumerate() entry point the original sas scheme plugin exposed, and
// provides its FMRI-facing methods (nvl2str, str2nvl, fmri, sas2dev,
// sas2hc).
package topo

import (
	"fmt"
	"time"

	"github.com/joyent/sastopo/config"
	"github.com/joyent/sastopo/core"
	"github.com/joyent/sastopo/expander"
	"github.com/joyent/sastopo/fmri"
	"github.com/joyent/sastopo/hba"
	"github.com/joyent/sastopo/metrics"
	"github.com/joyent/sastopo/stitch"
	"github.com/joyent/sastopo/telemetry"
)

// Config collects Enumerate's collaborators and controls.
type Config struct {
	// HBA is the SMHBAAPI-shaped collaborator C3 drives. Required unless
	// Enum.SkipEnum or Enum.UseFake is set.
	HBA hba.Source

	// ExpanderTransport opens SMP sessions for C4. Required unless
	// Enum.SkipEnum or Enum.UseFake is set.
	ExpanderTransport expander.Transport

	// ListSMPNodes enumerates the devfs paths of expander SMP nodes to
	// discover. Defaults to a stub returning (nil, nil): there is no
	// /devices tree off the original illumos host, so callers inject
	// their own walker.
	ListSMPNodes func() ([]string, error)

	Enum    config.EnumConfig
	Logger  *telemetry.Logger
	Metrics *metrics.Collectors
}

func (c Config) listSMPNodes() ([]string, error) {
	if c.ListSMPNodes == nil {
		return nil, nil
	}
	return c.ListSMPNodes()
}

func (c Config) logger() *telemetry.Logger {
	if c.Logger == nil {
		return telemetry.Nop()
	}
	return c.Logger
}

// Enumerate builds the fabric graph, implementing spec §4.1/§4.6. It
// honors Enum.SkipEnum (returns an empty graph) and Enum.UseFake (returns
// the hard-coded fixture, see FakeEnumerate) before driving real
// discovery. Any error aborts the call; no partial graph is returned.
func Enumerate(cfg Config) (*core.Graph, *core.SideTable, error) {
	log := cfg.logger()
	start := time.Now()

	g, sides, err := enumerate(cfg, log)

	if cfg.Metrics != nil {
		cfg.Metrics.EnumerationDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			cfg.Metrics.EnumerationErrors.Inc()
		} else {
			cfg.Metrics.EnumerationVertices.Set(float64(g.VertexCount()))
			cfg.Metrics.EnumerationEdges.Set(float64(g.EdgeCount()))
		}
	}
	return g, sides, err
}

func enumerate(cfg Config, log *telemetry.Logger) (*core.Graph, *core.SideTable, error) {
	if cfg.Enum.SkipEnum {
		log.Info("enumeration skipped", "reason", "TOPO_SASNOENUM")
		return core.NewGraph(), core.NewSideTable(), nil
	}

	if cfg.Enum.UseFake {
		log.Info("enumeration using fixture", "reason", "SAS_FAKE_ENUM")
		return FakeEnumerate()
	}

	g := core.NewGraph()
	sides := core.NewSideTable()

	if cfg.Enum.Debug {
		log.Debug("hba discovery starting")
	}
	if err := hba.Discover(g, sides, cfg.HBA); err != nil {
		log.Error("hba discovery failed", "error", err.Error())
		return nil, nil, fmt.Errorf("hba discovery: %w", err)
	}

	devfsPaths, err := cfg.listSMPNodes()
	if err != nil {
		log.Error("listing smp nodes failed", "error", err.Error())
		return nil, nil, fmt.Errorf("listing smp nodes: %w", err)
	}

	for _, devfsPath := range devfsPaths {
		if cfg.Enum.Debug {
			log.Debug("expander discovery starting", "devfs", devfsPath)
		}
		if err := expander.Discover(g, sides, cfg.ExpanderTransport, devfsPath); err != nil {
			log.Error("expander discovery failed", "devfs", devfsPath, "error", err.Error())
			return nil, nil, fmt.Errorf("expander discovery(%q): %w", devfsPath, err)
		}
	}

	if cfg.Enum.Debug {
		log.Debug("stitch starting")
	}
	if err := stitch.Stitch(g, sides); err != nil {
		log.Error("stitch failed", "error", err.Error())
		return nil, nil, fmt.Errorf("stitch: %w", err)
	}

	log.Info("enumeration complete", "vertices", g.VertexCount())
	return g, sides, nil
}

// NVL2STR renders a structured FMRI to its textual form.
func NVL2STR(n fmri.NVL) (string, error) { return fmri.Encode(n) }

// STR2NVL parses a textual FMRI into its structured form.
func STR2NVL(s string) (fmri.NVL, error) { return fmri.Decode(s) }

// FMRI constructs a single-element pathnode FMRI for a newly created
// vertex, the way the original plugin's topo_mod_sasfmri callback does.
func FMRI(name fmri.Name, inst uint64, auth fmri.Authority) (fmri.NVL, error) {
	return fmri.Construct(name, inst, auth)
}

// SAS2DEV is preserved as an unimplemented stub (Open Question 4): the
// original plugin never wired a device-tree ("dev") scheme FMRI for sas
// nodes, and this reimplementation does not guess at one.
func SAS2DEV(fmri.NVL) (fmri.NVL, error) {
	return fmri.NVL{}, ErrUnsupported
}

// SAS2HC is preserved as an unimplemented stub for the same reason as
// SAS2DEV, for the "hc" (hardware-component) scheme.
func SAS2HC(fmri.NVL) (fmri.NVL, error) {
	return fmri.NVL{}, ErrUnsupported
}

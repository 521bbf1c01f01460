// Package config holds the enumerator's environment-derived switches and
// the CLI's YAML-file settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joyent/sastopo/telemetry"
)

// EnumConfig is the set of environment controls that gate enumeration
// behavior, modeled the way sas.c reads TOPOSASDEBUG/TOPO_SASNOENUM/
// SAS_FAKE_ENUM at module load.
type EnumConfig struct {
	// Debug enables structured debug logging of each discovery/stitch
	// step, replacing TOPOSASDEBUG.
	Debug bool

	// SkipEnum short-circuits Enumerate to an empty graph, replacing
	// TOPO_SASNOENUM.
	SkipEnum bool

	// UseFake makes Enumerate return the hard-coded fixture topology
	// instead of driving real hba.Source/expander.Transport collaborators,
	// replacing SAS_FAKE_ENUM.
	UseFake bool
}

// FromEnviron reads EnumConfig from the process environment. Any
// non-empty value for a variable is treated as "set"; absence or an
// empty string is "unset".
func FromEnviron() EnumConfig {
	return EnumConfig{
		Debug:    os.Getenv("TOPOSASDEBUG") != "",
		SkipEnum: os.Getenv("TOPO_SASNOENUM") != "",
		UseFake:  os.Getenv("SAS_FAKE_ENUM") != "",
	}
}

// CLIConfig is the cmd/sastopo command's file-backed configuration: the
// knobs that have no environment-variable form in the original plugin.
type CLIConfig struct {
	LogLevel  telemetry.Level  `yaml:"log_level"`
	LogFormat telemetry.Format `yaml:"log_format"`
	// MetricsAddr is the listen address for the /metrics endpoint; empty
	// disables it.
	MetricsAddr string `yaml:"metrics_addr"`
	// SMPDevices lists devfs paths to probe when no real device tree is
	// available (most environments off the original illumos host).
	SMPDevices []string `yaml:"smp_devices"`
}

// DefaultCLIConfig returns the CLI's baseline settings.
func DefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		LogLevel:  telemetry.LevelInfo,
		LogFormat: telemetry.FormatText,
	}
}

// Load reads a YAML file into a CLIConfig seeded with defaults. A missing
// file is not an error: Load returns the defaults unchanged.
func Load(path string) (*CLIConfig, error) {
	cfg := DefaultCLIConfig()

	if path == "" {
		path = "sastopo.yaml"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	return cfg, nil
}

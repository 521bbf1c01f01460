package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/joyent/sastopo/config"
	"github.com/joyent/sastopo/core"
	"github.com/joyent/sastopo/metrics"
	"github.com/joyent/sastopo/telemetry"
	"github.com/joyent/sastopo/topo"
)

var enumerateCmd = &cobra.Command{
	Use:   "enumerate",
	Args:  cobra.NoArgs,
	Short: "Enumerate the SAS fabric and print every vertex's FMRI",
	RunE:  runEnumerate,
}

func init() {
	enumerateCmd.Flags().Bool("fake", false, "use the hard-coded fixture topology instead of real discovery")
}

func loadCLIConfig() (*config.CLIConfig, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = telemetry.LevelDebug
	}
	return cfg, nil
}

func runEnumerate(cmd *cobra.Command, args []string) error {
	cliCfg, err := loadCLIConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	useFake, _ := cmd.Flags().GetBool("fake")
	enumCfg := config.FromEnviron()
	if useFake {
		enumCfg.UseFake = true
	}
	if !enumCfg.UseFake && !enumCfg.SkipEnum {
		return fmt.Errorf("no hba.Source/expander.Transport wired into this build: pass --fake, " +
			"set SAS_FAKE_ENUM, or build against a host-specific SMHBAAPI/SMP binding")
	}

	logger := telemetry.New(telemetry.LoggerConfig{
		Level:  cliCfg.LogLevel,
		Format: cliCfg.LogFormat,
	})
	collectors := metrics.NewCollectors()

	if cliCfg.MetricsAddr != "" {
		go func() {
			_ = http.ListenAndServe(cliCfg.MetricsAddr, collectors.Handler())
		}()
	}

	g, _, err := topo.Enumerate(topo.Config{
		Enum:    enumCfg,
		Logger:  logger,
		Metrics: collectors,
		ListSMPNodes: func() ([]string, error) {
			return cliCfg.SMPDevices, nil
		},
	})
	if err != nil {
		return fmt.Errorf("enumerate: %w", err)
	}

	g.IterVertices(func(v *core.Vertex) core.WalkDirective {
		fmt.Println(v.StringAttr(core.AttrResource))
		return core.WalkContinue
	})
	return nil
}

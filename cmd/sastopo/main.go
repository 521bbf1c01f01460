// Command sastopo enumerates a SAS fabric topology and renders or encodes
// its FMRIs.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "sastopo",
	Short:   "SAS fabric topology enumerator",
	Long:    `sastopo discovers a SAS fabric's initiators, ports, expanders, and targets and names every vertex with a sas-scheme FMRI.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sastopo.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(enumerateCmd)
	rootCmd.AddCommand(fmriCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

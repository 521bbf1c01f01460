package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joyent/sastopo/fmri"
)

var fmriCmd = &cobra.Command{
	Use:   "fmri",
	Short: "Encode, decode, or construct a sas-scheme FMRI",
}

var fmriEncodeCmd = &cobra.Command{
	Use:   "encode",
	Args:  cobra.ExactArgs(1),
	Short: "Render a structured FMRI (pathnode only, given as a port id) to its textual form",
	RunE:  runFMRIEncode,
}

var fmriDecodeCmd = &cobra.Command{
	Use:   "decode",
	Args:  cobra.ExactArgs(1),
	Short: "Parse a textual FMRI and print its structured fields",
	RunE:  runFMRIDecode,
}

var fmriConstructCmd = &cobra.Command{
	Use:   "construct",
	Args:  cobra.ExactArgs(2),
	Short: "Build a single-element pathnode FMRI from a vertex kind and hex id",
	RunE:  runFMRIConstruct,
}

func init() {
	fmriCmd.AddCommand(fmriEncodeCmd)
	fmriCmd.AddCommand(fmriDecodeCmd)
	fmriCmd.AddCommand(fmriConstructCmd)
}

func runFMRIEncode(cmd *cobra.Command, args []string) error {
	id, err := parseHexArg(args[0])
	if err != nil {
		return err
	}
	s, err := fmri.Encode(fmri.NVL{
		Scheme:    fmri.Scheme,
		Version:   fmri.Version,
		Authority: fmri.Authority{Type: fmri.TypePathnode},
		SASPath:   []fmri.PathComponent{{Name: fmri.NamePort, ID: id}},
	})
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

func runFMRIDecode(cmd *cobra.Command, args []string) error {
	n, err := fmri.Decode(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("authority: type=%s phy-range=%v [%d-%d]\n", n.Authority.Type, n.Authority.HasPhyRange,
		n.Authority.StartPhy, n.Authority.EndPhy)
	for _, pc := range n.SASPath {
		fmt.Printf("  %s=%016x\n", pc.Name, pc.ID)
	}
	return nil
}

func runFMRIConstruct(cmd *cobra.Command, args []string) error {
	id, err := parseHexArg(args[1])
	if err != nil {
		return err
	}
	n, err := fmri.Construct(fmri.Name(args[0]), id, fmri.Authority{})
	if err != nil {
		return err
	}
	s, err := fmri.Encode(n)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

func parseHexArg(s string) (uint64, error) {
	var id uint64
	if _, err := fmt.Sscanf(s, "%x", &id); err != nil {
		return 0, fmt.Errorf("invalid hex id %q: %w", s, err)
	}
	return id, nil
}

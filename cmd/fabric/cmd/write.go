package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceFabric/pkg/fabric"
	"github.com/OpenTraceLab/OpenTraceFabric/pkg/textstream"
)

var (
	writeProtocol string
	writeOutput   string
)

var writeCmd = &cobra.Command{
	Use:   "write <description.yaml>",
	Short: "Serialize a fabric description to a loadable text bitstream",
	Long: `Load a YAML fabric bitstream description, regroup its bits for the
selected configuration protocol, and write the device-loadable plain-text
bitstream. The output contains only the bitstream payload: no comments,
headers or other characters.

Examples:
  fabric write design.yaml                           # standalone, to stdout
  fabric write -p scan-chain design.yaml -o chain.bit
  fabric write -p memory-bank design.yaml -o bank.bit`,
	Args: cobra.ExactArgs(1),
	RunE: runWrite,
}

func init() {
	rootCmd.AddCommand(writeCmd)

	writeCmd.Flags().StringVarP(&writeProtocol, "protocol", "p", "standalone",
		"configuration protocol (standalone, scan-chain, memory-bank, frame-based)")
	writeCmd.Flags().StringVarP(&writeOutput, "output", "o", "",
		"output file (default stdout)")
}

func runWrite(cmd *cobra.Command, args []string) error {
	proto, err := fabric.ParseProtocol(writeProtocol)
	if err != nil {
		return err
	}

	doc, err := fabric.LoadDocument(args[0])
	if err != nil {
		return err
	}
	bs, err := doc.Bitstream()
	if err != nil {
		return err
	}

	if writeOutput == "" || writeOutput == "-" {
		_, err := textstream.Write(os.Stdout, bs, proto)
		return err
	}

	n, err := textstream.WriteFile(writeOutput, bs, proto)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Printf("Outputted %d configuration bits to plain text file: %s\n", n, writeOutput)
	}
	return nil
}

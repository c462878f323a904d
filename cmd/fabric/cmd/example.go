package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceFabric/pkg/fabric"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Emit a small demonstration fabric description",
	Long: `Write a demonstration fabric description to stdout. The example
covers two regions, a shared memory-bank address and a don't-care
address symbol:

  fabric example > demo.yaml
  fabric write -p scan-chain demo.yaml
  fabric write -p memory-bank demo.yaml

A frame-based description uses a single "address" per bit instead of
the "bl"/"wl" pair.`,
	Args: cobra.NoArgs,
	RunE: runExample,
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}

func runExample(cmd *cobra.Command, args []string) error {
	doc := &fabric.Document{
		Name:    "demo",
		Regions: 2,
		Bits: []fabric.DocumentBit{
			{Value: 1, Region: 0, BL: "00", WL: "10"},
			{Value: 0, Region: 0, BL: "01", WL: "10"},
			{Value: 1, Region: 0, BL: "00", WL: "10"},
			{Value: 0, Region: 1, BL: "1x", WL: "00"},
			{Value: 1, Region: 1, BL: "1x", WL: "01"},
		},
	}
	return doc.Encode(os.Stdout)
}

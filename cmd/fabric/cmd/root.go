package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fabric",
	Short: "FPGA fabric bitstream text serializer",
	Long: `fabric converts declarative fabric bitstream descriptions into the
plain-text encodings loaded directly by FPGA configuration hardware.

Four configuration protocols are supported: standalone, scan-chain,
memory-bank and frame-based; each imposes its own grouping and ordering
on the output.

Examples:
  fabric write -p frame-based design.yaml -o design.bit   # Serialize a design
  fabric info design.yaml                                 # Show bitstream statistics
  fabric verify -p memory-bank design.yaml design.bit     # Check an existing file
  fabric example                                          # Emit a demo description`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

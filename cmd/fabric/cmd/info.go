package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceFabric/pkg/fabric"
)

var infoCmd = &cobra.Command{
	Use:   "info <description.yaml>",
	Short: "Show bitstream statistics for each configuration protocol",
	Long: `Load a fabric description and report, per protocol, how large the
serialized bitstream would be and how much of it a fast configuration
(preloading all cells via a global set/reset pulse) could skip.

Examples:
  fabric info design.yaml
  fabric info -v design.yaml    # include per-region sizes`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := fabric.LoadDocument(args[0])
	if err != nil {
		return err
	}
	bs, err := doc.Bitstream()
	if err != nil {
		return err
	}

	if doc.Name != "" {
		fmt.Printf("Fabric: %s\n", doc.Name)
	}
	fmt.Printf("Configuration bits: %d\n", bs.NumBits())
	fmt.Printf("Regions: %d\n", bs.NumRegions())
	if verbose {
		for r := 0; r < bs.NumRegions(); r++ {
			fmt.Printf("  region %d: %d bits\n", r, bs.RegionSize(fabric.RegionID(r)))
		}
	}
	fmt.Println()

	fmt.Printf("standalone:  %d value characters, 1 line\n", bs.NumBits())

	rows := fabric.MaxRegionalSize(bs)
	chainSkip, err := fabric.SkipValue(fabric.ProtocolScanChain, bs)
	if err != nil {
		return err
	}
	fmt.Printf("scan-chain:  %d clock rows", rows)
	if n := fabric.ChainSkipCount(bs, chainSkip); n > 0 {
		fmt.Printf(" (fast configuration skips %d leading '%c' rows)", n, valueChar(chainSkip))
	}
	fmt.Println()

	bankGroups := fabric.BuildMemoryBankByAddress(bs)
	bankSkip, err := fabric.SkipValue(fabric.ProtocolMemoryBank, bs)
	if err != nil {
		return err
	}
	fmt.Printf("memory-bank: %d address lines", len(bankGroups))
	if fast := fabric.MemoryBankFastSize(bs, bankSkip); fast < len(bankGroups) {
		fmt.Printf(" (fast configuration writes %d)", fast)
	}
	fmt.Println()

	frameGroups := fabric.BuildFrameByAddress(bs)
	frameSkip, err := fabric.SkipValue(fabric.ProtocolFrameBased, bs)
	if err != nil {
		return err
	}
	fmt.Printf("frame-based: %d address lines", len(frameGroups))
	if fast := fabric.FrameFastSize(bs, frameSkip); fast < len(frameGroups) {
		fmt.Printf(" (fast configuration writes %d)", fast)
	}
	fmt.Println()

	return nil
}

func valueChar(v bool) byte {
	if v {
		return '1'
	}
	return '0'
}

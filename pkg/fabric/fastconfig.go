package fabric

import "fmt"

// Fast configuration analysis. When a fabric exposes a global set or
// reset port, all cells can be preloaded to one value in a single pulse
// and every configuration bit equal to that value can be skipped during
// loading. These helpers decide which value to skip and how much of the
// bitstream the skip removes under each protocol.

// SkippableBits counts how many configuration bits loading could skip if
// all cells were preloaded to skip.
//
// Scan-chain fabrics shift serially, so only the leading run of equal
// bits can be dropped. Memory-bank and frame-based fabrics address cells
// individually, so every matching bit counts. Standalone loading writes
// all cells at once and nothing can be skipped.
func SkippableBits(p Protocol, b *Bitstream, skip bool) (int, error) {
	switch p {
	case ProtocolStandalone:
		return 0, nil
	case ProtocolScanChain:
		n := 0
		for id := 0; id < b.NumBits(); id++ {
			if b.BitValue(BitID(id)) != skip {
				break
			}
			n++
		}
		return n, nil
	case ProtocolMemoryBank, ProtocolFrameBased:
		n := 0
		for id := 0; id < b.NumBits(); id++ {
			if b.BitValue(BitID(id)) == skip {
				n++
			}
		}
		return n, nil
	}
	return 0, fmt.Errorf("fabric: %s does not support fast configuration analysis", p)
}

// SkipValue picks the bit value whose skipping removes the most
// configuration work. Zeros win ties, matching the convention that a
// reset port is preferred over a set port.
func SkipValue(p Protocol, b *Bitstream) (bool, error) {
	zeros, err := SkippableBits(p, b, false)
	if err != nil {
		return false, err
	}
	ones, err := SkippableBits(p, b, true)
	if err != nil {
		return false, err
	}
	return ones > zeros, nil
}

// ChainSkipCount returns the number of leading scan-chain clock rows a
// fast configuration drops. The count is bounded below the longest
// region size so at least one row is always loaded.
func ChainSkipCount(b *Bitstream, skip bool) int {
	n, _ := SkippableBits(ProtocolScanChain, b, skip)
	if max := MaxRegionalSize(b); n >= max && max > 0 {
		n = max - 1
	}
	return n
}

// MemoryBankFastSize returns the number of address lines a memory-bank
// fast configuration still has to write: groups where every din equals
// the skip value are dropped entirely.
func MemoryBankFastSize(b *Bitstream, skip bool) int {
	n := 0
	for _, g := range BuildMemoryBankByAddress(b) {
		if anyDiffers(g.Din, skip) {
			n++
		}
	}
	return n
}

// FrameFastSize is the frame-based counterpart of MemoryBankFastSize.
func FrameFastSize(b *Bitstream, skip bool) int {
	n := 0
	for _, g := range BuildFrameByAddress(b) {
		if anyDiffers(g.Din, skip) {
			n++
		}
	}
	return n
}

func anyDiffers(din []bool, skip bool) bool {
	for _, v := range din {
		if v != skip {
			return true
		}
	}
	return false
}

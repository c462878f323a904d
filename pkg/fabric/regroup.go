package fabric

// Regrouping projections over a Bitstream. Each build function walks the
// bit arena once and produces a read-only structure shaped for one
// output protocol; nothing here mutates the source.

// MemoryBankGroup collects every din value written at one BL/WL address,
// in the order the bits appeared in the source.
type MemoryBankGroup struct {
	BL  Address
	WL  Address
	Din []bool
}

// FrameGroup collects every din value written at one frame address.
type FrameGroup struct {
	Address Address
	Din     []bool
}

// BuildMemoryBankByAddress merges all bits sharing an identical BL/WL
// pair into one group. Group order is the first-seen order of each
// address, never a sort: the loading hardware ties line order to scan
// timing, so a map with undefined iteration order cannot be used here.
func BuildMemoryBankByAddress(b *Bitstream) []MemoryBankGroup {
	groups := make([]MemoryBankGroup, 0)
	index := make(map[string]int)
	var key []byte
	for id := 0; id < b.NumBits(); id++ {
		bl, wl := b.BitBankAddress(BitID(id))
		key = key[:0]
		key = bl.AppendTo(key)
		key = append(key, ' ')
		key = wl.AppendTo(key)
		i, seen := index[string(key)]
		if !seen {
			i = len(groups)
			groups = append(groups, MemoryBankGroup{BL: bl, WL: wl})
			index[string(key)] = i
		}
		groups[i].Din = append(groups[i].Din, b.BitValue(BitID(id)))
	}
	return groups
}

// BuildFrameByAddress merges all bits sharing an identical frame address
// into one group, preserving first-seen address order.
func BuildFrameByAddress(b *Bitstream) []FrameGroup {
	groups := make([]FrameGroup, 0)
	index := make(map[string]int)
	for id := 0; id < b.NumBits(); id++ {
		addr := b.BitAddress(BitID(id))
		i, seen := index[addr.String()]
		if !seen {
			i = len(groups)
			groups = append(groups, FrameGroup{Address: addr})
			index[addr.String()] = i
		}
		groups[i].Din = append(groups[i].Din, b.BitValue(BitID(id)))
	}
	return groups
}

// BuildRegionalBitstreams renders each region's bit sequence as '0'/'1'
// characters, one slice per region in canonical region order. A region's
// slice length equals its bit count; no padding is inserted for short
// regions.
func BuildRegionalBitstreams(b *Bitstream) [][]byte {
	regional := make([][]byte, b.NumRegions())
	for r := 0; r < b.NumRegions(); r++ {
		ids := b.RegionBits(RegionID(r))
		buf := make([]byte, len(ids))
		for i, id := range ids {
			buf[i] = valueChar(b.BitValue(id))
		}
		regional[r] = buf
	}
	return regional
}

// MaxRegionalSize returns the bit count of the longest region. This is
// the number of clock rows a scan-chain serialization produces.
func MaxRegionalSize(b *Bitstream) int {
	max := 0
	for r := 0; r < b.NumRegions(); r++ {
		if n := b.RegionSize(RegionID(r)); n > max {
			max = n
		}
	}
	return max
}

func valueChar(v bool) byte {
	if v {
		return '1'
	}
	return '0'
}

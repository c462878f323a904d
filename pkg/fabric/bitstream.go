package fabric

import "fmt"

// RegionID identifies one configuration region, an independent segment
// of the fabric's configuration memory. Under the scan-chain protocol
// every region is a separate shift register and all regions load in
// parallel; the other protocols ignore region membership.
type RegionID int

// BitID indexes one configuration bit inside a Bitstream.
type BitID int

type bit struct {
	value  bool
	addr   Address // frame-based address word
	bl, wl Address // memory-bank bit-line/word-line pair
	region RegionID
}

// Bitstream is an append-only arena of configuration bits plus their
// region membership. It is the protocol-agnostic source the text
// serializer reads; bit order is the order of AddBit calls and is never
// reordered here.
type Bitstream struct {
	bits    []bit
	regions [][]BitID
}

// NewBitstream returns an empty bitstream with no regions.
func NewBitstream() *Bitstream {
	return &Bitstream{}
}

// AddRegion reserves a new configuration region and returns its handle.
// Region order is canonical: the scan-chain serializer emits columns in
// the order regions were added.
func (b *Bitstream) AddRegion() RegionID {
	b.regions = append(b.regions, nil)
	return RegionID(len(b.regions) - 1)
}

// AddBit appends a configuration bit to the given region.
func (b *Bitstream) AddBit(region RegionID, value bool) (BitID, error) {
	if region < 0 || int(region) >= len(b.regions) {
		return 0, fmt.Errorf("fabric: region %d does not exist", region)
	}
	id := BitID(len(b.bits))
	b.bits = append(b.bits, bit{value: value, region: region})
	b.regions[region] = append(b.regions[region], id)
	return id, nil
}

// SetBitAddress assigns a frame-based address word to a bit.
func (b *Bitstream) SetBitAddress(id BitID, addr Address) error {
	if !b.validBit(id) {
		return fmt.Errorf("fabric: bit %d does not exist", id)
	}
	b.bits[id].addr = addr
	return nil
}

// SetBitBankAddress assigns a memory-bank BL/WL address pair to a bit.
func (b *Bitstream) SetBitBankAddress(id BitID, bl, wl Address) error {
	if !b.validBit(id) {
		return fmt.Errorf("fabric: bit %d does not exist", id)
	}
	b.bits[id].bl = bl
	b.bits[id].wl = wl
	return nil
}

func (b *Bitstream) validBit(id BitID) bool {
	return id >= 0 && int(id) < len(b.bits)
}

// NumBits returns the total number of configuration bits.
func (b *Bitstream) NumBits() int {
	return len(b.bits)
}

// NumRegions returns the number of reserved regions.
func (b *Bitstream) NumRegions() int {
	return len(b.regions)
}

// BitValue returns the configuration value of a bit.
// An out-of-range id panics, as with any slice index.
func (b *Bitstream) BitValue(id BitID) bool {
	return b.bits[id].value
}

// BitAddress returns the frame-based address word of a bit, or a nil
// address when none was assigned.
func (b *Bitstream) BitAddress(id BitID) Address {
	return b.bits[id].addr
}

// BitBankAddress returns the memory-bank BL/WL pair of a bit.
func (b *Bitstream) BitBankAddress(id BitID) (bl, wl Address) {
	return b.bits[id].bl, b.bits[id].wl
}

// BitRegion returns the region a bit belongs to.
func (b *Bitstream) BitRegion(id BitID) RegionID {
	return b.bits[id].region
}

// RegionBits returns a copy of the bit ids in a region, in append order.
func (b *Bitstream) RegionBits(region RegionID) []BitID {
	if region < 0 || int(region) >= len(b.regions) {
		return nil
	}
	out := make([]BitID, len(b.regions[region]))
	copy(out, b.regions[region])
	return out
}

// RegionSize returns the bit count of a region without copying.
func (b *Bitstream) RegionSize(region RegionID) int {
	if region < 0 || int(region) >= len(b.regions) {
		return 0
	}
	return len(b.regions[region])
}

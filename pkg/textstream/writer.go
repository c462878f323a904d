package textstream

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/OpenTraceFabric/pkg/fabric"
)

// Write serializes a fabric bitstream to w in the plain-text encoding of
// the given configuration protocol and returns the number of bits
// processed. The output is consumed directly by hardware loading logic:
// it contains nothing but the bitstream payload, its required
// separators, and a single trailing blank line.
//
// The sink must already be open and writable; Write never opens or
// closes it. On failure nothing further is written, but bytes already
// flushed are not retracted.
func Write(w io.Writer, b *fabric.Bitstream, p fabric.Protocol) (int, error) {
	if w == nil {
		return 0, ErrInvalidSink
	}

	bw := bufio.NewWriter(w)

	var err error
	switch p {
	case fabric.ProtocolStandalone:
		err = writeFlat(bw, b, p)
	case fabric.ProtocolScanChain:
		err = writeConfigChain(bw, b)
	case fabric.ProtocolMemoryBank:
		err = writeMemoryBank(bw, b)
	case fabric.ProtocolFrameBased:
		err = writeFrameBased(bw, b)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedProtocol, p)
	}
	if err != nil {
		return 0, err
	}

	// The file always ends with one blank line after the last data line.
	if err := bw.WriteByte('\n'); err != nil {
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return b.NumBits(), nil
}

// WriteFile creates (or truncates) the named file and serializes the
// bitstream into it.
func WriteFile(name string, b *fabric.Bitstream, p fabric.Protocol) (int, error) {
	if name == "" {
		return 0, ErrEmptyDestination
	}
	f, err := os.Create(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidSink, name, err)
	}
	n, werr := Write(f, b, p)
	if cerr := f.Close(); werr == nil && cerr != nil {
		return 0, fmt.Errorf("textstream: close %s: %w", name, cerr)
	}
	if werr != nil {
		return 0, werr
	}
	return n, nil
}

// writeFlat emits every bit in source order with no grouping and no
// separators: the whole stream is one logical line.
func writeFlat(w *bufio.Writer, b *fabric.Bitstream, p fabric.Protocol) error {
	var buf []byte
	for id := 0; id < b.NumBits(); id++ {
		var err error
		buf, err = AppendBit(buf[:0], b, fabric.BitID(id), p)
		if err != nil {
			return err
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// writeConfigChain emits the scan-chain matrix: one line per clock row,
// one character per region in canonical region order. Regions are
// independent shift registers loaded in parallel, so the on-wire format
// is clock-indexed, not bit-indexed. A region shorter than the longest
// one stops contributing characters; the column narrows rather than
// being padded.
func writeConfigChain(w *bufio.Writer, b *fabric.Bitstream) error {
	regional := fabric.BuildRegionalBitstreams(b)
	rows := fabric.MaxRegionalSize(b)

	for i := 0; i < rows; i++ {
		for _, region := range regional {
			if i >= len(region) {
				continue
			}
			if err := w.WriteByte(region[i]); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// writeMemoryBank emits one line per distinct BL/WL address:
// <BL> <WL> <din bits>. Bits sharing an address collapse into one line,
// din values in source order.
func writeMemoryBank(w *bufio.Writer, b *fabric.Bitstream) error {
	var buf []byte
	for _, g := range fabric.BuildMemoryBankByAddress(b) {
		buf = g.BL.AppendTo(buf[:0])
		buf = append(buf, ' ')
		buf = g.WL.AppendTo(buf)
		buf = append(buf, ' ')
		buf = appendDin(buf, g.Din)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// writeFrameBased emits one line per distinct frame address:
// <address> <din bits>.
func writeFrameBased(w *bufio.Writer, b *fabric.Bitstream) error {
	var buf []byte
	for _, g := range fabric.BuildFrameByAddress(b) {
		buf = g.Address.AppendTo(buf[:0])
		buf = append(buf, ' ')
		buf = appendDin(buf, g.Din)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func appendDin(dst []byte, din []bool) []byte {
	for _, v := range din {
		dst = append(dst, valueChar(v))
	}
	return dst
}

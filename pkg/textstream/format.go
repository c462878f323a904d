package textstream

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceFabric/pkg/fabric"
)

// AppendBit appends the canonical text fragment of one configuration bit
// to dst. The fragment shape depends on the protocol:
//
//   - standalone, scan-chain: the single value character, no separator
//   - memory-bank:  <BL address> <WL address> <value>\n
//   - frame-based:  <address> <value>\n
//
// An unrecognized protocol returns ErrUnsupportedProtocol with dst
// untouched; no partial line may reach the sink in that case.
func AppendBit(dst []byte, b *fabric.Bitstream, id fabric.BitID, p fabric.Protocol) ([]byte, error) {
	switch p {
	case fabric.ProtocolStandalone, fabric.ProtocolScanChain:
		return append(dst, valueChar(b.BitValue(id))), nil
	case fabric.ProtocolMemoryBank:
		bl, wl := b.BitBankAddress(id)
		dst = bl.AppendTo(dst)
		dst = append(dst, ' ')
		dst = wl.AppendTo(dst)
		dst = append(dst, ' ')
		dst = append(dst, valueChar(b.BitValue(id)), '\n')
		return dst, nil
	case fabric.ProtocolFrameBased:
		dst = b.BitAddress(id).AppendTo(dst)
		dst = append(dst, ' ')
		dst = append(dst, valueChar(b.BitValue(id)), '\n')
		return dst, nil
	}
	return dst, fmt.Errorf("%w: %s", ErrUnsupportedProtocol, p)
}

func valueChar(v bool) byte {
	if v {
		return '1'
	}
	return '0'
}

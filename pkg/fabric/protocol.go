package fabric

import "fmt"

// Protocol identifies the configuration-delivery protocol of the target
// fabric. It is fixed once per serialization run and decides both the
// output shape and which bit fields are read.
type Protocol uint8

const (
	// ProtocolStandalone loads every memory cell in parallel; the
	// bitstream is one flat run of value characters.
	ProtocolStandalone Protocol = iota
	// ProtocolScanChain loads independent regional shift registers in
	// parallel, one chain per region.
	ProtocolScanChain
	// ProtocolMemoryBank addresses cells by bit-line/word-line pairs.
	ProtocolMemoryBank
	// ProtocolFrameBased addresses whole frames by a single address word.
	ProtocolFrameBased
)

var protocolNames = map[Protocol]string{
	ProtocolStandalone: "standalone",
	ProtocolScanChain:  "scan-chain",
	ProtocolMemoryBank: "memory-bank",
	ProtocolFrameBased: "frame-based",
}

// Valid reports whether p is one of the four recognized protocols.
func (p Protocol) Valid() bool {
	_, ok := protocolNames[p]
	return ok
}

func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return fmt.Sprintf("protocol(%d)", uint8(p))
}

// Addressed reports whether the protocol carries per-bit addresses.
func (p Protocol) Addressed() bool {
	return p == ProtocolMemoryBank || p == ProtocolFrameBased
}

// ParseProtocol resolves a protocol name as used on the command line.
func ParseProtocol(name string) (Protocol, error) {
	for p, n := range protocolNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("fabric: unknown configuration protocol %q", name)
}

package fabric

import "fmt"

// Symbol is one tri-state position in an address encoding. Configuration
// addresses are ordered symbol sequences rather than numbers: a don't-care
// position is irrelevant to decoding but still occupies a fixed-width slot
// on the wire, so it must round-trip exactly as received.
type Symbol uint8

const (
	SymbolZero Symbol = iota
	SymbolOne
	SymbolDontCare
)

// Char returns the wire character for the symbol.
func (s Symbol) Char() byte {
	switch s {
	case SymbolZero:
		return '0'
	case SymbolOne:
		return '1'
	case SymbolDontCare:
		return 'x'
	}
	return '?'
}

// ParseSymbol decodes a single address character.
func ParseSymbol(c byte) (Symbol, error) {
	switch c {
	case '0':
		return SymbolZero, nil
	case '1':
		return SymbolOne, nil
	case 'x', 'X':
		return SymbolDontCare, nil
	}
	return 0, fmt.Errorf("fabric: invalid address symbol %q", c)
}

// Address is an ordered sequence of tri-state symbols. Ordering is
// significant; the zero-length address means "no address assigned".
type Address []Symbol

// ParseAddress decodes an address string such as "01x0".
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return nil, nil
	}
	addr := make(Address, len(s))
	for i := 0; i < len(s); i++ {
		sym, err := ParseSymbol(s[i])
		if err != nil {
			return nil, fmt.Errorf("fabric: address %q: %w", s, err)
		}
		addr[i] = sym
	}
	return addr, nil
}

// String renders the address as it appears on the wire.
func (a Address) String() string {
	return string(a.AppendTo(nil))
}

// AppendTo appends the wire characters of the address to dst.
func (a Address) AppendTo(dst []byte) []byte {
	for _, sym := range a {
		dst = append(dst, sym.Char())
	}
	return dst
}

// Equal reports whether two addresses are symbol-for-symbol identical.
// Don't-care positions only match other don't-care positions; collapsing
// them would merge lines the loading hardware treats as distinct.
func (a Address) Equal(b Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

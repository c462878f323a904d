package textstream

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceFabric/pkg/fabric"
)

// bitstreamLexer tokenizes the addressed text bitstream formats. A Bits
// token is a run of tri-state symbols; end-of-line is significant
// because one line is one hardware write.
var bitstreamLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Bits", Pattern: `[01xX]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// MemoryBankFile is a parsed memory-bank text bitstream.
type MemoryBankFile struct {
	Lines []*MemoryBankLine `parser:"( @@ | EOL )*"`
}

// MemoryBankLine is one write: <BL address> <WL address> <din bits>.
type MemoryBankLine struct {
	BL  string `parser:"@Bits"`
	WL  string `parser:"@Bits"`
	Din string `parser:"@Bits ( EOL | EOF )"`
}

// Group decodes the line into the regrouped form the writer produces.
func (l *MemoryBankLine) Group() (fabric.MemoryBankGroup, error) {
	bl, err := fabric.ParseAddress(l.BL)
	if err != nil {
		return fabric.MemoryBankGroup{}, err
	}
	wl, err := fabric.ParseAddress(l.WL)
	if err != nil {
		return fabric.MemoryBankGroup{}, err
	}
	din, err := parseDin(l.Din)
	if err != nil {
		return fabric.MemoryBankGroup{}, err
	}
	return fabric.MemoryBankGroup{BL: bl, WL: wl, Din: din}, nil
}

// Groups decodes every line in file order.
func (f *MemoryBankFile) Groups() ([]fabric.MemoryBankGroup, error) {
	groups := make([]fabric.MemoryBankGroup, 0, len(f.Lines))
	for i, line := range f.Lines {
		g, err := line.Group()
		if err != nil {
			return nil, fmt.Errorf("textstream: line %d: %w", i+1, err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// FrameFile is a parsed frame-based text bitstream.
type FrameFile struct {
	Lines []*FrameLine `parser:"( @@ | EOL )*"`
}

// FrameLine is one write: <address> <din bits>.
type FrameLine struct {
	Address string `parser:"@Bits"`
	Din     string `parser:"@Bits ( EOL | EOF )"`
}

// Group decodes the line into the regrouped form the writer produces.
func (l *FrameLine) Group() (fabric.FrameGroup, error) {
	addr, err := fabric.ParseAddress(l.Address)
	if err != nil {
		return fabric.FrameGroup{}, err
	}
	din, err := parseDin(l.Din)
	if err != nil {
		return fabric.FrameGroup{}, err
	}
	return fabric.FrameGroup{Address: addr, Din: din}, nil
}

// Groups decodes every line in file order.
func (f *FrameFile) Groups() ([]fabric.FrameGroup, error) {
	groups := make([]fabric.FrameGroup, 0, len(f.Lines))
	for i, line := range f.Lines {
		g, err := line.Group()
		if err != nil {
			return nil, fmt.Errorf("textstream: line %d: %w", i+1, err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// parseDin decodes a din column. Unlike addresses, din bits are actual
// memory values and may not contain don't-care symbols.
func parseDin(s string) ([]bool, error) {
	din := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			din[i] = false
		case '1':
			din[i] = true
		default:
			return nil, fmt.Errorf("invalid din bit %q", s[i])
		}
	}
	return din, nil
}

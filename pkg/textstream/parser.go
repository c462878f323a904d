package textstream

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser reads the addressed text bitstream formats (memory-bank and
// frame-based) back into their line structure. The serial formats
// (standalone, scan-chain) carry position-only payloads with no grammar
// to exploit and are compared byte-wise instead.
type Parser struct {
	bank  *participle.Parser[MemoryBankFile]
	frame *participle.Parser[FrameFile]
}

// NewParser builds the line grammars for both addressed formats.
func NewParser() (*Parser, error) {
	bank, err := participle.Build[MemoryBankFile](
		participle.Lexer(bitstreamLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("textstream: build memory-bank grammar: %w", err)
	}
	frame, err := participle.Build[FrameFile](
		participle.Lexer(bitstreamLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("textstream: build frame grammar: %w", err)
	}
	return &Parser{bank: bank, frame: frame}, nil
}

// ParseMemoryBank parses a memory-bank text bitstream from a reader.
func (p *Parser) ParseMemoryBank(r io.Reader) (*MemoryBankFile, error) {
	file, err := p.bank.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("textstream: parse error: %w", err)
	}
	return file, nil
}

// ParseMemoryBankString parses a memory-bank text bitstream from a string.
func (p *Parser) ParseMemoryBankString(input string) (*MemoryBankFile, error) {
	file, err := p.bank.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("textstream: parse error: %w", err)
	}
	return file, nil
}

// ParseMemoryBankFile parses a memory-bank text bitstream file.
func (p *Parser) ParseMemoryBankFile(filename string) (*MemoryBankFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("textstream: open %s: %w", filename, err)
	}
	defer f.Close()

	return p.ParseMemoryBank(f)
}

// ParseFrame parses a frame-based text bitstream from a reader.
func (p *Parser) ParseFrame(r io.Reader) (*FrameFile, error) {
	file, err := p.frame.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("textstream: parse error: %w", err)
	}
	return file, nil
}

// ParseFrameString parses a frame-based text bitstream from a string.
func (p *Parser) ParseFrameString(input string) (*FrameFile, error) {
	file, err := p.frame.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("textstream: parse error: %w", err)
	}
	return file, nil
}

// ParseFrameFile parses a frame-based text bitstream file.
func (p *Parser) ParseFrameFile(filename string) (*FrameFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("textstream: open %s: %w", filename, err)
	}
	defer f.Close()

	return p.ParseFrame(f)
}

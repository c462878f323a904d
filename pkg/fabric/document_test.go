package fabric

import (
	"bytes"
	"strings"
	"testing"
)

const demoDocument = `
name: demo
regions: 2
bits:
  - {value: 1, region: 0}
  - {value: 0, region: 1, bl: "1x", wl: "00"}
  - {value: 1, region: 0, address: "01"}
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(demoDocument))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc.Name != "demo" {
		t.Errorf("Name = %q, want %q", doc.Name, "demo")
	}
	if len(doc.Bits) != 3 {
		t.Fatalf("got %d bits, want 3", len(doc.Bits))
	}

	bs, err := doc.Bitstream()
	if err != nil {
		t.Fatalf("Bitstream failed: %v", err)
	}
	if bs.NumBits() != 3 || bs.NumRegions() != 2 {
		t.Fatalf("NumBits=%d NumRegions=%d, want 3 and 2", bs.NumBits(), bs.NumRegions())
	}

	bl, wl := bs.BitBankAddress(BitID(1))
	if bl.String() != "1x" || wl.String() != "00" {
		t.Errorf("bit 1 bank address = %q/%q, want 1x/00", bl, wl)
	}
	if got := bs.BitAddress(BitID(2)); got.String() != "01" {
		t.Errorf("bit 2 address = %q, want %q", got, "01")
	}
	if bs.BitRegion(BitID(1)) != RegionID(1) {
		t.Errorf("bit 1 region = %d, want 1", bs.BitRegion(BitID(1)))
	}
}

func TestParseDocumentDefaultsToSingleRegion(t *testing.T) {
	doc, err := ParseDocument([]byte("bits:\n  - {value: 1}\n"))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	bs, err := doc.Bitstream()
	if err != nil {
		t.Fatalf("Bitstream failed: %v", err)
	}
	if bs.NumRegions() != 1 {
		t.Errorf("NumRegions = %d, want 1", bs.NumRegions())
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not yaml", ":\t:["},
		{"bad value", "bits:\n  - {value: 2}\n"},
		{"region out of range", "regions: 1\nbits:\n  - {value: 0, region: 3}\n"},
		{"negative regions", "regions: -1\nbits: []\n"},
		{"bl without wl", "bits:\n  - {value: 1, bl: \"01\"}\n"},
		{"address and bank pair", "bits:\n  - {value: 1, address: \"0\", bl: \"0\", wl: \"1\"}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDocument([]byte(tt.input)); err == nil {
				t.Errorf("ParseDocument should fail for %s", tt.name)
			}
		})
	}
}

func TestDocumentBadAddressSymbols(t *testing.T) {
	doc, err := ParseDocument([]byte("bits:\n  - {value: 1, address: \"02\"}\n"))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if _, err := doc.Bitstream(); err == nil {
		t.Error("Bitstream should reject invalid address symbols")
	}
}

func TestDocumentEncodeRoundTrip(t *testing.T) {
	doc, err := ParseDocument([]byte(demoDocument))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "name: demo") {
		t.Errorf("encoded document missing name:\n%s", buf.String())
	}

	again, err := ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	if len(again.Bits) != len(doc.Bits) {
		t.Fatalf("round trip changed bit count: %d vs %d", len(doc.Bits), len(again.Bits))
	}
	for i := range doc.Bits {
		if again.Bits[i] != doc.Bits[i] {
			t.Errorf("bit %d changed in round trip: %+v vs %+v", i, doc.Bits[i], again.Bits[i])
		}
	}
}

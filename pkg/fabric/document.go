package fabric

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the YAML description of a fabric bitstream. It is the
// on-disk form the CLI consumes; Bitstream() turns it into the in-memory
// arena the serializer reads.
//
// Example:
//
//	name: demo
//	regions: 2
//	bits:
//	  - {value: 1, region: 0}
//	  - {value: 0, region: 1, bl: "10", wl: "0x"}
type Document struct {
	Name    string        `yaml:"name,omitempty"`
	Regions int           `yaml:"regions"`
	Bits    []DocumentBit `yaml:"bits"`
}

// DocumentBit describes one configuration bit. Address, BL and WL are
// tri-state symbol strings; which of them is meaningful depends on the
// protocol the bitstream is later serialized with.
type DocumentBit struct {
	Value   int    `yaml:"value"`
	Region  int    `yaml:"region,omitempty"`
	Address string `yaml:"address,omitempty"`
	BL      string `yaml:"bl,omitempty"`
	WL      string `yaml:"wl,omitempty"`
}

// ParseDocument unmarshals and validates a fabric description.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fabric: invalid description: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadDocument parses a fabric description from a reader.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fabric: read description: %w", err)
	}
	return ParseDocument(data)
}

// LoadDocument parses a fabric description file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fabric: open description: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (d *Document) validate() error {
	regions := d.Regions
	if regions == 0 {
		regions = 1
	}
	if regions < 0 {
		return fmt.Errorf("fabric: negative region count %d", d.Regions)
	}
	for i, b := range d.Bits {
		if b.Value != 0 && b.Value != 1 {
			return fmt.Errorf("fabric: bit %d: value must be 0 or 1, got %d", i, b.Value)
		}
		if b.Region < 0 || b.Region >= regions {
			return fmt.Errorf("fabric: bit %d: region %d out of range [0,%d)", i, b.Region, regions)
		}
		if b.Address != "" && (b.BL != "" || b.WL != "") {
			return fmt.Errorf("fabric: bit %d: address and bl/wl are mutually exclusive", i)
		}
		if (b.BL == "") != (b.WL == "") {
			return fmt.Errorf("fabric: bit %d: bl and wl must be given together", i)
		}
	}
	return nil
}

// Bitstream builds the in-memory bit arena described by the document.
// A zero region count yields a single implicit region.
func (d *Document) Bitstream() (*Bitstream, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	regions := d.Regions
	if regions == 0 {
		regions = 1
	}
	bs := NewBitstream()
	for i := 0; i < regions; i++ {
		bs.AddRegion()
	}
	for i, db := range d.Bits {
		id, err := bs.AddBit(RegionID(db.Region), db.Value == 1)
		if err != nil {
			return nil, fmt.Errorf("fabric: bit %d: %w", i, err)
		}
		if db.Address != "" {
			addr, err := ParseAddress(db.Address)
			if err != nil {
				return nil, fmt.Errorf("fabric: bit %d: %w", i, err)
			}
			if err := bs.SetBitAddress(id, addr); err != nil {
				return nil, err
			}
		}
		if db.BL != "" {
			bl, err := ParseAddress(db.BL)
			if err != nil {
				return nil, fmt.Errorf("fabric: bit %d: %w", i, err)
			}
			wl, err := ParseAddress(db.WL)
			if err != nil {
				return nil, fmt.Errorf("fabric: bit %d: %w", i, err)
			}
			if err := bs.SetBitBankAddress(id, bl, wl); err != nil {
				return nil, err
			}
		}
	}
	return bs, nil
}

// Encode writes the document back out as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("fabric: encode description: %w", err)
	}
	return enc.Close()
}

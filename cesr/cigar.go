package cesr

// Cigar (C5) is a non-transferable, non-indexed signature primitive that
// optionally carries the Verfer it was produced with (spec ssec 3, 4.3).

import "fmt"

type Cigar struct {
	*Matter
	verfer *Verfer
}

// CigarFromRaw wraps a raw signature with its signature code and, if
// known, the signing Verfer.
func CigarFromRaw(raw []byte, code string, verfer *Verfer) (*Cigar, error) {
	m, err := NewMatter(NewMatterOpts{Code: code, Raw: raw})
	if err != nil {
		return nil, err
	}
	return &Cigar{Matter: m, verfer: verfer}, nil
}

// CigarFromQB64 parses an existing Cigar primitive; the Verfer, if needed,
// must be attached separately with SetVerfer.
func CigarFromQB64(text string) (*Cigar, error) {
	m, err := FromQB64(text)
	if err != nil {
		return nil, err
	}
	return &Cigar{Matter: m}, nil
}

func (c *Cigar) Verfer() *Verfer      { return c.verfer }
func (c *Cigar) SetVerfer(v *Verfer) { c.verfer = v }

// Verify checks this Cigar's signature over ser using its attached Verfer.
func (c *Cigar) Verify(ser []byte) (bool, error) {
	if c.verfer == nil {
		return false, fmt.Errorf("cigar has no attached verfer")
	}
	return c.verfer.Verify(c.Raw(), ser)
}

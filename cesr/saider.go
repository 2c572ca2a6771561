package cesr

// Saider (C5) restricts the digest family to SAID use: deriving and
// verifying a self-addressing digest embedded in its own containing data
// (spec ssec 4.4 "SAID derivation").

import (
	"bytes"
	"fmt"
)

type Saider struct{ *Matter }

// SaiderFromQB64 parses an existing SAID primitive.
func SaiderFromQB64(text string) (*Saider, error) {
	d, err := DigerFromQB64(text)
	if err != nil {
		return nil, fmt.Errorf("said: %w", err)
	}
	return &Saider{Matter: d.Matter}, nil
}

// SaiderFromDigest computes a Saider over ser with the given digest code.
func SaiderFromDigest(ser []byte, code string) (*Saider, error) {
	d, err := Digest(ser, code)
	if err != nil {
		return nil, err
	}
	return &Saider{Matter: d.Matter}, nil
}

// Verify reports whether this SAID is the self-addressing digest of ser, the
// serialization that embeds it: every occurrence of the SAID's qb64 in ser
// is replaced by an equal-length run of '#' (the placeholder serder.Derive
// uses) before the digest is rederived and compared.
func (s *Saider) Verify(ser []byte) bool {
	said := []byte(s.QB64())
	placeholder := bytes.Repeat([]byte("#"), len(said))
	d := &Diger{Matter: s.Matter}
	return d.Verify(bytes.ReplaceAll(ser, said, placeholder))
}

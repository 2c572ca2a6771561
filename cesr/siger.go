package cesr

// Siger (C5) is an indexed signature: an Indexer carrying the signing index
// (and optional ondex, the prior-threshold other-index for rotation
// double-signing) plus the Verfer it was produced with (spec ssec 3, 4.3).

import "fmt"

type Siger struct {
	*Indexer
	verfer *Verfer
}

// SigerFromQB64 parses an existing Siger primitive.
func SigerFromQB64(text string) (*Siger, error) {
	m, err := FromQB64(text)
	if err != nil {
		return nil, err
	}
	idxr, err := IndexerFromMatter(m)
	if err != nil {
		return nil, err
	}
	return &Siger{Indexer: idxr}, nil
}

func (s *Siger) Verfer() *Verfer      { return s.verfer }
func (s *Siger) SetVerfer(v *Verfer) { s.verfer = v }

// Verify checks this Siger's signature over ser using its attached Verfer.
func (s *Siger) Verify(ser []byte) (bool, error) {
	if s.verfer == nil {
		return false, fmt.Errorf("siger has no attached verfer")
	}
	return s.verfer.Verify(s.Raw(), ser)
}

package cesr

// Indexer (C4) is Matter plus an attached signing index and optional ondex
// (other-index), both encoded as base64 digit groups inside the soft
// portion (spec ssec 3, 4.3 "Siger").

import (
	"fmt"

	"keri/kerierr"
)

type Indexer struct {
	*Matter
	index, ondex int64
	hasOndex     bool
}

// NewIndexer builds an Indexer primitive. ondexPresent controls whether the
// code's soft field is split index|ondex (ss==4) or index-only (ss==2).
func NewIndexer(code string, raw []byte, index, ondex int64, ondexPresent bool) (*Indexer, error) {
	sz, ok := LookupCode(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerierr.ErrUnsupportedCode, code)
	}
	if sz.Fam&FamIndexed == 0 {
		return nil, fmt.Errorf("%w: %q is not an indexed code", kerierr.ErrUnexpectedCode, code)
	}
	var soft string
	switch {
	case sz.SS == 2 && !ondexPresent:
		soft = encodeB64Int(index, 2)
	case sz.SS == 4 && ondexPresent:
		soft = encodeB64Int(index, 2) + encodeB64Int(ondex, 2)
	default:
		return nil, fmt.Errorf("%w: code %q soft width %d incompatible with ondexPresent=%v", kerierr.ErrInvalidSoft, code, sz.SS, ondexPresent)
	}
	m, err := NewMatter(NewMatterOpts{Code: code, Raw: raw, Soft: soft})
	if err != nil {
		return nil, err
	}
	return &Indexer{Matter: m, index: index, ondex: ondex, hasOndex: ondexPresent}, nil
}

// IndexerFromMatter re-derives the index/ondex fields from an already-parsed
// Matter whose code is a member of the indexed family.
func IndexerFromMatter(m *Matter) (*Indexer, error) {
	sz, ok := LookupCode(m.Code())
	if !ok || sz.Fam&FamIndexed == 0 {
		return nil, fmt.Errorf("%w: %q is not an indexed code", kerierr.ErrUnexpectedCode, m.Code())
	}
	soft := m.Soft()
	idx := decodeB64Int(soft[:2])
	var odx int64
	has := false
	if sz.SS == 4 {
		odx = decodeB64Int(soft[2:4])
		has = true
	}
	return &Indexer{Matter: m, index: idx, ondex: odx, hasOndex: has}, nil
}

func (i *Indexer) Index() int64   { return i.index }
func (i *Indexer) Ondex() (int64, bool) {
	if !i.hasOndex {
		return 0, false
	}
	return i.ondex, true
}

// encodeB64Int encodes v as a fixed-width base64-digit string, big-endian
// digit order, matching spec ssec 9's "soft field as an integer-valued
// base64 suffix" design note.
func encodeB64Int(v int64, width int) string {
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = indexToB64Char(int(v & 0x3f))
		v >>= 6
	}
	return string(out)
}

func decodeB64Int(s string) int64 {
	var v int64
	for i := 0; i < len(s); i++ {
		n, err := b64CharToIndex(s[i])
		if err != nil {
			n = 0
		}
		v = v<<6 | int64(n)
	}
	return v
}

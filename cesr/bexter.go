package cesr

// Bexter (C5) is the variable-length base64 free-text CESR primitive (spec
// ssec 4.1, 4.3). Unlike fixed-size Matter codes, a Bexter's full size is
// not fixed by its code — it is carried alongside the primitive by an
// enclosing framing (a group count, or simply "the rest of this field" for
// standalone use, which is how this implementation is exercised).
//
// Known ambiguity (spec ssec 4.1, 9): a bext string that begins with 'A'
// and whose length is a multiple of 3 or 4 may not round-trip exactly,
// because a synthesized leading 'A' (from zero lead-padding) is
// indistinguishable from a genuine leading 'A' in the original text. This
// is accepted, documented behavior, not a bug to fix.

import (
	"fmt"

	"keri/kerierr"
)

type Bexter struct {
	*Matter
	text string
}

func lsForBextLen(n int) int {
	ts := n % 4
	return (3 - ts) % 3
}

func bexCodeForLS(ls int) string {
	switch ls {
	case 0:
		return CodeBexterL0.Code
	case 1:
		return CodeBexterL1.Code
	default:
		return CodeBexterL2.Code
	}
}

// NewBexter builds a Bexter from base64url free text.
func NewBexter(text string) (*Bexter, error) {
	for i := 0; i < len(text); i++ {
		if _, err := b64CharToIndex(text[i]); err != nil {
			return nil, fmt.Errorf("%w: bext text must be base64url", kerierr.ErrInvalidValue)
		}
	}
	raw, err := rawify(text)
	if err != nil {
		return nil, err
	}
	ls := lsForBextLen(len(text))
	code := bexCodeForLS(ls)
	m, err := NewMatter(NewMatterOpts{Code: code, Raw: raw})
	if err != nil {
		return nil, err
	}
	return &Bexter{Matter: m, text: text}, nil
}

// Bext emits the encoded text form: code followed by the derawified raw
// content.
func (b *Bexter) Bext() string {
	sz, _ := LookupCode(b.Code())
	return b.Code() + derawify(b.Raw(), sz.LS)
}

// BexterFromBext parses a previously-emitted Bext() string, given that the
// caller knows (from external framing) where it ends.
func BexterFromBext(s string) (*Bexter, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("%w: bext primitive too short", kerierr.ErrShortage)
	}
	code := s[:2]
	sz, ok := LookupCode(code)
	if !ok || sz.Fam&FamBext == 0 {
		return nil, fmt.Errorf("%w: %q is not a bext code", kerierr.ErrUnexpectedCode, code)
	}
	text := s[2:]
	raw, err := rawify(text)
	if err != nil {
		return nil, err
	}
	m, err := NewMatter(NewMatterOpts{Code: code, Raw: raw})
	if err != nil {
		return nil, err
	}
	return &Bexter{Matter: m, text: text}, nil
}

// Text returns the original base64url text this Bexter carries.
func (b *Bexter) Text() string { return b.text }

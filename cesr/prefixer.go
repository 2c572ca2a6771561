package cesr

// Prefixer (C5) restricts Matter to prefixive codes: it is the identifier
// prefix itself, either a bare public key (non-transferable AID) or,
// eventually, a digest of the inception event (self-addressing AID — the
// digest case is derived by Saider/the inception builder, not here).

import (
	"fmt"

	"keri/kerierr"
)

type Prefixer struct{ *Matter }

// PrefixerFromVerfer builds a non-transferable-style prefix directly from a
// public key Matter (used when keys=1 and nt=[] at inception).
func PrefixerFromVerfer(v *Verfer) (*Prefixer, error) {
	return PrefixerFromQB64(v.QB64())
}

// PrefixerFromQB64 parses an existing prefix primitive, validating that its
// code is a member of the prefixive or the digest family.
func PrefixerFromQB64(text string) (*Prefixer, error) {
	m, err := FromQB64(text)
	if err != nil {
		return nil, err
	}
	sz, ok := LookupCode(m.Code())
	if !ok || sz.Fam&FamPrefixive == 0 && sz.Fam&FamDigest == 0 {
		return nil, fmt.Errorf("%w: %q is not a prefixive code", kerierr.ErrUnexpectedCode, m.Code())
	}
	return &Prefixer{Matter: m}, nil
}

// PrefixerFromDiger builds a self-addressing prefix from the inception
// event's SAID digest.
func PrefixerFromDiger(d *Diger) *Prefixer {
	return &Prefixer{Matter: d.Matter}
}

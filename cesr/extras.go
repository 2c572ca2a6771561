package cesr

// Pather, Tagger, Labeler, Seqner, Texter, and Ilker are small CESR
// primitives not named directly by the matter/indexer hierarchy but needed
// by the event model: field locators, short tags, sequence numbers carried
// as coded values, free text, and coded ilk labels.

import (
	"fmt"
	"strings"

	"keri/kerierr"
)

// Pather addresses a JSON-path-like field locator inside a SAD (e.g. the
// nested-SAID case where a compact "d" field lives under "a.0.d"). It is
// carried as Bexter-style free text, one path segment per '-'-joined part.
type Pather struct {
	*Bexter
	parts []string
}

// NewPather builds a Pather from path segments.
func NewPather(parts []string) (*Pather, error) {
	text := pathEncode(parts)
	b, err := NewBexter(text)
	if err != nil {
		return nil, fmt.Errorf("pather: %w", err)
	}
	return &Pather{Bexter: b, parts: parts}, nil
}

// PatherFromBext parses a previously emitted Pather primitive.
func PatherFromBext(s string) (*Pather, error) {
	b, err := BexterFromBext(s)
	if err != nil {
		return nil, fmt.Errorf("pather: %w", err)
	}
	return &Pather{Bexter: b, parts: pathDecode(b.Text())}, nil
}

func (p *Pather) Parts() []string { return p.parts }

// pathEncode/pathDecode use '-' as the path separator since '.' is not in
// the base64url alphabet Bexter requires.
func pathEncode(parts []string) string { return strings.Join(parts, "-") }
func pathDecode(text string) []string  { return strings.Split(text, "-") }

// Tagger is a short fixed-ASCII tag used in CESR group framing (e.g. a
// 4-character group selector).
type Tagger struct{ *Matter }

// NewTagger builds a Tagger from up to 4 ASCII characters, base64url-mapped.
func NewTagger(tag string) (*Tagger, error) {
	if len(tag) == 0 || len(tag) > 4 {
		return nil, fmt.Errorf("%w: tag must be 1-4 chars", kerierr.ErrInvalidSize)
	}
	raw := make([]byte, len(tag))
	copy(raw, tag)
	m, err := NewMatter(NewMatterOpts{Code: CodeSalt128.Code, Raw: padTo(raw, 16)})
	if err != nil {
		return nil, err
	}
	return &Tagger{Matter: m}, nil
}

func padTo(b []byte, n int) []byte {
	if len(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Tag returns the original short ASCII tag.
func (t *Tagger) Tag() string { return strings.TrimRight(string(t.Raw()), "\x00") }

// Labeler is a group-member label, a free-text field name carried in CESR
// group framing (distinct from Tagger only in semantic role).
type Labeler struct{ *Bexter }

// NewLabeler builds a Labeler from a field name.
func NewLabeler(name string) (*Labeler, error) {
	b, err := NewBexter(name)
	if err != nil {
		return nil, fmt.Errorf("labeler: %w", err)
	}
	return &Labeler{Bexter: b}, nil
}

// Seqner wraps a Number to hold a KEL sequence number, with the (sn, dig)
// couple convention used by KeyStateRecord (spec ssec 4.6).
type Seqner struct{ *Number }

// NewSeqner builds a Seqner from a sequence number.
func NewSeqner(sn uint64) (*Seqner, error) {
	n, err := FromNum(sn)
	if err != nil {
		return nil, fmt.Errorf("seqner: %w", err)
	}
	return &Seqner{Number: n}, nil
}

// Sn returns the sequence number as a uint64.
func (s *Seqner) Sn() uint64 { return s.Num().Uint64() }

// Texter is variable-length free text packed through the same rawify
// framing as Bexter, but semantically for arbitrary display/diagnostic
// text rather than base64url-restricted content (spec ssec 9, original
// Texter). The underlying CESR encoding is identical to Bexter's; Texter
// exists as a distinct type to keep "this is opaque text" separate from
// "this is a base64url-shaped identifier fragment" at the type level.
type Texter struct{ *Bexter }

// NewTexter builds a Texter from arbitrary UTF-8 text, base64url-encoding
// it first since the underlying CESR framing requires a base64url alphabet.
func NewTexter(text string) (*Texter, error) {
	b, err := NewBexter(b64.EncodeToString([]byte(text)))
	if err != nil {
		return nil, fmt.Errorf("texter: %w", err)
	}
	return &Texter{Bexter: b}, nil
}

// Text decodes the original UTF-8 text.
func (t *Texter) Text() (string, error) {
	raw, err := b64.DecodeString(t.Bexter.Text())
	if err != nil {
		return "", fmt.Errorf("%w: texter decode: %v", kerierr.ErrInvalidFormat, err)
	}
	return string(raw), nil
}

// Ilker carries the event type ("t" field: icp/rot/ixn/dip/drt/rct/qry/rpy)
// as a coded value for compact/binary group framing, rather than as bare
// JSON text.
type Ilker struct{ *Tagger }

var validIlks = map[string]bool{
	"icp": true, "rot": true, "ixn": true, "dip": true,
	"drt": true, "rct": true, "qry": true, "rpy": true,
}

// NewIlker builds an Ilker from a known ilk string.
func NewIlker(ilk string) (*Ilker, error) {
	if !validIlks[ilk] {
		return nil, fmt.Errorf("%w: unknown ilk %q", kerierr.ErrInvalidValue, ilk)
	}
	t, err := NewTagger(ilk)
	if err != nil {
		return nil, fmt.Errorf("ilker: %w", err)
	}
	return &Ilker{Tagger: t}, nil
}

// Ilk returns the event-type string this Ilker carries.
func (i *Ilker) Ilk() string { return i.Tag() }

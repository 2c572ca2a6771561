package cesr

// Matter is the universal qb64/qb2/raw representation of a CESR primitive
// (spec ssec 3, 4.2). It is a value type: two Matters are equal iff their
// (code, raw, soft) triples are equal.

import (
	"fmt"

	"keri/kerierr"
)

type Matter struct {
	code string
	raw  []byte
	soft string
}

// NewMatterOpts configures NewMatter.
type NewMatterOpts struct {
	Code string
	Raw  []byte
	Soft string
}

// NewMatter constructs a Matter from raw bytes and a code, validating that
// len(raw) matches the code's raw size and, for codes with a soft field,
// that soft has the right length and alphabet.
func NewMatter(opts NewMatterOpts) (*Matter, error) {
	sz, ok := LookupCode(opts.Code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerierr.ErrUnsupportedCode, opts.Code)
	}
	if sz.RS >= 0 && len(opts.Raw) != sz.RS {
		return nil, fmt.Errorf("%w: code %q wants raw size %d, got %d", kerierr.ErrInvalidSize, opts.Code, sz.RS, len(opts.Raw))
	}
	if sz.FS < 0 && sz.SS > 0 {
		// Self-framing variable code: the soft field is the material's
		// quadlet count, derived from the raw length when not supplied.
		if (sz.LS+len(opts.Raw))%3 != 0 {
			return nil, fmt.Errorf("%w: code %q raw length %d does not fill whole quadlets", kerierr.ErrInvalidSize, opts.Code, len(opts.Raw))
		}
		soft := encodeB64Int(int64((sz.LS+len(opts.Raw))/3), sz.SS)
		if opts.Soft == "" {
			opts.Soft = soft
		} else if opts.Soft != soft {
			return nil, fmt.Errorf("%w: code %q soft %q does not match raw length %d", kerierr.ErrInvalidSoft, opts.Code, opts.Soft, len(opts.Raw))
		}
	}
	if sz.SS > 0 {
		if len(opts.Soft) != sz.SS {
			return nil, fmt.Errorf("%w: code %q wants soft size %d, got %d", kerierr.ErrInvalidSoft, opts.Code, sz.SS, len(opts.Soft))
		}
		for i := 0; i < len(opts.Soft); i++ {
			if _, err := b64CharToIndex(opts.Soft[i]); err != nil {
				return nil, fmt.Errorf("%w: soft %q not base64url", kerierr.ErrInvalidSoft, opts.Soft)
			}
		}
	}
	raw := make([]byte, len(opts.Raw))
	copy(raw, opts.Raw)
	return &Matter{code: opts.Code, raw: raw, soft: opts.Soft}, nil
}

// FromQB64 parses a full qb64 text primitive.
func FromQB64(text string) (*Matter, error) {
	m, _, err := fromQB64Prefix(text)
	return m, err
}

// FromQB64B parses a qb64 primitive from a byte buffer. If strip is true,
// the consumed bytes are removed from the front of *buf.
func FromQB64B(buf *[]byte, strip bool) (*Matter, error) {
	m, n, err := fromQB64Prefix(string(*buf))
	if err != nil {
		return nil, err
	}
	if strip {
		*buf = (*buf)[n:]
	}
	return m, nil
}

func fromQB64Prefix(text string) (*Matter, int, error) {
	if len(text) < 1 {
		return nil, 0, fmt.Errorf("%w: empty primitive", kerierr.ErrShortage)
	}
	hs, err := HardSize(text[0])
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", kerierr.ErrInvalidCode, err)
	}
	if len(text) < hs {
		return nil, 0, fmt.Errorf("%w: need %d hard chars, have %d", kerierr.ErrShortage, hs, len(text))
	}
	hard := text[:hs]
	sz, ok := LookupCode(hard)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", kerierr.ErrUnsupportedCode, hard)
	}
	fs := sz.FS
	if fs < 0 {
		if sz.SS == 0 {
			return nil, 0, fmt.Errorf("%w: %q needs external framing, use Bexter", kerierr.ErrUnexpectedCode, hard)
		}
		if len(text) < sz.HS+sz.SS {
			return nil, 0, fmt.Errorf("%w: need %d soft chars", kerierr.ErrShortage, sz.SS)
		}
		fs = sz.HS + sz.SS + int(decodeB64Int(text[sz.HS:sz.HS+sz.SS]))*4
	}
	if len(text) < fs {
		return nil, 0, fmt.Errorf("%w: need %d chars, have %d", kerierr.ErrShortage, fs, len(text))
	}
	full := text[:fs]
	soft := full[sz.HS : sz.HS+sz.SS]
	matBody := full[sz.HS+sz.SS:]
	lead := make([]byte, sz.LS)
	body, err := b64.DecodeString(matBody)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", kerierr.ErrInvalidFormat, err)
	}
	if len(body) < sz.LS {
		return nil, 0, fmt.Errorf("%w: body shorter than lead size", kerierr.ErrInvalidSize)
	}
	copy(lead, body[:sz.LS])
	raw := body[sz.LS:]
	if sz.RS >= 0 && len(raw) != sz.RS {
		// Trailing decode slop from base64 rounding; trim or pad as needed.
		if len(raw) > sz.RS {
			raw = raw[:sz.RS]
		} else {
			padded := make([]byte, sz.RS)
			copy(padded, raw)
			raw = padded
		}
	}
	return &Matter{code: hard, raw: raw, soft: soft}, fs, nil
}

// QB64 emits the fully-qualified base64url text form: code || soft ||
// base64url(leadZeros || raw).
func (m *Matter) QB64() string {
	sz, ok := LookupCode(m.code)
	if !ok {
		return ""
	}
	buf := make([]byte, sz.LS+len(m.raw))
	copy(buf[sz.LS:], m.raw)
	return m.code + m.soft + b64.EncodeToString(buf)
}

// QB64B is QB64 as a byte slice.
func (m *Matter) QB64B() []byte { return []byte(m.QB64()) }

// QB2 packs the qb64 text into binary form: every four base64 characters
// become three bytes.
func (m *Matter) QB2() []byte {
	raw, err := b64.DecodeString(m.QB64())
	if err != nil {
		return nil
	}
	return raw
}

// FromQB2 parses a primitive from packed binary form. Since qb2 is always a
// multiple-of-3-bytes base64 packing of the qb64 text, parsing re-derives
// the qb64 text for a large-enough prefix and delegates to the qb64 parser.
func FromQB2(buf *[]byte, strip bool) (*Matter, error) {
	data := *buf
	if len(data) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 bytes", kerierr.ErrShortage)
	}
	// Peek up to 4 hard-code characters by encoding the first 3 bytes.
	peek := b64.EncodeToString(data[:3])
	hs, err := HardSize(peek[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerierr.ErrInvalidCode, err)
	}
	needChars := hs
	needBytes := ceilDiv(needChars*6, 8)
	if needBytes > 3 {
		if len(data) < needBytes {
			return nil, fmt.Errorf("%w: need %d bytes for hard code", kerierr.ErrShortage, needBytes)
		}
		peek = b64.EncodeToString(data[:needBytes])
	}
	hard := peek[:hs]
	sz, ok := LookupCode(hard)
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerierr.ErrUnsupportedCode, hard)
	}
	fs := sz.FS
	if fs < 0 {
		if sz.SS == 0 {
			return nil, fmt.Errorf("%w: %q needs external framing", kerierr.ErrUnexpectedCode, hard)
		}
		needBytes = ceilDiv((sz.HS+sz.SS)*6, 8)
		if len(data) < needBytes {
			return nil, fmt.Errorf("%w: need %d bytes for soft size", kerierr.ErrShortage, needBytes)
		}
		peek = b64.EncodeToString(data[:needBytes])
		fs = sz.HS + sz.SS + int(decodeB64Int(peek[sz.HS:sz.HS+sz.SS]))*4
	}
	totalBytes := fs * 3 / 4
	if len(data) < totalBytes {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", kerierr.ErrShortage, totalBytes, len(data))
	}
	text := b64.EncodeToString(data[:totalBytes])
	m, _, err := fromQB64Prefix(text)
	if err != nil {
		return nil, err
	}
	if strip {
		*buf = data[totalBytes:]
	}
	return m, nil
}

func (m *Matter) Code() string { return m.code }
func (m *Matter) Raw() []byte  { b := make([]byte, len(m.raw)); copy(b, m.raw); return b }
func (m *Matter) Soft() string { return m.soft }

// Equal implements the Matter equivalence relation from spec ssec 3.
func (m *Matter) Equal(o *Matter) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.code != o.code || m.soft != o.soft || len(m.raw) != len(o.raw) {
		return false
	}
	for i := range m.raw {
		if m.raw[i] != o.raw[i] {
			return false
		}
	}
	return true
}

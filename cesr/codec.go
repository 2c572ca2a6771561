package cesr

// Base64 URL-safe raw/text conversion for CESR primitives.
//
// CESR text primitives are not simply base64 of the raw bytes: a primitive's
// raw byte length is rarely a multiple of 3, and lead bytes (ls) realign the
// boundary so the leading code characters land on a 24-bit boundary. rawify
// and derawify implement the padding arithmetic from CESR's "bext" framing
// (spec ssec 4.1), used by Bexter's variable-length text codec. Matter's
// qb64 emission and parsing do not go through them: they keep the lead
// bytes inside the encoded body.

import (
	"encoding/base64"
	"fmt"

	"keri/kerierr"
)

var b64 = base64.URLEncoding.WithPadding(base64.NoPadding)

// rawify decodes bext (a base64url-alphabet string with no framing code) into
// raw bytes, per the ts/ws/ls arithmetic in spec 4.1.
func rawify(bext string) ([]byte, error) {
	ts := len(bext) % 4
	ws := (4 - ts) % 4
	ls := (3 - ts) % 3

	padded := pad(ws) + bext
	raw, err := b64.DecodeString(padded)
	if err != nil {
		return nil, fmt.Errorf("%w: bext decode: %v", kerierr.ErrInvalidFormat, err)
	}
	if ls > len(raw) {
		return nil, fmt.Errorf("%w: bext too short for lead strip", kerierr.ErrInvalidSize)
	}
	return raw[ls:], nil
}

// derawify encodes raw bytes into bext text, prepending ls zero bytes before
// base64url-encoding and then stripping the synthesized leading characters.
func derawify(raw []byte, ls int) string {
	buf := make([]byte, ls+len(raw))
	copy(buf[ls:], raw)
	enc := b64.EncodeToString(buf)
	if ls == 0 {
		if len(enc) > 0 && enc[0] == 'A' {
			return enc[1:]
		}
		return enc
	}
	strip := (ls + 1) % 4
	if strip > len(enc) {
		strip = len(enc)
	}
	return enc[strip:]
}

func pad(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'A'
	}
	return string(b)
}

// b64CharToIndex maps one base64url character to its 6-bit value.
func b64CharToIndex(c byte) (int, error) {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), nil
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 26, nil
	case c >= '0' && c <= '9':
		return int(c-'0') + 52, nil
	case c == '-':
		return 62, nil
	case c == '_':
		return 63, nil
	default:
		return 0, fmt.Errorf("%w: not a base64url character %q", kerierr.ErrInvalidFormat, c)
	}
}

// indexToB64Char is the inverse of b64CharToIndex.
func indexToB64Char(i int) byte {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	return alphabet[i]
}

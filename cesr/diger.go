package cesr

// Diger (C5) restricts Matter to the digest code family and provides the
// digest/verify domain operations (spec ssec 4.3).

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	"keri/kerierr"
)

type Diger struct{ *Matter }

// Digest computes the digest of ser using the algorithm named by code and
// wraps it in a Diger.
func Digest(ser []byte, code string) (*Diger, error) {
	sz, ok := LookupCode(code)
	if !ok || sz.Fam&FamDigest == 0 {
		return nil, fmt.Errorf("%w: %q is not a digest code", kerierr.ErrUnexpectedCode, code)
	}
	var sum []byte
	switch code {
	case CodeBlake3_256.Code:
		h := blake3.Sum256(ser)
		sum = h[:]
	case CodeBlake3_512.Code:
		hasher := blake3.New(64, nil)
		hasher.Write(ser)
		sum = hasher.Sum(nil)
	case CodeBlake2b_512.Code:
		h := blake2b.Sum512(ser)
		sum = h[:]
	case CodeBlake2s_256.Code:
		h := blake2s.Sum256(ser)
		sum = h[:]
	case CodeSHA3_256.Code:
		h := sha3.Sum256(ser)
		sum = h[:]
	case CodeSHA3_512.Code:
		h := sha3.Sum512(ser)
		sum = h[:]
	case CodeSHA2_256.Code:
		h := sha256.Sum256(ser)
		sum = h[:]
	case CodeSHA2_512.Code:
		h := sha512.Sum512(ser)
		sum = h[:]
	default:
		return nil, fmt.Errorf("%w: no digest implementation for %q", kerierr.ErrUnsupportedCode, code)
	}
	m, err := NewMatter(NewMatterOpts{Code: code, Raw: sum})
	if err != nil {
		return nil, err
	}
	return &Diger{Matter: m}, nil
}

// DigerFromQB64 parses an existing digest primitive.
func DigerFromQB64(text string) (*Diger, error) {
	m, err := FromQB64(text)
	if err != nil {
		return nil, err
	}
	sz, ok := LookupCode(m.Code())
	if !ok || sz.Fam&FamDigest == 0 {
		return nil, fmt.Errorf("%w: %q is not a digest code", kerierr.ErrUnexpectedCode, m.Code())
	}
	return &Diger{Matter: m}, nil
}

// Verify recomputes the digest of ser with this Diger's code and compares.
func (d *Diger) Verify(ser []byte) bool {
	other, err := Digest(ser, d.Code())
	if err != nil {
		return false
	}
	return d.Equal(other.Matter)
}

// Package kerierr defines the error taxonomy shared by the cesr, serder,
// eventing, db, and routing packages. Most errors those packages raise wrap
// one of the sentinels below, so callers can branch with errors.Is instead
// of string matching; errors passed up from bbolt and the codec libraries,
// and a few plain messages, do not.
package kerierr

import "errors"

// Structural errors — malformed or truncated primitive encodings.
var (
	ErrInvalidCode     = errors.New("invalid code")
	ErrInvalidCodeSize = errors.New("invalid code size")
	ErrInvalidSize     = errors.New("invalid size")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrShortage        = errors.New("shortage: buffer truncated")
)

// Semantic errors — well-formed but not acceptable for the requested domain.
var (
	ErrUnsupportedCode = errors.New("unsupported code")
	ErrInvalidValue    = errors.New("invalid value")
	ErrInvalidSoft     = errors.New("invalid soft")
	ErrUnexpectedCode  = errors.New("unexpected code")
)

// Cryptographic errors.
var (
	ErrVerification          = errors.New("verification error")
	ErrInvalidKeyLength      = errors.New("invalid key length")
	ErrInvalidSignatureLength = errors.New("invalid signature length")
)

// Storage errors.
var (
	ErrDbClosed     = errors.New("database closed")
	ErrMissingEntry = errors.New("missing entry")
	ErrKeyError     = errors.New("key error")
	ErrEncodingError = errors.New("encoding error")
)

// Validation errors — event integrity/chain and ilk/kind/wire-format mismatches.
var (
	ErrValidation = errors.New("validation error")
	ErrValue      = errors.New("value error")
)

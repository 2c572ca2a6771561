package cesr

// Signer (C5) owns private key material and produces Cigar (non-indexed)
// or Siger (indexed) signatures (spec ssec 4.3).

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"keri/kerierr"
)

type Signer struct {
	*Matter
	verfer *Verfer
}

// NewSigner generates a fresh key pair for the given seed code (Ed25519 or
// ECDSA secp256k1) and, if transferable, derives the matching Verfer code.
func NewSigner(seedCode string, transferable bool) (*Signer, error) {
	switch seedCode {
	case CodeEd25519Seed.Code:
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, err
		}
		return signerFromEd25519(priv, transferable)
	case CodeECDSASeed.Code:
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		return signerFromECDSA(priv, transferable)
	default:
		return nil, fmt.Errorf("%w: %q is not a seed code", kerierr.ErrUnexpectedCode, seedCode)
	}
}

func signerFromEd25519(priv ed25519.PrivateKey, transferable bool) (*Signer, error) {
	m, err := NewMatter(NewMatterOpts{Code: CodeEd25519Seed.Code, Raw: priv.Seed()})
	if err != nil {
		return nil, err
	}
	vcode := CodeEd25519N.Code
	if transferable {
		vcode = CodeEd25519.Code
	}
	v, err := VerferFromRaw(priv.Public().(ed25519.PublicKey), vcode)
	if err != nil {
		return nil, err
	}
	return &Signer{Matter: m, verfer: v}, nil
}

func signerFromECDSA(priv *secp256k1.PrivateKey, transferable bool) (*Signer, error) {
	m, err := NewMatter(NewMatterOpts{Code: CodeECDSASeed.Code, Raw: priv.Serialize()})
	if err != nil {
		return nil, err
	}
	vcode := CodeECDSAN.Code
	if transferable {
		vcode = CodeECDSA.Code
	}
	v, err := VerferFromRaw(priv.PubKey().SerializeCompressed(), vcode)
	if err != nil {
		return nil, err
	}
	return &Signer{Matter: m, verfer: v}, nil
}

// SignerFromSeed reconstructs a Signer from an existing seed.
func SignerFromSeed(seedCode string, seed []byte, transferable bool) (*Signer, error) {
	switch seedCode {
	case CodeEd25519Seed.Code:
		priv := ed25519.NewKeyFromSeed(seed)
		return signerFromEd25519(priv, transferable)
	case CodeECDSASeed.Code:
		priv := secp256k1.PrivKeyFromBytes(seed)
		return signerFromECDSA(priv, transferable)
	default:
		return nil, fmt.Errorf("%w: %q is not a seed code", kerierr.ErrUnexpectedCode, seedCode)
	}
}

// Verfer returns the public-key counterpart.
func (s *Signer) Verfer() *Verfer { return s.verfer }

// Sign produces a non-indexed Cigar over ser.
func (s *Signer) Sign(ser []byte) (*Cigar, error) {
	sig, err := s.rawSign(ser)
	if err != nil {
		return nil, err
	}
	return CigarFromRaw(sig, s.sigCode(), s.verfer)
}

// SignIndexed produces an indexed Siger over ser at the given signing index.
// Only Ed25519 keys are supported: the indexed-signature raw size is fixed
// at 64 bytes, which a padded ECDSA DER signature cannot share losslessly.
func (s *Signer) SignIndexed(ser []byte, index int64, ondex int64, hasOndex bool) (*Siger, error) {
	if s.verfer.Code() != CodeEd25519.Code && s.verfer.Code() != CodeEd25519N.Code {
		return nil, fmt.Errorf("%w: indexed signing requires an Ed25519 key", kerierr.ErrUnsupportedCode)
	}
	priv := ed25519.NewKeyFromSeed(s.Raw())
	sig := ed25519.Sign(priv, ser)
	code := CodeSigerEd25519.Code
	if hasOndex {
		code = bigIndexedCode(code)
	}
	idxr, err := NewIndexer(code, sig, index, ondex, hasOndex)
	if err != nil {
		return nil, err
	}
	return &Siger{Indexer: idxr, verfer: s.verfer}, nil
}

func bigIndexedCode(code string) string {
	switch code {
	case CodeSigerEd25519.Code:
		return CodeSigerEd25519Big.Code
	case CodeSigerECDSA.Code:
		return CodeSigerECDSABig.Code
	default:
		return code
	}
}

func (s *Signer) sigCode() string {
	switch s.verfer.Code() {
	case CodeECDSA.Code, CodeECDSAN.Code:
		return CodeCigarECDSASig.Code
	default:
		return CodeCigarEd25519Sig.Code
	}
}

// rawSign returns a fixed-width signature: 64 raw bytes for Ed25519, or a
// DER-encoded ECDSA signature zero-padded to the ECDSA Cigar code's raw
// size (secp256k1 DER signatures are variable length up to ~72 bytes; this
// trades a few wasted trailing bytes for a fixed-size Matter raw field).
func (s *Signer) rawSign(ser []byte) ([]byte, error) {
	switch s.verfer.Code() {
	case CodeEd25519.Code, CodeEd25519N.Code:
		priv := ed25519.NewKeyFromSeed(s.Raw())
		return ed25519.Sign(priv, ser), nil
	case CodeECDSA.Code, CodeECDSAN.Code:
		priv := secp256k1.PrivKeyFromBytes(s.Raw())
		der := ecdsa.Sign(priv, ser).Serialize()
		sz, _ := LookupCode(CodeCigarECDSASig.Code)
		if len(der) > sz.RS {
			return nil, fmt.Errorf("%w: DER signature longer than %d bytes", kerierr.ErrInvalidSignatureLength, sz.RS)
		}
		out := make([]byte, sz.RS)
		copy(out, der)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: no signer for %q", kerierr.ErrUnsupportedCode, s.verfer.Code())
	}
}

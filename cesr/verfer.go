package cesr

// Verfer (C5) restricts Matter to public signing-key codes and provides
// signature verification (spec ssec 4.3).

import (
	"crypto/ed25519"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"keri/kerierr"
)

type Verfer struct{ *Matter }

// VerferFromRaw builds a Verfer from a raw public key and key-family code.
func VerferFromRaw(raw []byte, code string) (*Verfer, error) {
	sz, ok := LookupCode(code)
	if !ok || sz.Fam&(FamNonTrans|FamTrans) == 0 {
		return nil, fmt.Errorf("%w: %q is not a verification-key code", kerierr.ErrUnexpectedCode, code)
	}
	m, err := NewMatter(NewMatterOpts{Code: code, Raw: raw})
	if err != nil {
		return nil, err
	}
	return &Verfer{Matter: m}, nil
}

// VerferFromQB64 parses an existing verfer primitive.
func VerferFromQB64(text string) (*Verfer, error) {
	m, err := FromQB64(text)
	if err != nil {
		return nil, err
	}
	return &Verfer{Matter: m}, nil
}

// Transferable reports whether this key's controller may rotate (as opposed
// to a non-transferable identifier prefix key).
func (v *Verfer) Transferable() bool {
	sz, _ := LookupCode(v.Code())
	return sz.Fam&FamTrans != 0
}

// Verify checks sig over ser using this key.
func (v *Verfer) Verify(sig, ser []byte) (bool, error) {
	switch v.Code() {
	case CodeEd25519N.Code, CodeEd25519.Code:
		if len(v.Raw()) != ed25519.PublicKeySize {
			return false, fmt.Errorf("%w: ed25519 public key size", kerierr.ErrInvalidKeyLength)
		}
		if len(sig) != ed25519.SignatureSize {
			return false, fmt.Errorf("%w: ed25519 signature size", kerierr.ErrInvalidSignatureLength)
		}
		return ed25519.Verify(ed25519.PublicKey(v.Raw()), ser, sig), nil
	case CodeECDSAN.Code, CodeECDSA.Code:
		pk, err := secp256k1.ParsePubKey(v.Raw())
		if err != nil {
			return false, fmt.Errorf("%w: %v", kerierr.ErrInvalidKeyLength, err)
		}
		s, err := ecdsa.ParseDERSignature(trimDERPadding(sig))
		if err != nil {
			return false, fmt.Errorf("%w: %v", kerierr.ErrInvalidSignatureLength, err)
		}
		return s.Verify(ser, pk), nil
	default:
		return false, fmt.Errorf("%w: no verifier for %q", kerierr.ErrUnsupportedCode, v.Code())
	}
}

// trimDERPadding strips the trailing zero bytes Signer pads an ECDSA DER
// signature with to fill the fixed-width signature code's raw size. The DER
// sequence header's length byte bounds the real signature.
func trimDERPadding(sig []byte) []byte {
	if len(sig) >= 2 && sig[0] == 0x30 {
		if dl := int(sig[1]) + 2; dl <= len(sig) {
			return sig[:dl]
		}
	}
	return sig
}

package cesr

// Encrypter/Decrypter (C5, spec ssec 4.3, worked example S7) wrap an
// anonymous-sender sealed box (golang.org/x/crypto/nacl/box) keyed off an
// X25519 public/private key pair derived from the holder's Ed25519 verify
// key, matching the "encrypt to an AID's current signing key" pattern KERI
// uses for key-exchange of rotation seeds and other secrets.

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"math/big"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	"keri/kerierr"
)

// curve25519P is the field prime 2^255-19 shared by Ed25519's Edwards form
// and X25519's Montgomery form.
var curve25519P = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 255)
	return p.Sub(p, big.NewInt(19))
}()

type Encrypter struct {
	pubKey [32]byte
}

type Decrypter struct {
	privKey [32]byte
}

// ed25519PubToX25519 converts an Ed25519 public key to its Montgomery-form
// X25519 equivalent via the standard birational map u = (1+y)/(1-y) mod p,
// where y is the Edwards point's y-coordinate (the public key itself,
// little-endian, with the sign bit in the top bit cleared).
func ed25519PubToX25519(edPub []byte) ([32]byte, error) {
	var out [32]byte
	if len(edPub) != 32 {
		return out, fmt.Errorf("%w: ed25519 public key must be 32 bytes", kerierr.ErrInvalidKeyLength)
	}
	le := make([]byte, 32)
	copy(le, edPub)
	le[31] &= 0x7f // clear the sign bit; only y is needed for the u-coordinate
	y := leBytesToInt(le)

	one := big.NewInt(1)
	num := new(big.Int).Add(one, y)
	num.Mod(num, curve25519P)
	den := new(big.Int).Sub(one, y)
	den.Mod(den, curve25519P)
	denInv := new(big.Int).ModInverse(den, curve25519P)
	if denInv == nil {
		return out, fmt.Errorf("%w: public key is not a valid edwards point", kerierr.ErrInvalidValue)
	}
	u := new(big.Int).Mul(num, denInv)
	u.Mod(u, curve25519P)
	intToLEBytes(u, out[:])
	return out, nil
}

func leBytesToInt(le []byte) *big.Int {
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

func intToLEBytes(n *big.Int, out []byte) {
	be := n.Bytes()
	for i, b := range be {
		out[len(be)-1-i] = b
	}
}

// ed25519SeedToX25519 derives the X25519 private scalar from an Ed25519
// seed using the standard Ed25519 key-expansion (SHA-512 + clamping).
func ed25519SeedToX25519(seed []byte) ([32]byte, error) {
	var out [32]byte
	if len(seed) != 32 {
		return out, fmt.Errorf("%w: ed25519 seed must be 32 bytes", kerierr.ErrInvalidKeyLength)
	}
	h := sha512.Sum512(seed)
	copy(out[:], h[:32])
	out[0] &= 248
	out[31] &= 127
	out[31] |= 64
	return out, nil
}

// EncrypterFromVerfer builds an Encrypter that seals messages to the X25519
// key derived from an Ed25519 (or already-X25519) Verfer.
func EncrypterFromVerfer(v *Verfer) (*Encrypter, error) {
	switch v.Code() {
	case CodeX25519.Code:
		var pub [32]byte
		copy(pub[:], v.Raw())
		return &Encrypter{pubKey: pub}, nil
	case CodeEd25519.Code, CodeEd25519N.Code:
		pub, err := ed25519PubToX25519(v.Raw())
		if err != nil {
			return nil, err
		}
		return &Encrypter{pubKey: pub}, nil
	default:
		return nil, fmt.Errorf("%w: %q cannot be used to encrypt", kerierr.ErrUnsupportedCode, v.Code())
	}
}

// cipherCodeForLS picks the sealed-box cipher code whose fixed lead size
// realigns a raw length to whole quadlets.
func cipherCodeForLS(ls int) string {
	switch ls {
	case 0:
		return CodeCipherL0.Code
	case 1:
		return CodeCipherL1.Code
	default:
		return CodeCipherL2.Code
	}
}

// Encrypt seals plaintext to this Encrypter's public key, returning a
// cipher-coded Matter carrying the anonymous sealed box.
func (e *Encrypter) Encrypt(plaintext []byte) (*Matter, error) {
	sealed, err := box.SealAnonymous(nil, plaintext, &e.pubKey, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: seal: %v", kerierr.ErrEncodingError, err)
	}
	ls := (3 - len(sealed)%3) % 3
	return NewMatter(NewMatterOpts{Code: cipherCodeForLS(ls), Raw: sealed})
}

// DecrypterFromSeed builds a Decrypter from an Ed25519 (or X25519) seed.
func DecrypterFromSeed(seed []byte, code string) (*Decrypter, error) {
	switch code {
	case CodeX25519.Code:
		var priv [32]byte
		copy(priv[:], seed)
		return &Decrypter{privKey: priv}, nil
	case CodeEd25519Seed.Code:
		priv, err := ed25519SeedToX25519(seed)
		if err != nil {
			return nil, err
		}
		return &Decrypter{privKey: priv}, nil
	default:
		return nil, fmt.Errorf("%w: %q cannot be used to decrypt", kerierr.ErrUnsupportedCode, code)
	}
}

// PublicKey returns the X25519 public key matching this Decrypter's private
// key, useful for round-tripping in tests without a separate Verfer.
func (d *Decrypter) PublicKey() [32]byte {
	var pub [32]byte
	curve25519.ScalarBaseMult(&pub, &d.privKey)
	return pub
}

// Decrypt opens a sealed box previously produced by Encrypt.
func (d *Decrypter) Decrypt(m *Matter) ([]byte, error) {
	sz, ok := LookupCode(m.Code())
	if !ok || sz.Fam&FamCipher == 0 || sz.FS >= 0 {
		return nil, fmt.Errorf("%w: %q is not a sealed-box code", kerierr.ErrUnexpectedCode, m.Code())
	}
	pub := d.PublicKey()
	out, ok := box.OpenAnonymous(nil, m.Raw(), &pub, &d.privKey)
	if !ok {
		return nil, fmt.Errorf("%w: seal did not open", kerierr.ErrVerification)
	}
	return out, nil
}

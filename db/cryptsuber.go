package db

// CryptSignerSuber (spec ssec 4.5) is a CesrSuber specialized for Signer
// values encrypted at rest under an outer Encrypter/Decrypter key, used by
// the Keeper for private key material.

import (
	"fmt"

	"keri/cesr"
	"keri/kerierr"
)

type CryptSignerSuber struct {
	suber *Suber
	dec   *cesr.Decrypter
}

// NewCryptSignerSuber opens the table. dec may be nil if only writes
// (Put/Set with an Encrypter) are needed.
func NewCryptSignerSuber(env *Env, name string, dec *cesr.Decrypter) (*CryptSignerSuber, error) {
	s, err := NewSuber(env, name)
	if err != nil {
		return nil, err
	}
	return &CryptSignerSuber{suber: s, dec: dec}, nil
}

// Put encrypts signer's seed qb64b under enc and stores the sealed box.
func (c *CryptSignerSuber) Put(key []byte, signer *cesr.Signer, enc *cesr.Encrypter) error {
	cipher, err := enc.Encrypt(signer.QB64B())
	if err != nil {
		return fmt.Errorf("db: cryptsignersuber encrypt: %w", err)
	}
	return c.suber.Put(key, cipher.QB64B())
}

// Get decrypts and reconstructs the Signer stored at key.
func (c *CryptSignerSuber) Get(key []byte, seedCode string, transferable bool) (*cesr.Signer, bool, error) {
	if c.dec == nil {
		return nil, false, fmt.Errorf("%w: cryptsignersuber opened without a decrypter", kerierr.ErrValidation)
	}
	raw, ok, err := c.suber.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := cesr.FromQB64(string(raw))
	if err != nil {
		return nil, false, fmt.Errorf("db: cryptsignersuber parse cipher: %w", err)
	}
	plain, err := c.dec.Decrypt(m)
	if err != nil {
		return nil, false, fmt.Errorf("db: cryptsignersuber decrypt: %w", err)
	}
	seedMatter, err := cesr.FromQB64(string(plain))
	if err != nil {
		return nil, false, fmt.Errorf("db: cryptsignersuber parse seed: %w", err)
	}
	signer, err := cesr.SignerFromSeed(seedCode, seedMatter.Raw(), transferable)
	if err != nil {
		return nil, false, err
	}
	return signer, true, nil
}

func (c *CryptSignerSuber) Rem(key []byte) (bool, error) {
	return c.suber.Rem(key)
}

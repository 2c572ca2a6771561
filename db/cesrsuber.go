package db

// CesrSuber[M] (spec ssec 4.5) wraps Suber, serializing values through a
// typed CESR primitive's qb64b/from_qb64b rather than storing opaque bytes
// directly.

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// Qb64er is the narrow interface every cesr typed primitive that can round
// trip through qb64b satisfies (cesr.Matter and its wrappers all do).
type Qb64er interface {
	QB64B() []byte
}

// Qb64Decoder constructs a *M from previously-emitted qb64b bytes.
type Qb64Decoder[M Qb64er] func([]byte) (M, error)

type CesrSuber[M Qb64er] struct {
	suber   *Suber
	decode  Qb64Decoder[M]
}

func NewCesrSuber[M Qb64er](env *Env, name string, decode Qb64Decoder[M]) (*CesrSuber[M], error) {
	s, err := NewSuber(env, name)
	if err != nil {
		return nil, err
	}
	return &CesrSuber[M]{suber: s, decode: decode}, nil
}

func (c *CesrSuber[M]) Put(key []byte, val M) error {
	return c.suber.Put(key, val.QB64B())
}

// PutTx is Put within a caller-owned transaction.
func (c *CesrSuber[M]) PutTx(tx *bolt.Tx, key []byte, val M) error {
	return c.suber.PutTx(tx, key, val.QB64B())
}

func (c *CesrSuber[M]) Set(key []byte, val M) error {
	return c.suber.Set(key, val.QB64B())
}

func (c *CesrSuber[M]) Get(key []byte) (M, bool, error) {
	var zero M
	raw, ok, err := c.suber.Get(key)
	if err != nil || !ok {
		return zero, ok, err
	}
	v, err := c.decode(raw)
	if err != nil {
		return zero, false, fmt.Errorf("db: cesrsuber decode: %w", err)
	}
	return v, true, nil
}

func (c *CesrSuber[M]) Rem(key []byte) (bool, error) {
	return c.suber.Rem(key)
}

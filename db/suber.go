package db

// Suber and its variants (spec ssec 4.5) are the sub-DB templates every
// Baser/Keeper named table is built from. Each wraps one top-level bbolt
// bucket; dup/ordered variants layer a nested-bucket or ordinal-prefix
// convention on top since bbolt has no native MDB_DUPSORT equivalent.

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"keri/kerierr"
)

const defaultSep = '.'

// Key joins key components with the default separator, matching the
// spec's "keys are joined by a separator byte" convention.
func Key(parts ...string) []byte {
	return bytes.Join(toBytesSlice(parts), []byte{defaultSep})
}

func toBytesSlice(parts []string) [][]byte {
	out := make([][]byte, len(parts))
	for i, p := range parts {
		out[i] = []byte(p)
	}
	return out
}

// Suber is a single key -> single opaque value table.
type Suber struct {
	env  *Env
	name string
}

// NewSuber opens (creating if absent) a Suber table.
func NewSuber(env *Env, name string) (*Suber, error) {
	if err := env.createBucket(name); err != nil {
		return nil, fmt.Errorf("db: suber %s: %w", name, err)
	}
	return &Suber{env: env, name: name}, nil
}

// Put stores key->val only if key is absent.
func (s *Suber) Put(key, val []byte) error {
	return s.env.db.Update(func(tx *bolt.Tx) error {
		return s.PutTx(tx, key, val)
	})
}

// PutTx is Put within a caller-owned transaction.
func (s *Suber) PutTx(tx *bolt.Tx, key, val []byte) error {
	b := tx.Bucket([]byte(s.name))
	if b.Get(key) != nil {
		return fmt.Errorf("%w: key already present", kerierr.ErrValidation)
	}
	return b.Put(key, val)
}

// Set stores key->val, overwriting any existing value.
func (s *Suber) Set(key, val []byte) error {
	return s.env.db.Update(func(tx *bolt.Tx) error {
		return s.SetTx(tx, key, val)
	})
}

// SetTx is Set within a caller-owned transaction.
func (s *Suber) SetTx(tx *bolt.Tx, key, val []byte) error {
	return tx.Bucket([]byte(s.name)).Put(key, val)
}

// Get returns the value for key, or (nil, false) if absent.
func (s *Suber) Get(key []byte) ([]byte, bool, error) {
	var out []byte
	var ok bool
	err := s.env.db.View(func(tx *bolt.Tx) error {
		out, ok = s.GetTx(tx, key)
		return nil
	})
	return out, ok, err
}

// GetTx is Get within a caller-owned transaction.
func (s *Suber) GetTx(tx *bolt.Tx, key []byte) ([]byte, bool) {
	v := tx.Bucket([]byte(s.name)).Get(key)
	if v == nil {
		return nil, false
	}
	return append([]byte{}, v...), true
}

// Rem deletes key, reporting whether it was present.
func (s *Suber) Rem(key []byte) (bool, error) {
	existed := false
	err := s.env.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(s.name))
		existed = b.Get(key) != nil
		return b.Delete(key)
	})
	return existed, err
}

// DupSuber is a key -> deduplicated set of values table, realized as a
// top-level bucket of per-key nested buckets (nested-bucket key = value).
type DupSuber struct {
	env  *Env
	name string
}

func NewDupSuber(env *Env, name string) (*DupSuber, error) {
	if err := env.createBucket(name); err != nil {
		return nil, fmt.Errorf("db: dupsuber %s: %w", name, err)
	}
	return &DupSuber{env: env, name: name}, nil
}

// Put appends val to key's set if not already present.
func (d *DupSuber) Put(key, val []byte) error {
	return d.env.db.Update(func(tx *bolt.Tx) error {
		return d.PutTx(tx, key, val)
	})
}

// PutTx is Put within a caller-owned transaction.
func (d *DupSuber) PutTx(tx *bolt.Tx, key, val []byte) error {
	sub, err := tx.Bucket([]byte(d.name)).CreateBucketIfNotExists(key)
	if err != nil {
		return err
	}
	return sub.Put(val, []byte{1})
}

// GetAll returns key's values in lexicographic order.
func (d *DupSuber) GetAll(key []byte) ([][]byte, error) {
	var out [][]byte
	err := d.env.db.View(func(tx *bolt.Tx) error {
		top := tx.Bucket([]byte(d.name))
		sub := top.Bucket(key)
		if sub == nil {
			return nil
		}
		return sub.ForEach(func(k, _ []byte) error {
			out = append(out, append([]byte{}, k...))
			return nil
		})
	})
	return out, err
}

// IoDupSuber is a key -> insertion-ordered duplicates table: each value is
// stored under a hidden 32-bit monotonic ordinal so insertion order
// survives the underlying lexicographic key ordering.
type IoDupSuber struct {
	env  *Env
	name string
}

func NewIoDupSuber(env *Env, name string) (*IoDupSuber, error) {
	if err := env.createBucket(name); err != nil {
		return nil, fmt.Errorf("db: iodupsuber %s: %w", name, err)
	}
	return &IoDupSuber{env: env, name: name}, nil
}

// Put appends val to key's insertion-ordered list.
func (d *IoDupSuber) Put(key, val []byte) error {
	return d.env.db.Update(func(tx *bolt.Tx) error {
		return d.PutTx(tx, key, val)
	})
}

// PutTx is Put within a caller-owned transaction.
func (d *IoDupSuber) PutTx(tx *bolt.Tx, key, val []byte) error {
	sub, err := tx.Bucket([]byte(d.name)).CreateBucketIfNotExists(key)
	if err != nil {
		return err
	}
	seq, err := sub.NextSequence()
	if err != nil {
		return err
	}
	ordKey := make([]byte, 4)
	binary.BigEndian.PutUint32(ordKey, uint32(seq))
	return sub.Put(ordKey, val)
}

// GetAll returns key's values in insertion order (the hidden ordinals are
// the nested keys and are not returned).
func (d *IoDupSuber) GetAll(key []byte) ([][]byte, error) {
	var out [][]byte
	err := d.env.db.View(func(tx *bolt.Tx) error {
		top := tx.Bucket([]byte(d.name))
		sub := top.Bucket(key)
		if sub == nil {
			return nil
		}
		return sub.ForEach(func(_ []byte, v []byte) error {
			out = append(out, append([]byte{}, v...))
			return nil
		})
	})
	return out, err
}

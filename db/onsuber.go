package db

// OnSuber/OnIoDupSuber (spec ssec 4.5) key entries by a composite
// prefix||'.'||32-hex-monotonic-ordinal, supporting atomic "allocate the
// next ordinal for this prefix" writes.

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"keri/kerierr"
)

// OnSuber is prefix -> ordered-by-ordinal value table.
type OnSuber struct {
	env  *Env
	name string
}

func NewOnSuber(env *Env, name string) (*OnSuber, error) {
	if err := env.createBucket(name); err != nil {
		return nil, fmt.Errorf("db: onsuber %s: %w", name, err)
	}
	return &OnSuber{env: env, name: name}, nil
}

func onKey(pre string, on uint64) []byte {
	return []byte(fmt.Sprintf("%s.%032x", pre, on))
}

// GetByOn returns the value stored at (pre, on).
func (o *OnSuber) GetByOn(pre string, on uint64) ([]byte, bool, error) {
	var out []byte
	err := o.env.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(o.name)).Get(onKey(pre, on))
		if v != nil {
			out = append([]byte{}, v...)
		}
		return nil
	})
	return out, out != nil, err
}

// PutNext allocates the next ordinal for pre (the ordinal counter is kept
// in a reserved "#<pre>" key within the same bucket) and stores val there,
// returning the ordinal used.
func (o *OnSuber) PutNext(pre string, val []byte) (uint64, error) {
	var on uint64
	err := o.env.db.Update(func(tx *bolt.Tx) error {
		var err error
		on, err = o.PutNextTx(tx, pre, val)
		return err
	})
	return on, err
}

// PutNextTx is PutNext within a caller-owned transaction, so the ordinal
// allocation and the value write commit (or roll back) together.
func (o *OnSuber) PutNextTx(tx *bolt.Tx, pre string, val []byte) (uint64, error) {
	var on uint64
	b := tx.Bucket([]byte(o.name))
	counterKey := []byte("#" + pre)
	if cur := b.Get(counterKey); cur != nil {
		if _, err := fmt.Sscanf(string(cur), "%d", &on); err != nil {
			return 0, fmt.Errorf("%w: corrupt ordinal counter for %q", kerierr.ErrKeyError, pre)
		}
		on++
	}
	if err := b.Put(counterKey, []byte(fmt.Sprintf("%d", on))); err != nil {
		return 0, err
	}
	return on, b.Put(onKey(pre, on), val)
}

// Latest returns the highest ordinal allocated for pre so far, or
// (0, false) if none.
func (o *OnSuber) Latest(pre string) (uint64, bool, error) {
	var on uint64
	found := false
	err := o.env.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(o.name)).Get([]byte("#" + pre))
		if cur == nil {
			return nil
		}
		found = true
		_, err := fmt.Sscanf(string(cur), "%d", &on)
		return err
	})
	return on, found, err
}

// OnIoDupSuber combines OnSuber composite-key addressing with IoDup
// semantics: each (pre, on) slot holds an insertion-ordered list.
type OnIoDupSuber struct {
	env  *Env
	name string
}

func NewOnIoDupSuber(env *Env, name string) (*OnIoDupSuber, error) {
	if err := env.createBucket(name); err != nil {
		return nil, fmt.Errorf("db: oniodupsuber %s: %w", name, err)
	}
	return &OnIoDupSuber{env: env, name: name}, nil
}

// Add appends val to the insertion-ordered list at (pre, on).
func (o *OnIoDupSuber) Add(pre string, on uint64, val []byte) error {
	return o.env.db.Update(func(tx *bolt.Tx) error {
		return o.AddTx(tx, pre, on, val)
	})
}

// AddTx is Add within a caller-owned transaction.
func (o *OnIoDupSuber) AddTx(tx *bolt.Tx, pre string, on uint64, val []byte) error {
	sub, err := tx.Bucket([]byte(o.name)).CreateBucketIfNotExists(onKey(pre, on))
	if err != nil {
		return err
	}
	seq, err := sub.NextSequence()
	if err != nil {
		return err
	}
	return sub.Put(fmt.Appendf(nil, "%08x", seq), val)
}

// GetAll returns the insertion-ordered values at (pre, on).
func (o *OnIoDupSuber) GetAll(pre string, on uint64) ([][]byte, error) {
	var out [][]byte
	err := o.env.db.View(func(tx *bolt.Tx) error {
		top := tx.Bucket([]byte(o.name))
		sub := top.Bucket(onKey(pre, on))
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

package db

// Komer[T] (spec ssec 4.5) is a key -> serialized-record table for
// field-addressable structures (KeyStateRecord, EventSourceRecord, PrePrm,
// PreSit, PubSet). It supports the same JSON/CBOR/MGPK kinds as the event
// serializer, encoded with fxamacker/cbor and vmihailenco/msgpack directly
// over T rather than through serder.SAD (these are plain Go structs with
// fixed field sets, not self-addressing wire events).

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"

	"keri/kerierr"
)

type KomerKind int

const (
	KomerJSON KomerKind = iota
	KomerCBOR
	KomerMGPK
)

type Komer[T any] struct {
	suber *Suber
	kind  KomerKind
}

func NewKomer[T any](env *Env, name string, kind KomerKind) (*Komer[T], error) {
	s, err := NewSuber(env, name)
	if err != nil {
		return nil, err
	}
	return &Komer[T]{suber: s, kind: kind}, nil
}

func (k *Komer[T]) marshal(v T) ([]byte, error) {
	switch k.kind {
	case KomerJSON:
		return json.Marshal(v)
	case KomerCBOR:
		return cbor.Marshal(v)
	case KomerMGPK:
		return msgpack.Marshal(v)
	default:
		return nil, fmt.Errorf("%w: unknown komer kind", kerierr.ErrInvalidValue)
	}
}

func (k *Komer[T]) unmarshal(raw []byte) (T, error) {
	var v T
	var err error
	switch k.kind {
	case KomerJSON:
		err = json.Unmarshal(raw, &v)
	case KomerCBOR:
		err = cbor.Unmarshal(raw, &v)
	case KomerMGPK:
		err = msgpack.Unmarshal(raw, &v)
	default:
		err = fmt.Errorf("%w: unknown komer kind", kerierr.ErrInvalidValue)
	}
	return v, err
}

func (k *Komer[T]) Put(key []byte, v T) error {
	raw, err := k.marshal(v)
	if err != nil {
		return err
	}
	return k.suber.Put(key, raw)
}

// PutTx is Put within a caller-owned transaction.
func (k *Komer[T]) PutTx(tx *bolt.Tx, key []byte, v T) error {
	raw, err := k.marshal(v)
	if err != nil {
		return err
	}
	return k.suber.PutTx(tx, key, raw)
}

func (k *Komer[T]) Set(key []byte, v T) error {
	raw, err := k.marshal(v)
	if err != nil {
		return err
	}
	return k.suber.Set(key, raw)
}

// SetTx is Set within a caller-owned transaction.
func (k *Komer[T]) SetTx(tx *bolt.Tx, key []byte, v T) error {
	raw, err := k.marshal(v)
	if err != nil {
		return err
	}
	return k.suber.SetTx(tx, key, raw)
}

func (k *Komer[T]) Get(key []byte) (T, bool, error) {
	var zero T
	raw, ok, err := k.suber.Get(key)
	if err != nil || !ok {
		return zero, ok, err
	}
	v, err := k.unmarshal(raw)
	if err != nil {
		return zero, false, fmt.Errorf("db: komer decode: %w", err)
	}
	return v, true, nil
}

// GetTx is Get within a caller-owned transaction.
func (k *Komer[T]) GetTx(tx *bolt.Tx, key []byte) (T, bool, error) {
	var zero T
	raw, ok := k.suber.GetTx(tx, key)
	if !ok {
		return zero, false, nil
	}
	v, err := k.unmarshal(raw)
	if err != nil {
		return zero, false, fmt.Errorf("db: komer decode: %w", err)
	}
	return v, true, nil
}

func (k *Komer[T]) Rem(key []byte) (bool, error) {
	return k.suber.Rem(key)
}

package db

// Baser (C9, spec ssec 4.6) is the KEL aggregate: one Env plus its named
// sub-DBs.

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"keri/cesr"
	"keri/eventing"
	"keri/serder"
)

type Baser struct {
	env *Env

	Evts   *Suber
	Fels   *OnSuber
	Kels   *OnIoDupSuber
	Fons   *CesrSuber[*cesr.Number]
	Esrs   *Komer[eventing.EventSourceRecord]
	Dtss   *DupSuber
	Aess   *DupSuber
	Sigs   *DupSuber
	Wigs   *DupSuber
	Wits   *IoDupSuber
	States *Komer[eventing.KeyStateRecord]
}

// OpenBaser opens (creating if absent) the KEL environment and every named
// sub-DB it defines.
func OpenBaser(path string, logger *logrus.Logger) (*Baser, error) {
	env, err := Open(path, logger)
	if err != nil {
		return nil, err
	}
	b := &Baser{env: env}
	var errs []error
	must := func(e error) { errs = append(errs, e) }

	b.Evts, err = NewSuber(env, "evts")
	must(err)
	b.Fels, err = NewOnSuber(env, "fels")
	must(err)
	b.Kels, err = NewOnIoDupSuber(env, "kels")
	must(err)
	b.Fons, err = NewCesrSuber[*cesr.Number](env, "fons", func(raw []byte) (*cesr.Number, error) {
		m, err := cesr.FromQB64(string(raw))
		if err != nil {
			return nil, err
		}
		return &cesr.Number{Matter: m}, nil
	})
	must(err)
	b.Esrs, err = NewKomer[eventing.EventSourceRecord](env, "esrs", KomerJSON)
	must(err)
	b.Dtss, err = NewDupSuber(env, "dtss")
	must(err)
	b.Aess, err = NewDupSuber(env, "aess")
	must(err)
	b.Sigs, err = NewDupSuber(env, "sigs")
	must(err)
	b.Wigs, err = NewDupSuber(env, "wigs")
	must(err)
	b.Wits, err = NewIoDupSuber(env, "wits")
	must(err)
	b.States, err = NewKomer[eventing.KeyStateRecord](env, "states", KomerJSON)
	must(err)

	for _, e := range errs {
		if e != nil {
			return nil, fmt.Errorf("db: open baser: %w", e)
		}
	}
	return b, nil
}

func (b *Baser) Close() error { return b.env.Close() }

// PutEvent stores raw under pre+dig and establishes its key state, with no
// accompanying controller/witness signatures. It is PutEventFull(..., nil,
// nil) — the common case for a caller (e.g. kerictl) that only has the bare
// event bytes.
func (b *Baser) PutEvent(pre, dig string, sn uint64, raw []byte, local bool) (uint64, error) {
	return b.PutEventFull(pre, dig, sn, raw, local, nil, nil)
}

// PutEventFull stores a parsed event's raw bytes under pre+dig, appends its
// digest to the KEL and first-seen log, records the fn ordinal, and
// re-derives and persists the identifier's key state. The whole append runs
// in one transaction, so the write path invariant (a) — every kels/fels
// digest has a matching evts entry — and the fn ordinal allocation commit
// or roll back together; a failed append leaves on-disk state unchanged.
// sigers and wigers, if non-empty, are the controller and witness indexed
// signatures accompanying the event; both are optional since a caller may
// not have collected them yet.
func (b *Baser) PutEventFull(pre, dig string, sn uint64, raw []byte, local bool, sigers, wigers []*cesr.Siger) (uint64, error) {
	ser, err := serder.FromRaw(raw)
	if err != nil {
		return 0, fmt.Errorf("db: put event: %w", err)
	}
	dt, err := cesr.NewDaterFromTime(time.Now())
	if err != nil {
		return 0, err
	}

	var on uint64
	err = b.env.db.Update(func(tx *bolt.Tx) error {
		if err := b.Evts.PutTx(tx, Key(pre, dig), raw); err != nil {
			return err
		}
		var err error
		on, err = b.Fels.PutNextTx(tx, pre, []byte(dig))
		if err != nil {
			return err
		}
		if err := b.Kels.AddTx(tx, pre, sn, []byte(dig)); err != nil {
			return err
		}
		num, err := cesr.FromNum(on)
		if err != nil {
			return err
		}
		if err := b.Fons.PutTx(tx, Key(pre, dig), num); err != nil {
			return err
		}
		if err := b.Esrs.PutTx(tx, Key(pre, dig), eventing.EventSourceRecord{Local: local}); err != nil {
			return err
		}
		if err := b.Dtss.PutTx(tx, Key(pre, dig), []byte(dt.Dts())); err != nil {
			return err
		}
		for _, sig := range sigers {
			if err := b.Sigs.PutTx(tx, Key(pre, dig), sig.QB64B()); err != nil {
				return err
			}
		}
		for _, wig := range wigers {
			if err := b.Wigs.PutTx(tx, Key(pre, dig), wig.QB64B()); err != nil {
				return err
			}
		}
		return b.updateStateTx(tx, ser, pre, dig, sn, on, dt.Dts())
	})
	if err != nil {
		return 0, err
	}

	b.env.Logger().Infof("db: accepted event pre=%s sn=%d dig=%s fn=%d local=%v", pre, sn, dig, on, local)
	return on, nil
}

// updateStateTx derives the key state that results from applying ser
// against whatever was previously stored for pre, and persists it along
// with the event's "a" anchors and (for establishment events) its current
// witness list, all within the caller's transaction — spec ssec 2's "state
// derivation/persistence" C9 responsibility. Reply/query events carry no
// key state and are skipped.
func (b *Baser) updateStateTx(tx *bolt.Tx, ser *serder.Serder, pre, dig string, sn uint64, fn uint64, dt string) error {
	switch ser.Ilk() {
	case "icp", "dip", "rot", "drt", "ixn":
	default:
		return nil
	}

	var prior *eventing.KeyStateRecord
	if sn > 0 {
		rec, ok, err := b.States.GetTx(tx, []byte(pre))
		if err != nil {
			return fmt.Errorf("db: update state: load prior: %w", err)
		}
		if ok {
			prior = &rec
		}
	}

	rec, err := eventing.DeriveKeyStateRecord(ser, prior, fn, dt)
	if err != nil {
		return fmt.Errorf("db: update state: derive: %w", err)
	}
	if err := b.States.SetTx(tx, []byte(pre), *rec); err != nil {
		return fmt.Errorf("db: update state: persist: %w", err)
	}

	for _, anchor := range anchorsOf(ser) {
		anchorRaw, err := json.Marshal(anchor)
		if err != nil {
			return fmt.Errorf("db: update state: marshal anchor: %w", err)
		}
		if err := b.Aess.PutTx(tx, Key(pre, dig), anchorRaw); err != nil {
			return fmt.Errorf("db: update state: persist anchor: %w", err)
		}
	}

	if rec.Eilk == "icp" || rec.Eilk == "dip" || rec.Eilk == "rot" || rec.Eilk == "drt" {
		snapshot, err := json.Marshal(rec.B)
		if err != nil {
			return fmt.Errorf("db: update state: marshal witness list: %w", err)
		}
		if err := b.Wits.PutTx(tx, []byte(pre), snapshot); err != nil {
			return fmt.Errorf("db: update state: persist witness list: %w", err)
		}
	}
	return nil
}

// anchorsOf returns ser's "a" field entries, if any.
func anchorsOf(ser *serder.Serder) []any {
	v, ok := ser.Sad().Get("a")
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	return arr
}

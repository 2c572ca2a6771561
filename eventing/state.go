package eventing

// KeyStateRecord/StateEERecord/EventSourceRecord (spec ssec 3) are the
// durable records the Baser's Komer sub-DBs store (see db.Baser).

import (
	"fmt"

	"keri/kerierr"
	"keri/serder"
)

type KeyStateRecord struct {
	Vn       string // version string
	Pre      string // identifier prefix
	Sn       string // latest sequence number, hex text
	Eilk     string // latest event type (any ilk, ixn included)
	PriorDig string // prior event digest ("p")
	Dig      string // latest event digest ("d")
	LastEst  StateEERecord
	Kt       string
	K        []string
	Nt       string
	N        []string
	Bt       string
	B        []string
	C        []string
	Di       string // delegator, empty if none
	Fn       string // first-seen ordinal, hex text
	Dt       string // ISO-8601 datetime of first-seen
}

// StateEERecord is the last establishment event's (sn, said, witness cuts,
// witness adds) tuple.
type StateEERecord struct {
	S  string   // sn, hex text
	D  string   // said
	Br []string // witness cuts
	Ba []string // witness adds
}

// EventSourceRecord distinguishes locally-originated events from
// network-received ones, keyed by digest in the esrs sub-DB.
type EventSourceRecord struct {
	Local bool
}

// DeriveKeyStateRecord derives the key state that results from applying ser
// to prior (nil for an identifier's inception event), per spec ssec 3's
// KeyStateRecord data model. Establishment ilks (icp/dip/rot/drt) replace
// the key/threshold/witness fields outright; ixn carries prior's state
// forward unchanged except for the per-event fields (v, sn, ilk, prior dig,
// dig, fn, dt). fn is the event's first-seen
// ordinal in the KEL, already allocated by the caller.
func DeriveKeyStateRecord(ser *serder.Serder, prior *KeyStateRecord, fn uint64, dt string) (*KeyStateRecord, error) {
	sad := ser.Sad()
	ilk := ser.Ilk()
	sn, _ := sad.GetString("s")
	priorDig, _ := sad.GetString("p")

	rec := &KeyStateRecord{
		Vn:       ser.Version(),
		Pre:      ser.Pre(),
		Sn:       sn,
		Eilk:     ilk,
		PriorDig: priorDig,
		Dig:      ser.Said(),
		Fn:       numh(fn),
		Dt:       dt,
	}

	switch ilk {
	case "icp", "dip", "rot", "drt":
		rec.Kt, _ = sad.GetString("kt")
		rec.K = stringSlice(sad, "k")
		rec.Nt, _ = sad.GetString("nt")
		rec.N = stringSlice(sad, "n")
		rec.Bt, _ = sad.GetString("bt")
		rec.C = stringSlice(sad, "c")
		rec.B = nextWitnessList(prior, sad)
		rec.LastEst = StateEERecord{
			S:  sn,
			D:  rec.Dig,
			Br: stringSlice(sad, "br"),
			Ba: stringSlice(sad, "ba"),
		}
		if ilk == "dip" {
			rec.Di, _ = sad.GetString("di")
		} else if prior != nil {
			rec.Di = prior.Di
		}
	case "ixn":
		if prior == nil {
			return nil, fmt.Errorf("%w: ixn requires an established prior key state", kerierr.ErrValidation)
		}
		rec.Kt, rec.K = prior.Kt, prior.K
		rec.Nt, rec.N = prior.Nt, prior.N
		rec.Bt, rec.B, rec.C = prior.Bt, prior.B, prior.C
		rec.Di = prior.Di
		rec.LastEst = prior.LastEst
	default:
		return nil, fmt.Errorf("%w: %q carries no key state", kerierr.ErrValidation, ilk)
	}
	return rec, nil
}

// nextWitnessList resolves the "b" field's witness list for an
// establishment event: icp/dip carry the full initial list directly; a
// rotation (rot/drt) instead carries a cut/add delta ("br"/"ba") against
// prior's list.
func nextWitnessList(prior *KeyStateRecord, sad *serder.SAD) []string {
	if b := stringSlice(sad, "b"); len(b) > 0 || prior == nil {
		return b
	}
	cut := stringSlice(sad, "br")
	add := stringSlice(sad, "ba")
	out := make([]string, 0, len(prior.B)+len(add))
	for _, w := range prior.B {
		if !stringSliceContains(cut, w) {
			out = append(out, w)
		}
	}
	return append(out, add...)
}

func stringSliceContains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// stringSlice reads key's value out of sad as a []string, accepting both
// the []any shape json-decoded SADs carry and the []string shape a builder
// may have set directly.
func stringSlice(sad *serder.SAD, key string) []string {
	v, ok := sad.Get(key)
	if !ok {
		return nil
	}
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// DefaultToad computes the default witness threshold per spec ssec 9:
// max(1, ceil(len(wits)/2)) when witnesses are present, else 0.
func DefaultToad(wits []string) int {
	n := len(wits)
	if n == 0 {
		return 0
	}
	toad := (n + 1) / 2
	if toad < 1 {
		toad = 1
	}
	return toad
}

package db

import (
	"path/filepath"
	"strings"
	"testing"

	"keri/eventing"
)

func TestBaserPutEventInvariants(t *testing.T) {
	dir := t.TempDir()
	b, err := OpenBaser(filepath.Join(dir, "kel.db"), nil)
	if err != nil {
		t.Fatalf("OpenBaser: %v", err)
	}
	defer b.Close()

	key := strings.Repeat("D", 44)
	ser, err := eventing.InceptionEventBuilder{Keys: []string{key}}.Build()
	if err != nil {
		t.Fatalf("InceptionEventBuilder.Build: %v", err)
	}
	pre, dig, raw := ser.Pre(), ser.Said(), ser.Raw()

	on, err := b.PutEvent(pre, dig, 0, raw, true)
	if err != nil {
		t.Fatalf("PutEvent: %v", err)
	}
	if on != 0 {
		t.Fatalf("first fn should be 0, got %d", on)
	}

	got, ok, err := b.Evts.Get(Key(pre, dig))
	if err != nil || !ok {
		t.Fatalf("evts missing entry for kels digest: ok=%v err=%v", ok, err)
	}
	if string(got) != string(raw) {
		t.Fatalf("evts raw mismatch")
	}

	num, ok, err := b.Fons.Get(Key(pre, dig))
	if err != nil || !ok {
		t.Fatalf("fons missing entry: ok=%v err=%v", ok, err)
	}
	if num.Num().Uint64() != on {
		t.Fatalf("fons ordinal %d does not match fels fn %d", num.Num().Uint64(), on)
	}

	kelDigs, err := b.Kels.GetAll(pre, 0)
	if err != nil {
		t.Fatalf("kels GetAll: %v", err)
	}
	if len(kelDigs) != 1 || string(kelDigs[0]) != dig {
		t.Fatalf("kels at sn 0 = %v, want [%q]", kelDigs, dig)
	}

	esr, ok, err := b.Esrs.Get(Key(pre, dig))
	if err != nil || !ok {
		t.Fatalf("esrs missing entry: ok=%v err=%v", ok, err)
	}
	if !esr.Local {
		t.Fatalf("esrs should record local=true")
	}

	dts, err := b.Dtss.GetAll(Key(pre, dig))
	if err != nil || len(dts) != 1 {
		t.Fatalf("dtss should hold one entry: got %d, err=%v", len(dts), err)
	}
	if len(dts[0]) == 0 {
		t.Fatalf("dtss entry should carry a non-empty first-seen datetime")
	}

	state, ok, err := b.States.Get([]byte(pre))
	if err != nil || !ok {
		t.Fatalf("states missing entry: ok=%v err=%v", ok, err)
	}
	if state.Dig != dig || state.Eilk != "icp" || state.Sn != "0" {
		t.Fatalf("states mismatch: %+v", state)
	}
	if len(state.K) != 1 || state.K[0] != key {
		t.Fatalf("states K = %v, want [%q]", state.K, key)
	}
}

func TestBaserPutEventCarriesStateForwardThroughInteraction(t *testing.T) {
	dir := t.TempDir()
	b, err := OpenBaser(filepath.Join(dir, "kel.db"), nil)
	if err != nil {
		t.Fatalf("OpenBaser: %v", err)
	}
	defer b.Close()

	key := strings.Repeat("D", 44)
	icp, err := eventing.InceptionEventBuilder{Keys: []string{key}}.Build()
	if err != nil {
		t.Fatalf("InceptionEventBuilder.Build: %v", err)
	}
	pre := icp.Pre()
	if _, err := b.PutEvent(pre, icp.Said(), 0, icp.Raw(), true); err != nil {
		t.Fatalf("PutEvent icp: %v", err)
	}

	ixn, err := eventing.NewInteractEventBuilder(pre, icp.Said()).WithSn(1).Build()
	if err != nil {
		t.Fatalf("InteractEventBuilder.Build: %v", err)
	}
	if _, err := b.PutEvent(pre, ixn.Said(), 1, ixn.Raw(), true); err != nil {
		t.Fatalf("PutEvent ixn: %v", err)
	}

	state, ok, err := b.States.Get([]byte(pre))
	if err != nil || !ok {
		t.Fatalf("states missing entry: ok=%v err=%v", ok, err)
	}
	if state.Sn != "1" || state.Dig != ixn.Said() || state.Eilk != "ixn" {
		t.Fatalf("states not advanced by ixn: %+v", state)
	}
	if len(state.K) != 1 || state.K[0] != key {
		t.Fatalf("states K should carry forward from icp unchanged: %v", state.K)
	}
}

package db

import (
	"fmt"
	"path/filepath"
	"testing"
)

func openTestEnv(t *testing.T) *Env {
	t.Helper()
	env, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { env.Close() })
	return env
}

func TestSuberPutDoesNotOverwrite(t *testing.T) {
	env := openTestEnv(t)
	s, err := NewSuber(env, "evts")
	if err != nil {
		t.Fatalf("NewSuber: %v", err)
	}
	key := Key("pre", "dig")
	if err := s.Put(key, []byte("one")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(key, []byte("two")); err == nil {
		t.Fatalf("Put should refuse to overwrite an existing key")
	}
	if err := s.Set(key, []byte("two")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(key)
	if err != nil || !ok || string(got) != "two" {
		t.Fatalf("Get after Set = (%q, %v, %v), want (two, true, nil)", got, ok, err)
	}
	existed, err := s.Rem(key)
	if err != nil || !existed {
		t.Fatalf("Rem = (%v, %v), want (true, nil)", existed, err)
	}
	if _, ok, _ := s.Get(key); ok {
		t.Fatalf("Get after Rem should report absent")
	}
}

func TestDupSuberDedupsAndOrdersLexicographically(t *testing.T) {
	env := openTestEnv(t)
	d, err := NewDupSuber(env, "sigs")
	if err != nil {
		t.Fatalf("NewDupSuber: %v", err)
	}
	key := Key("pre", "dig")
	for _, v := range []string{"bb", "aa", "bb"} {
		if err := d.Put(key, []byte(v)); err != nil {
			t.Fatalf("Put(%q): %v", v, err)
		}
	}
	got, err := d.GetAll(key)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(got) != 2 || string(got[0]) != "aa" || string(got[1]) != "bb" {
		t.Fatalf("GetAll = %q, want deduped lexicographic [aa bb]", got)
	}
}

func TestIoDupSuberPreservesInsertionOrder(t *testing.T) {
	env := openTestEnv(t)
	d, err := NewIoDupSuber(env, "wits")
	if err != nil {
		t.Fatalf("NewIoDupSuber: %v", err)
	}
	key := []byte("pre")
	// Deliberately not in lexicographic order: insertion order must win.
	vals := []string{"zz", "aa", "mm"}
	for _, v := range vals {
		if err := d.Put(key, []byte(v)); err != nil {
			t.Fatalf("Put(%q): %v", v, err)
		}
	}
	got, err := d.GetAll(key)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(got) != len(vals) {
		t.Fatalf("GetAll returned %d values, want %d", len(got), len(vals))
	}
	for i, v := range vals {
		if string(got[i]) != v {
			t.Fatalf("GetAll[%d] = %q, want insertion-ordered %q", i, got[i], v)
		}
	}
}

func TestOnSuberStrictInsertOrder(t *testing.T) {
	env := openTestEnv(t)
	s, err := NewOnSuber(env, "fels")
	if err != nil {
		t.Fatalf("NewOnSuber: %v", err)
	}
	digs := make([]string, 5)
	for i := range digs {
		digs[i] = fmt.Sprintf("dig-%d", i)
		on, err := s.PutNext("pre", []byte(digs[i]))
		if err != nil {
			t.Fatalf("PutNext: %v", err)
		}
		if on != uint64(i) {
			t.Fatalf("PutNext ordinal = %d, want %d", on, i)
		}
	}
	for i, want := range digs {
		got, ok, err := s.GetByOn("pre", uint64(i))
		if err != nil || !ok {
			t.Fatalf("GetByOn(%d): ok=%v err=%v", i, ok, err)
		}
		if string(got) != want {
			t.Fatalf("GetByOn(%d) = %q, want %q", i, got, want)
		}
	}
	latest, ok, err := s.Latest("pre")
	if err != nil || !ok || latest != uint64(len(digs)-1) {
		t.Fatalf("Latest = (%d, %v, %v), want (%d, true, nil)", latest, ok, err, len(digs)-1)
	}
}

func TestOnIoDupSuberInsertionOrderedDuplicates(t *testing.T) {
	env := openTestEnv(t)
	s, err := NewOnIoDupSuber(env, "kels")
	if err != nil {
		t.Fatalf("NewOnIoDupSuber: %v", err)
	}
	// Two competing digests at the same sn, inserted out of lexicographic
	// order: first-seen must stay first.
	if err := s.Add("pre", 3, []byte("zz")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add("pre", 3, []byte("aa")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := s.GetAll("pre", 3)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(got) != 2 || string(got[0]) != "zz" || string(got[1]) != "aa" {
		t.Fatalf("GetAll = %q, want insertion-ordered [zz aa]", got)
	}
	if other, err := s.GetAll("pre", 0); err != nil || len(other) != 0 {
		t.Fatalf("GetAll at empty sn = (%q, %v), want ([], nil)", other, err)
	}
}

func TestKomerCBORAndMGPKRoundTrip(t *testing.T) {
	env := openTestEnv(t)
	prm := PrePrm{Pidx: 7, Algo: "randy", Stem: "pre", Tier: "high"}
	for name, kind := range map[string]KomerKind{"cbor": KomerCBOR, "mgpk": KomerMGPK} {
		k, err := NewKomer[PrePrm](env, "prms_"+name, kind)
		if err != nil {
			t.Fatalf("NewKomer(%s): %v", name, err)
		}
		if err := k.Put([]byte("pre"), prm); err != nil {
			t.Fatalf("Put(%s): %v", name, err)
		}
		got, ok, err := k.Get([]byte("pre"))
		if err != nil || !ok {
			t.Fatalf("Get(%s): ok=%v err=%v", name, ok, err)
		}
		if got != prm {
			t.Fatalf("%s round trip = %+v, want %+v", name, got, prm)
		}
	}
}

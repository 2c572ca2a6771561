package mict

import (
	"reflect"
	"testing"
)

func TestAddPreservesKeyOrderAndFIFO(t *testing.T) {
	m := New[string, int]()
	m.Add("a", 1)
	m.Add("b", 2)
	m.Add("a", 3)
	m.Add("c", 4)
	m.Add("a", 5)

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("Keys() = %v", got)
	}
	if got := m.GetAll("a"); !reflect.DeepEqual(got, []int{1, 3, 5}) {
		t.Fatalf("GetAll(a) = %v", got)
	}
	if got := m.Naball("a"); !reflect.DeepEqual(got, []int{5, 3, 1}) {
		t.Fatalf("Naball(a) = %v", got)
	}
}

func TestGetAndGetLast(t *testing.T) {
	m := New[string, int]()
	m.Add("k", 10)
	m.Add("k", 20)
	m.Add("k", 30)

	if v, ok := m.Get("k"); !ok || v != 10 {
		t.Fatalf("Get(k) = %v, %v", v, ok)
	}
	if v, ok := m.GetLast("k"); !ok || v != 30 {
		t.Fatalf("GetLast(k) = %v, %v", v, ok)
	}
	if v, ok := m.Nabone("k"); !ok || v != 30 {
		t.Fatalf("Nabone(k) = %v, %v", v, ok)
	}
	if v := m.Nab("missing", -1); v != -1 {
		t.Fatalf("Nab(missing) = %v, want default", v)
	}
	if v := m.Nab("k", -1); v != 30 {
		t.Fatalf("Nab(k) = %v, want 30", v)
	}
}

func TestSetReplacesQueueInPlace(t *testing.T) {
	m := New[string, int]()
	m.Add("a", 1)
	m.Add("b", 2)
	m.Add("a", 3)

	m.Set("a", 99)

	if got := m.GetAll("a"); !reflect.DeepEqual(got, []int{99}) {
		t.Fatalf("GetAll(a) after Set = %v", got)
	}
	// Set must not disturb key-insertion order or other keys' queues.
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Keys() after Set = %v", got)
	}
	if got := m.GetAll("b"); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("GetAll(b) = %v", got)
	}
}

func TestSetOnNewKeyInsertsAtCurrentPosition(t *testing.T) {
	m := New[string, int]()
	m.Add("a", 1)
	m.Set("b", 2)
	m.Add("a", 3)

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Keys() = %v", got)
	}
}

func TestFirstsAndLasts(t *testing.T) {
	m := New[string, int]()
	m.Add("a", 1)
	m.Add("a", 2)
	m.Add("b", 10)
	m.Add("b", 20)
	m.Add("b", 30)

	firsts := m.Firsts()
	want := []Pair[string, int]{{Key: "a", Val: 1}, {Key: "b", Val: 10}}
	if !reflect.DeepEqual(firsts, want) {
		t.Fatalf("Firsts() = %v, want %v", firsts, want)
	}

	lasts := m.Lasts()
	wantLasts := []Pair[string, int]{{Key: "a", Val: 2}, {Key: "b", Val: 30}}
	if !reflect.DeepEqual(lasts, wantLasts) {
		t.Fatalf("Lasts() = %v, want %v", lasts, wantLasts)
	}
}

func TestItemsVisitsKeyOrderThenFIFO(t *testing.T) {
	m := New[string, int]()
	m.Add("b", 1)
	m.Add("a", 2)
	m.Add("b", 3)
	m.Add("a", 4)

	items := m.Items()
	want := []Pair[string, int]{
		{Key: "b", Val: 1},
		{Key: "b", Val: 3},
		{Key: "a", Val: 2},
		{Key: "a", Val: 4},
	}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("Items() = %v, want %v", items, want)
	}
}

func TestContainsKeyLenIsEmpty(t *testing.T) {
	m := New[string, int]()
	if !m.IsEmpty() || m.Len() != 0 {
		t.Fatalf("new Mict should be empty")
	}
	m.Add("a", 1)
	if m.IsEmpty() || m.Len() != 1 {
		t.Fatalf("Mict with one key should report Len()==1")
	}
	if !m.ContainsKey("a") || m.ContainsKey("z") {
		t.Fatalf("ContainsKey mismatch")
	}
}

func TestFromPairs(t *testing.T) {
	m := FromPairs([]Pair[string, int]{
		{Key: "x", Val: 1},
		{Key: "y", Val: 2},
		{Key: "x", Val: 3},
	})
	if got := m.GetAll("x"); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("GetAll(x) = %v", got)
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("Keys() = %v", got)
	}
}

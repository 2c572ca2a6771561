package eventing

import (
	"strings"
	"testing"

	"keri/serder"
)

func TestReceiptEventBuilderS4(t *testing.T) {
	pre := strings.Repeat("D", 44)
	said := strings.Repeat("E", 44)
	ser, err := NewReceiptEventBuilder(pre, 0, said).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	sad := ser.Sad()
	if got, _ := sad.GetString("t"); got != "rct" {
		t.Fatalf("t = %q", got)
	}
	if got, _ := sad.GetString("d"); got != said {
		t.Fatalf("d = %q, want externally supplied said %q", got, said)
	}
	if got, _ := sad.GetString("s"); got != "0" {
		t.Fatalf("s = %q", got)
	}
	if sad.Keys()[0] != "v" || sad.Keys()[1] != "t" || sad.Keys()[2] != "d" || sad.Keys()[3] != "i" || sad.Keys()[4] != "s" {
		t.Fatalf("rct field order = %v, want v,t,d,i,s", sad.Keys())
	}
}

func TestInteractEventBuilderS5(t *testing.T) {
	pre := strings.Repeat("D", 44)
	dig := strings.Repeat("E", 44)
	ser, err := NewInteractEventBuilder(pre, dig).WithSn(2).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	sad := ser.Sad()
	if got, _ := sad.GetString("t"); got != "ixn" {
		t.Fatalf("t = %q", got)
	}
	if got, _ := sad.GetString("s"); got != "2" {
		t.Fatalf("s = %q", got)
	}
	if got, _ := sad.GetString("p"); got != dig {
		t.Fatalf("p = %q", got)
	}
	want := []string{"v", "t", "d", "i", "s", "p", "a"}
	for i, k := range want {
		if sad.Keys()[i] != k {
			t.Fatalf("ixn field order = %v, want %v", sad.Keys(), want)
		}
	}
	if ser.Said() == "" {
		t.Fatalf("ixn must have a self-derived SAID")
	}
	if !strings.HasPrefix(ser.Said(), "E") {
		t.Fatalf("said %q should use the blake3-256 code", ser.Said())
	}
}

func TestQueryEventBuilderS6(t *testing.T) {
	pre := strings.Repeat("D", 44)
	ser, err := NewQueryEventBuilder("log", map[string]any{"i": pre}, "2021-01-01T00:00:00.000000+00:00").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	sad := ser.Sad()
	want := []string{"v", "t", "d", "dt", "r", "rr", "q"}
	for i, k := range want {
		if sad.Keys()[i] != k {
			t.Fatalf("qry field order = %v, want %v", sad.Keys(), want)
		}
	}
	if got, _ := sad.GetString("r"); got != "log" {
		t.Fatalf("r = %q", got)
	}
	if got, _ := sad.GetString("dt"); got != "2021-01-01T00:00:00.000000+00:00" {
		t.Fatalf("dt = %q", got)
	}
}

func TestInceptionEventBuilderDefaultToad(t *testing.T) {
	key := strings.Repeat("D", 44)
	ser, err := InceptionEventBuilder{
		Keys:      []string{key},
		Witnesses: []string{"W1", "W2", "W3"},
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, _ := ser.Sad().GetString("bt"); got != "2" {
		t.Fatalf("bt = %q, want default toad 2 for 3 witnesses", got)
	}
	if err := ValidateIlkFields(ser.Sad()); err != nil {
		t.Fatalf("ValidateIlkFields: %v", err)
	}
}

func TestRotationEventBuilder(t *testing.T) {
	pre := strings.Repeat("D", 44)
	dig := strings.Repeat("E", 44)
	key := strings.Repeat("D", 44)
	ser, err := RotationEventBuilder{
		Pre:  pre,
		Sn:   1,
		Dig:  dig,
		Keys: []string{key},
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	sad := ser.Sad()
	if got, _ := sad.GetString("t"); got != "rot" {
		t.Fatalf("t = %q", got)
	}
	if got, _ := sad.GetString("s"); got != "1" {
		t.Fatalf("s = %q", got)
	}
	if got, _ := sad.GetString("p"); got != dig {
		t.Fatalf("p = %q", got)
	}
	want := []string{"v", "t", "d", "i", "s", "p", "kt", "k", "nt", "n", "bt", "br", "ba", "a"}
	for i, k := range want {
		if sad.Keys()[i] != k {
			t.Fatalf("rot field order = %v, want %v", sad.Keys(), want)
		}
	}
	if ser.Said() == "" {
		t.Fatalf("rot must have a self-derived SAID")
	}
}

func TestRotationEventBuilderRejectsSnZero(t *testing.T) {
	_, err := RotationEventBuilder{Pre: strings.Repeat("D", 44)}.Build()
	if err == nil {
		t.Fatalf("Build: want error for sn=0, got nil")
	}
}

func TestRotationEventBuilderDelegatedEmitsDrt(t *testing.T) {
	pre := strings.Repeat("D", 44)
	dig := strings.Repeat("E", 44)
	ser, err := RotationEventBuilder{
		Pre:       pre,
		Sn:        1,
		Dig:       dig,
		Keys:      []string{strings.Repeat("D", 44)},
		Delegated: true,
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, _ := ser.Sad().GetString("t"); got != "drt" {
		t.Fatalf("t = %q, want drt", got)
	}
}

func TestDelegatedInceptionEventBuilder(t *testing.T) {
	key := strings.Repeat("D", 44)
	delegator := strings.Repeat("E", 44)
	ser, err := DelegatedInceptionEventBuilder{
		InceptionEventBuilder: InceptionEventBuilder{Keys: []string{key}},
		Delegator:             delegator,
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	sad := ser.Sad()
	if got, _ := sad.GetString("t"); got != "dip" {
		t.Fatalf("t = %q", got)
	}
	if got, _ := sad.GetString("di"); got != delegator {
		t.Fatalf("di = %q", got)
	}
	if got, _ := sad.GetString("i"); got != key {
		t.Fatalf("i = %q, want derived from Keys[0]", got)
	}
	if err := ValidateIlkFields(sad); err != nil {
		t.Fatalf("ValidateIlkFields: %v", err)
	}
}

func TestFromRawRoundTrip(t *testing.T) {
	pre := strings.Repeat("D", 44)
	dig := strings.Repeat("E", 44)
	ser, err := NewInteractEventBuilder(pre, dig).WithSn(3).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	back, err := serder.FromRaw(ser.Raw())
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	if back.Said() != ser.Said() {
		t.Fatalf("round trip said mismatch: %q vs %q", back.Said(), ser.Said())
	}
}

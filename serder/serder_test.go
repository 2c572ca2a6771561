package serder

import (
	"strings"
	"testing"
)

func TestVersionStringRoundTrip(t *testing.T) {
	vs := BuildVersionString(ProtoKERI, DefaultVersion, KindJSON, 165)
	if len(vs) != VersionStrLen {
		t.Fatalf("len = %d, want %d", len(vs), VersionStrLen)
	}
	proto, vrsn, kind, size, err := ParseVersionString(vs)
	if err != nil {
		t.Fatalf("ParseVersionString: %v", err)
	}
	if proto != ProtoKERI || vrsn != DefaultVersion || kind != KindJSON || size != 165 {
		t.Fatalf("parsed (%q,%q,%q,%d), want (%q,%q,%q,165)", proto, vrsn, kind, size, ProtoKERI, DefaultVersion, KindJSON)
	}
}

func TestParseVersionStringRejectsMalformed(t *testing.T) {
	if _, _, _, _, err := ParseVersionString("not a version string"); err == nil {
		t.Fatalf("ParseVersionString: want error for malformed input")
	}
}

func TestSADMarshalUnmarshalPreservesOrder(t *testing.T) {
	sad := NewSAD()
	sad.Set("v", "KERI10JSON000000_")
	sad.Set("t", "icp")
	sad.Set("i", strings.Repeat("D", 44))

	raw, err := sad.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	back := NewSAD()
	if err := back.UnmarshalJSON(raw); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got := back.Keys(); len(got) != 3 || got[0] != "v" || got[1] != "t" || got[2] != "i" {
		t.Fatalf("Keys() = %v, want [v t i]", got)
	}
	if got, _ := back.GetString("t"); got != "icp" {
		t.Fatalf("t = %q", got)
	}
}

func TestSADSetOverwritesInPlace(t *testing.T) {
	sad := NewSAD()
	sad.Set("a", "1")
	sad.Set("b", "2")
	sad.Set("a", "3")
	if got := sad.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b]", got)
	}
	if v, _ := sad.GetString("a"); v != "3" {
		t.Fatalf("a = %q, want overwritten value 3", v)
	}
}

func TestSizeifySubstitutesActualSize(t *testing.T) {
	sad := NewSAD()
	sad.Set("v", BuildVersionString(ProtoKERI, DefaultVersion, KindJSON, 0))
	sad.Set("t", "icp")
	sad.Set("i", strings.Repeat("D", 44))

	raw, proto, kind, vrsn, outSad, err := Sizeify(sad, KindJSON, DefaultVersion)
	if err != nil {
		t.Fatalf("Sizeify: %v", err)
	}
	if proto != ProtoKERI || kind != KindJSON || vrsn != DefaultVersion {
		t.Fatalf("Sizeify returned (%q,%q,%q)", proto, kind, vrsn)
	}
	vField, _ := outSad.GetString("v")
	_, _, _, size, err := ParseVersionString(vField)
	if err != nil {
		t.Fatalf("ParseVersionString: %v", err)
	}
	if size != len(raw) {
		t.Fatalf("sized version string says %d, raw is %d bytes", size, len(raw))
	}
}

func TestDeriveAndVerifyRoundTrip(t *testing.T) {
	sad := NewSAD()
	sad.Set("v", BuildVersionString(ProtoKERI, DefaultVersion, KindJSON, 0))
	sad.Set("t", "icp")
	sad.Set("d", "")
	sad.Set("i", strings.Repeat("D", 44))

	raw, outSad, said, err := Derive(sad, KindJSON, DefaultVersion, "E", "d")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if said == "" || !strings.HasPrefix(said, "E") {
		t.Fatalf("said = %q, want blake3-256-coded SAID", said)
	}
	if got, _ := outSad.GetString("d"); got != said {
		t.Fatalf("outSad[d] = %q, want %q", got, said)
	}

	ok, err := Verify(outSad, KindJSON, DefaultVersion, "E", "d")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("Verify: want true for an untampered event")
	}

	back, err := FromRaw(raw)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	if back.Said() != said {
		t.Fatalf("FromRaw said = %q, want %q", back.Said(), said)
	}
	if back.Ilk() != "icp" || back.Pre() != strings.Repeat("D", 44) {
		t.Fatalf("FromRaw ilk/pre = %q/%q", back.Ilk(), back.Pre())
	}
}

func TestVerifyDetectsTamperedField(t *testing.T) {
	sad := NewSAD()
	sad.Set("v", BuildVersionString(ProtoKERI, DefaultVersion, KindJSON, 0))
	sad.Set("t", "icp")
	sad.Set("d", "")
	sad.Set("i", strings.Repeat("D", 44))

	_, outSad, _, err := Derive(sad, KindJSON, DefaultVersion, "E", "d")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	outSad.Set("i", strings.Repeat("Z", 44))

	ok, err := Verify(outSad, KindJSON, DefaultVersion, "E", "d")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("Verify: want false once a non-said field is tampered with")
	}
}

func TestFromRawRejectsSizeMismatch(t *testing.T) {
	sad := NewSAD()
	sad.Set("v", BuildVersionString(ProtoKERI, DefaultVersion, KindJSON, 0))
	sad.Set("t", "icp")
	sad.Set("d", "")

	raw, _, _, err := Derive(sad, KindJSON, DefaultVersion, "E", "d")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if _, err := FromRaw(append(raw, '\n')); err == nil {
		t.Fatalf("FromRaw: want error when raw length does not match the version string's size field")
	}
}

package serder

import (
	"strings"
	"testing"
)

func TestSerializeDeserializeCBORAndMGPK(t *testing.T) {
	sad := NewSAD()
	sad.Set("v", BuildVersionString(ProtoKERI, DefaultVersion, KindCBOR, 0))
	sad.Set("t", "rct")
	sad.Set("d", strings.Repeat("E", 44))
	sad.Set("i", strings.Repeat("D", 44))
	sad.Set("s", "0")

	for _, kind := range []Kind{KindCBOR, KindMGPK} {
		raw, err := Serialize(sad, kind)
		if err != nil {
			t.Fatalf("Serialize(%s): %v", kind, err)
		}
		back, err := Deserialize(raw, kind)
		if err != nil {
			t.Fatalf("Deserialize(%s): %v", kind, err)
		}
		wantKeys := sad.Keys()
		gotKeys := back.Keys()
		if len(gotKeys) != len(wantKeys) {
			t.Fatalf("%s: got %d keys, want %d", kind, len(gotKeys), len(wantKeys))
		}
		for i, k := range wantKeys {
			if gotKeys[i] != k {
				t.Fatalf("%s: key order %v, want %v", kind, gotKeys, wantKeys)
			}
			want, _ := sad.GetString(k)
			got, _ := back.GetString(k)
			if got != want {
				t.Fatalf("%s: field %q = %q, want %q", kind, k, got, want)
			}
		}
	}
}

func TestSizeifyCBORSizeMatchesRaw(t *testing.T) {
	sad := NewSAD()
	sad.Set("v", BuildVersionString(ProtoKERI, DefaultVersion, KindCBOR, 0))
	sad.Set("t", "rct")
	sad.Set("d", strings.Repeat("E", 44))

	raw, _, kind, _, outSad, err := Sizeify(sad, KindCBOR, DefaultVersion)
	if err != nil {
		t.Fatalf("Sizeify: %v", err)
	}
	if kind != KindCBOR {
		t.Fatalf("kind = %q, want CBOR", kind)
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

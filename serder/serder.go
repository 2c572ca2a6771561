package serder

// Serder (C6, spec ssec 3-4.4) is the immutable bundle of raw bytes, parsed
// SAD, version, and SAID that every KEL/reply event is represented as once
// it crosses into the rest of the system.

import (
	"encoding/json"
	"fmt"

	"keri/kerierr"
)

type Serder struct {
	raw     []byte
	proto   string
	kind    Kind
	version string
	sad     *SAD
	said    string
}

func (s *Serder) Raw() []byte      { out := make([]byte, len(s.raw)); copy(out, s.raw); return out }
func (s *Serder) Proto() string    { return s.proto }
func (s *Serder) Kind() Kind       { return s.kind }
func (s *Serder) Version() string  { return s.version }
func (s *Serder) Sad() *SAD        { return s.sad }
func (s *Serder) Said() string     { return s.said }

func (s *Serder) Ilk() string {
	t, _ := s.sad.GetString("t")
	return t
}

func (s *Serder) Pre() string {
	i, _ := s.sad.GetString("i")
	return i
}

// Pretty re-serializes the SAD as indented JSON for logging/debugging.
// Never used for wire bytes or SAID computation.
func (s *Serder) Pretty() (string, error) {
	b, err := json.MarshalIndent(s.sad, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromRaw parses an on-wire event, checking its version string's kind and
// size against the wire bytes. The "d" field is taken as the SAID as is; it
// is not rederived or verified here (Verify does that).
func FromRaw(raw []byte) (*Serder, error) {
	if len(raw) < VersionStrLen {
		return nil, fmt.Errorf("%w: event too short for a version string", kerierr.ErrShortage)
	}
	// Sniff kind from the JSON-only fast path: non-JSON kinds must be
	// decoded before the version string is even visible, so try JSON
	// first and otherwise try decoding as CBOR, then MGPK, taking the first
	// kind that yields a "v" field.
	var sad *SAD
	var kind Kind
	if raw[0] == '{' {
		sad = NewSAD()
		if err := sad.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("serder: json decode: %w", err)
		}
		kind = KindJSON
	} else {
		var err error
		kind, err = sniffKind(raw)
		if err != nil {
			return nil, err
		}
		sad, err = Deserialize(raw, kind)
		if err != nil {
			return nil, err
		}
	}

	vField, ok := sad.GetString("v")
	if !ok {
		return nil, fmt.Errorf("%w: event missing \"v\" field", kerierr.ErrValidation)
	}
	proto, vrsn, parsedKind, size, err := ParseVersionString(vField)
	if err != nil {
		return nil, err
	}
	if parsedKind != kind {
		return nil, fmt.Errorf("%w: version string kind %q does not match wire kind %q", kerierr.ErrValidation, parsedKind, kind)
	}
	if size != len(raw) {
		return nil, fmt.Errorf("%w: version string size %d does not match raw length %d", kerierr.ErrValidation, size, len(raw))
	}

	said, _ := sad.GetString("d")
	return &Serder{raw: raw, proto: proto, kind: kind, version: vrsn, sad: sad, said: said}, nil
}

func sniffKind(raw []byte) (Kind, error) {
	if _, _, _, err := tryDeserializeFindVersion(raw, KindCBOR); err == nil {
		return KindCBOR, nil
	}
	if _, _, _, err := tryDeserializeFindVersion(raw, KindMGPK); err == nil {
		return KindMGPK, nil
	}
	return "", fmt.Errorf("%w: could not determine serialization kind", kerierr.ErrInvalidFormat)
}

func tryDeserializeFindVersion(raw []byte, kind Kind) (*SAD, string, Kind, error) {
	sad, err := Deserialize(raw, kind)
	if err != nil {
		return nil, "", "", err
	}
	v, ok := sad.GetString("v")
	if !ok {
		return nil, "", "", fmt.Errorf("%w: no v field", kerierr.ErrInvalidFormat)
	}
	return sad, v, kind, nil
}

// FromSAD builds a Serder from a SAD that already carries its final "d"
// SAID and "v" version string (the common case: a builder called Derive
// itself and already has the sized raw bytes).
func FromSAD(raw []byte, sad *SAD) (*Serder, error) {
	vField, ok := sad.GetString("v")
	if !ok {
		return nil, fmt.Errorf("%w: SAD missing \"v\" field", kerierr.ErrValidation)
	}
	proto, vrsn, kind, _, err := ParseVersionString(vField)
	if err != nil {
		return nil, err
	}
	said, _ := sad.GetString("d")
	return &Serder{raw: raw, proto: proto, kind: kind, version: vrsn, sad: sad, said: said}, nil
}

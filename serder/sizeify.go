package serder

// sizeify (spec ssec 4.4) computes a SAD's wire size and substitutes it
// into the "v" field in place, which works without re-serializing because
// every version string is exactly VersionStrLen characters regardless of
// the size value it carries.

import (
	"bytes"
	"fmt"

	"keri/kerierr"
)

// versionSearchWindow bounds how far into the raw bytes sizeify looks for
// the version-string field before giving up — generous enough to cover
// CBOR/MGPK's extra framing bytes ahead of "v", still far short of a full
// parse.
const versionSearchWindow = 32

// Sizeify serializes sad in kind/vrsn (falling back to whatever the
// existing "v" field already encodes when either is empty), then rewrites
// "v" with the actual serialized size. It returns the final raw bytes, the
// parsed protocol/kind/version, and the updated SAD.
func Sizeify(sad *SAD, kind Kind, vrsn string) (raw []byte, proto string, outKind Kind, outVrsn string, outSad *SAD, err error) {
	vField, ok := sad.GetString("v")
	if !ok {
		return nil, "", "", "", nil, fmt.Errorf("%w: SAD missing \"v\" field", kerierr.ErrValidation)
	}
	curProto, curVrsn, curKind, _, perr := ParseVersionString(vField)
	if perr != nil {
		return nil, "", "", "", nil, perr
	}
	proto = curProto
	outKind = kind
	if outKind == "" {
		outKind = curKind
	}
	outVrsn = vrsn
	if outVrsn == "" {
		outVrsn = curVrsn
	}

	raw, err = Serialize(sad, outKind)
	if err != nil {
		return nil, "", "", "", nil, err
	}
	newVS := BuildVersionString(proto, outVrsn, outKind, len(raw))
	if len(newVS) != VersionStrLen {
		return nil, "", "", "", nil, fmt.Errorf("%w: version string length changed", kerierr.ErrInvalidSize)
	}

	window := raw
	if len(window) > versionSearchWindow {
		window = window[:versionSearchWindow]
	}
	idx := bytes.Index(window, []byte(vField))
	if idx < 0 {
		return nil, "", "", "", nil, fmt.Errorf("%w: version string not found near start of serialization", kerierr.ErrValidation)
	}
	before := len(raw)
	raw = append(append(append([]byte{}, raw[:idx]...), newVS...), raw[idx+VersionStrLen:]...)
	if len(raw) != before {
		return nil, "", "", "", nil, fmt.Errorf("%w: size substitution altered total length", kerierr.ErrInvalidSize)
	}

	outSad = sad.Clone()
	outSad.Set("v", newVS)
	return raw, proto, outKind, outVrsn, outSad, nil
}

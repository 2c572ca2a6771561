package serder

// Version strings (spec ssec 4.4): PPPPVVKKKKSSSSSS_ — 4-char protocol,
// 2-hex-char protocol version, 4-char serialization kind, 6-hex-char size,
// trailing underscore. Fixed width regardless of size value, which is what
// lets sizeify substitute a freshly-computed size in place without
// disturbing the rest of the serialization.

import (
	"fmt"
	"regexp"

	"keri/kerierr"
)

const (
	ProtoKERI      = "KERI"
	DefaultVersion = "10"
	VersionStrLen  = 17
)

type Kind string

const (
	KindJSON Kind = "JSON"
	KindCBOR Kind = "CBOR"
	KindMGPK Kind = "MGPK"
)

var versionRe = regexp.MustCompile(`^([A-Z]{4})([0-9a-f]{2})([A-Z]{4})([0-9a-f]{6})_`)

// ParseVersionString extracts (proto, vrsn, kind, size) from a well-formed
// version string.
func ParseVersionString(s string) (proto, vrsn string, kind Kind, size int, err error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return "", "", "", 0, fmt.Errorf("%w: %q is not a version string", kerierr.ErrInvalidFormat, s)
	}
	var n int
	if _, err := fmt.Sscanf(m[4], "%06x", &n); err != nil {
		return "", "", "", 0, fmt.Errorf("%w: bad size field %q", kerierr.ErrInvalidFormat, m[4])
	}
	return m[1], m[2], Kind(m[3]), n, nil
}

// BuildVersionString assembles a version string for the given fields. The
// result is always VersionStrLen characters, independent of size's value.
func BuildVersionString(proto, vrsn string, kind Kind, size int) string {
	return fmt.Sprintf("%s%s%s%06x_", proto, vrsn, string(kind), size)
}

package cesr

// Number (C5) restricts Matter to the numeric code family and provides a
// big-endian unsigned integer view (spec ssec 4.3).

import (
	"fmt"
	"math/big"

	"keri/kerierr"
)

type Number struct{ *Matter }

// numberThresholds lists (threshold, code) pairs in ascending order. A
// value n selects the first code whose raw size can hold n, i.e. whose
// threshold is >= n. Huge is deliberately excluded from automatic
// selection — spec ssec 9 requires callers ask for it explicitly via Huge().
var numberThresholds = []struct {
	max  *big.Int
	code string
}{
	{pow256(2), CodeNumShort.Code},
	{pow256(5), CodeNumTall.Code},
	{pow256(8), CodeNumBig.Code},
	{pow256(11), CodeNumLarge.Code},
	{pow256(14), CodeNumGreat.Code},
	{pow256(17), CodeNumVast.Code},
}

func pow256(k int) *big.Int {
	b := big.NewInt(256)
	r := big.NewInt(1)
	for i := 0; i < k; i++ {
		r.Mul(r, b)
	}
	r.Sub(r, big.NewInt(1))
	return r
}

// NumberCode selects the smallest numeric code whose raw size holds n.
func NumberCode(n *big.Int) (string, error) {
	if n.Sign() < 0 {
		return "", fmt.Errorf("%w: number must be non-negative", kerierr.ErrInvalidValue)
	}
	for _, t := range numberThresholds {
		if n.Cmp(t.max) <= 0 {
			return t.code, nil
		}
	}
	return "", fmt.Errorf("%w: number exceeds widest non-huge code, use Huge", kerierr.ErrInvalidValue)
}

// FromNum builds a Number holding n, selecting the smallest fitting code.
func FromNum(n uint64) (*Number, error) {
	return fromBigNum(new(big.Int).SetUint64(n))
}

func fromBigNum(n *big.Int) (*Number, error) {
	code, err := NumberCode(n)
	if err != nil {
		return nil, err
	}
	return newNumberWithCode(code, n)
}

func newNumberWithCode(code string, n *big.Int) (*Number, error) {
	sz, ok := LookupCode(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerierr.ErrUnsupportedCode, code)
	}
	raw := n.Bytes()
	if len(raw) > sz.RS {
		return nil, fmt.Errorf("%w: %s overflows code %q raw size %d", kerierr.ErrInvalidSize, n.String(), code, sz.RS)
	}
	padded := make([]byte, sz.RS)
	copy(padded[sz.RS-len(raw):], raw)
	m, err := NewMatter(NewMatterOpts{Code: code, Raw: padded})
	if err != nil {
		return nil, err
	}
	return &Number{Matter: m}, nil
}

// Huge forces the Huge numeric code (16 raw bytes, 256^16-1 capacity)
// regardless of value, per spec ssec 9's resolution of the huge-threshold
// ambiguity. A value above 256^16-1 does not fit and is an error.
func (n *Number) Huge() (*Number, error) {
	return newNumberWithCode(CodeNumHuge.Code, n.Num())
}

// Num returns the big-endian unsigned integer value.
func (n *Number) Num() *big.Int {
	return new(big.Int).SetBytes(n.Raw())
}

// Numh returns the number as a lowercase hex string with no leading zeros
// ("0" for zero), the conventional sequence-number text form used
// throughout KEL records.
func (n *Number) Numh() string {
	v := n.Num()
	if v.Sign() == 0 {
		return "0"
	}
	return v.Text(16)
}

// NumberFromNumh parses a hex sequence-number string into a Number.
func NumberFromNumh(numh string) (*Number, error) {
	v, ok := new(big.Int).SetString(numh, 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not hex", kerierr.ErrInvalidFormat, numh)
	}
	return fromBigNum(v)
}

package cesr

// Tholder (spec ssec 4.4, "kt" field) represents a signing threshold, either
// a simple integer count or a set of weighted clauses expressed as
// fractions (e.g. [["1/2","1/2","1/2"],["1","1"]]). It decides whether a
// set of signing-key indices satisfies the threshold.

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"keri/kerierr"
)

type Tholder struct {
	isWeighted bool
	num        int64        // simple-threshold case
	clauses    [][]*big.Rat // weighted case: each clause is one AND-group of OR'd weights
	size       int
}

// NewTholderFromNum builds an integer-threshold Tholder.
func NewTholderFromNum(n int64) (*Tholder, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: threshold must be non-negative", kerierr.ErrInvalidValue)
	}
	return &Tholder{num: n, size: int(n)}, nil
}

// NewTholderFromWeights builds a weighted-threshold Tholder from clauses of
// fractional weight strings ("1/2", "1", "0").
func NewTholderFromWeights(clauses [][]string) (*Tholder, error) {
	if len(clauses) == 0 {
		return nil, fmt.Errorf("%w: weighted threshold needs at least one clause", kerierr.ErrInvalidValue)
	}
	t := &Tholder{isWeighted: true}
	for _, clause := range clauses {
		if len(clause) == 0 {
			return nil, fmt.Errorf("%w: empty threshold clause", kerierr.ErrInvalidValue)
		}
		rats := make([]*big.Rat, 0, len(clause))
		for _, w := range clause {
			r, ok := parseFrac(w)
			if !ok {
				return nil, fmt.Errorf("%w: bad threshold weight %q", kerierr.ErrInvalidFormat, w)
			}
			rats = append(rats, r)
			t.size++
		}
		t.clauses = append(t.clauses, rats)
	}
	return t, nil
}

func parseFrac(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		parts := strings.SplitN(s, "/", 2)
		if len(parts) != 2 {
			return nil, false
		}
		num, err1 := strconv.ParseInt(parts[0], 10, 64)
		den, err2 := strconv.ParseInt(parts[1], 10, 64)
		if err1 != nil || err2 != nil || den == 0 {
			return nil, false
		}
		return big.NewRat(num, den), true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return big.NewRat(n, 1), true
}

// Size is the number of signing keys this threshold is defined over (for
// simple thresholds, a lower bound of num; callers pass the true key count).
func (t *Tholder) Size() int { return t.size }

// Weighted reports whether this is a fractional-clause threshold.
func (t *Tholder) Weighted() bool { return t.isWeighted }

// Satisfied reports whether the set of signing indices (0-based, into the
// full key list) meets this threshold.
func (t *Tholder) Satisfied(indices []int) bool {
	if !t.isWeighted {
		return int64(len(indices)) >= t.num
	}
	have := make(map[int]bool, len(indices))
	for _, i := range indices {
		have[i] = true
	}
	pos := 0
	for _, clause := range t.clauses {
		sum := new(big.Rat)
		for _, w := range clause {
			if have[pos] {
				sum.Add(sum, w)
			}
			pos++
		}
		if sum.Cmp(big.NewRat(1, 1)) < 0 {
			return false
		}
	}
	return true
}

// Num returns the simple integer threshold, if this Tholder is not weighted.
func (t *Tholder) Num() (int64, bool) {
	if t.isWeighted {
		return 0, false
	}
	return t.num, true
}

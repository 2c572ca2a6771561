package cesr

// Dater (C5) restricts Matter to the date-time code family and provides an
// RFC-3339 text view (spec ssec 4.3). The raw content is the literal UTF-8
// bytes of a fixed-width ISO-8601/RFC-3339 string (with microsecond
// precision and explicit UTC offset), space-padded to the code's raw size.

import (
	"fmt"
	"strings"
	"time"

	"keri/kerierr"
)

const daterLayout = "2006-01-02T15:04:05.000000-07:00"

type Dater struct{ *Matter }

// NewDaterFromTime builds a Dater from a time.Time.
func NewDaterFromTime(t time.Time) (*Dater, error) {
	return NewDaterFromDTS(t.UTC().Format(daterLayout))
}

// NewDaterFromDTS builds a Dater from an RFC-3339-with-microseconds string.
func NewDaterFromDTS(dts string) (*Dater, error) {
	if _, err := time.Parse(daterLayout, dts); err != nil {
		return nil, fmt.Errorf("%w: %v", kerierr.ErrInvalidFormat, err)
	}
	sz, _ := LookupCode(CodeDateTime.Code)
	raw := make([]byte, sz.RS)
	b := []byte(dts)
	if len(b) > sz.RS {
		return nil, fmt.Errorf("%w: datetime string longer than raw size %d", kerierr.ErrInvalidSize, sz.RS)
	}
	copy(raw, b)
	for i := len(b); i < len(raw); i++ {
		raw[i] = ' '
	}
	m, err := NewMatter(NewMatterOpts{Code: CodeDateTime.Code, Raw: raw})
	if err != nil {
		return nil, err
	}
	return &Dater{Matter: m}, nil
}

// Dts returns the RFC-3339 string (trailing pad stripped).
func (d *Dater) Dts() string {
	return strings.TrimRight(string(d.Raw()), " ")
}

// Dt parses and returns the datetime.
func (d *Dater) Dt() (time.Time, error) {
	return time.Parse(daterLayout, d.Dts())
}

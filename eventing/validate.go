package eventing

// ValidateIlkFields checks that a parsed SAD carries every field its ilk
// requires (spec ssec 4.4, "Ilks and their required fields").

import (
	"fmt"

	"keri/kerierr"
	"keri/serder"
)

var ilkRequiredFields = map[string][]string{
	"icp": {"v", "t", "d", "i", "s", "kt", "k", "nt", "n", "bt", "b", "c", "a"},
	"rot": {"v", "t", "d", "i", "s", "p", "kt", "k", "nt", "n", "bt", "br", "ba", "a"},
	"drt": {"v", "t", "d", "i", "s", "p", "kt", "k", "nt", "n", "bt", "br", "ba", "a"},
	"ixn": {"v", "t", "d", "i", "s", "p", "a"},
	"dip": {"v", "t", "d", "i", "s", "kt", "k", "nt", "n", "bt", "b", "c", "a", "di"},
	"rct": {"v", "t", "d", "i", "s"},
	"qry": {"v", "t", "d", "dt", "r", "rr", "q"},
	"rpy": {"v", "t", "d", "dt", "r", "a"},
}

// ValidateIlkFields reports an error naming the first missing field, or nil
// if sad carries every field its "t" ilk requires.
func ValidateIlkFields(sad *serder.SAD) error {
	ilk, ok := sad.GetString("t")
	if !ok {
		return fmt.Errorf("%w: event missing \"t\" field", kerierr.ErrValidation)
	}
	required, ok := ilkRequiredFields[ilk]
	if !ok {
		return fmt.Errorf("%w: unknown ilk %q", kerierr.ErrValidation, ilk)
	}
	for _, f := range required {
		if _, ok := sad.Get(f); !ok {
			return fmt.Errorf("%w: ilk %q missing required field %q", kerierr.ErrValidation, ilk, f)
		}
	}
	if ilk == "icp" || ilk == "dip" {
		if sn, _ := sad.GetString("s"); sn != "0" {
			return fmt.Errorf("%w: %q must have sequence number 0", kerierr.ErrValidation, ilk)
		}
	}
	if ilk == "ixn" {
		if sn, _ := sad.GetString("s"); sn == "0" {
			return fmt.Errorf("%w: ixn must have sequence number >= 1", kerierr.ErrValidation)
		}
	}
	return nil
}

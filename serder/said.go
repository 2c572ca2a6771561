package serder

// Derive computes a SAID over sad (spec ssec 4.4): said-fields are first
// set to equal-length placeholders, the SAD is sized, then the digest of
// the sized raw bytes is substituted back into the said-fields. Because
// the placeholder and the real digest share the same qb64 length, that
// substitution is a fixed point after exactly one pass — no re-sizing
// needed, since total length never changes.

import (
	"bytes"
	"fmt"

	"keri/cesr"
	"keri/kerierr"
)

// Derive mutates a clone of sad's said-fields (saidFields, "d" is the
// conventional single-field case but delegating-event kinds may carry more
// than one cross-referencing field) and returns the final raw bytes, sad,
// and the primary SAID (the first field in saidFields).
func Derive(sad *SAD, kind Kind, vrsn string, code string, saidFields ...string) (raw []byte, outSad *SAD, said string, err error) {
	if len(saidFields) == 0 {
		saidFields = []string{"d"}
	}
	sz, ok := cesr.LookupCode(code)
	if !ok {
		return nil, nil, "", fmt.Errorf("%w: %q", kerierr.ErrUnsupportedCode, code)
	}
	placeholder := bytes.Repeat([]byte("#"), sz.FS)

	work := sad.Clone()
	for _, f := range saidFields {
		work.Set(f, string(placeholder))
	}

	raw, _, _, _, work, err = Sizeify(work, kind, vrsn)
	if err != nil {
		return nil, nil, "", err
	}

	d, err := cesr.Digest(raw, code)
	if err != nil {
		return nil, nil, "", err
	}
	said = d.QB64()
	if len(said) != sz.FS {
		return nil, nil, "", fmt.Errorf("%w: digest qb64 length does not match placeholder", kerierr.ErrInvalidSize)
	}

	for _, f := range saidFields {
		raw = bytes.Replace(raw, placeholder, []byte(said), 1)
		work.Set(f, said)
	}
	return raw, work, said, nil
}

// Verify rederives the SAID of the SAD that raw was built from (by
// re-placeholdering saidFields and re-sizing) and compares it against the
// said currently stored in sad[saidFields[0]].
func Verify(sad *SAD, kind Kind, vrsn string, code string, saidFields ...string) (bool, error) {
	if len(saidFields) == 0 {
		saidFields = []string{"d"}
	}
	want, ok := sad.GetString(saidFields[0])
	if !ok {
		return false, fmt.Errorf("%w: SAD missing %q field", kerierr.ErrValidation, saidFields[0])
	}
	_, _, got, err := Derive(sad, kind, vrsn, code, saidFields...)
	if err != nil {
		return false, err
	}
	return got == want, nil
}

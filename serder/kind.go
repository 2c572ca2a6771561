package serder

// Serialize/Deserialize dispatch a SAD through one of the three supported
// wire kinds. JSON uses SAD's own order-preserving (Un)MarshalJSON. CBOR
// and MGPK libraries encode Go maps in their own (unordered, or
// canonical-sorted) convention, which would relocate the "v" field away
// from the front of the buffer that sizeify depends on — so both are
// framed as a flat [k1, v1, k2, v2, ...] array instead of a native map,
// which both libraries encode and decode in strict insertion order.

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"

	"keri/kerierr"
)

// Serialize encodes sad per kind.
func Serialize(sad *SAD, kind Kind) ([]byte, error) {
	switch kind {
	case KindJSON:
		return sad.MarshalJSON()
	case KindCBOR:
		return cbor.Marshal(flatten(sad))
	case KindMGPK:
		return msgpack.Marshal(flatten(sad))
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", kerierr.ErrInvalidValue, kind)
	}
}

// Deserialize decodes raw per kind into an order-preserving SAD.
func Deserialize(raw []byte, kind Kind) (*SAD, error) {
	switch kind {
	case KindJSON:
		sad := NewSAD()
		if err := sad.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("serder: json decode: %w", err)
		}
		return sad, nil
	case KindCBOR:
		var flat []any
		if err := cbor.Unmarshal(raw, &flat); err != nil {
			return nil, fmt.Errorf("serder: cbor decode: %w", err)
		}
		return unflatten(flat)
	case KindMGPK:
		var flat []any
		if err := msgpack.Unmarshal(raw, &flat); err != nil {
			return nil, fmt.Errorf("serder: msgpack decode: %w", err)
		}
		return unflatten(flat)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", kerierr.ErrInvalidValue, kind)
	}
}

func flatten(sad *SAD) []any {
	out := make([]any, 0, 2*len(sad.fields))
	for _, f := range sad.fields {
		out = append(out, f.Key, flattenValue(f.Value))
	}
	return out
}

func flattenValue(v any) any {
	if nested, ok := v.(*SAD); ok {
		return flatten(nested)
	}
	if arr, ok := v.([]any); ok {
		out := make([]any, len(arr))
		for i, el := range arr {
			out[i] = flattenValue(el)
		}
		return out
	}
	return v
}

// unflatten rebuilds the top-level SAD. Nested SAD values inside CBOR/MGPK
// payloads come back as flat []any rather than *SAD — callers that round
// trip nested structures through these kinds must re-flatten/unflatten
// them explicitly; only JSON round trips nested SADs transparently.
func unflatten(flat []any) (*SAD, error) {
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("%w: odd-length flattened SAD", kerierr.ErrInvalidFormat)
	}
	sad := NewSAD()
	for i := 0; i < len(flat); i += 2 {
		key, ok := flat[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: flattened SAD key is not a string", kerierr.ErrInvalidFormat)
		}
		sad.Set(key, flat[i+1])
	}
	return sad, nil
}

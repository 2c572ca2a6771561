package serder

// SAD is an ordered key-value map (spec ssec 3, "SAD"): KERI's wire
// structures depend on field order — the version string must land near the
// front of the serialization so sizeify can locate it without a full
// parse — so a plain Go map (unordered) cannot represent one faithfully.

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type KV struct {
	Key   string
	Value any
}

type SAD struct {
	fields []KV
	index  map[string]int
}

// NewSAD builds an empty, order-tracking SAD.
func NewSAD() *SAD {
	return &SAD{index: map[string]int{}}
}

// Set appends key/value if new, or overwrites value in place if key already
// exists (preserving its original position).
func (s *SAD) Set(key string, val any) *SAD {
	if i, ok := s.index[key]; ok {
		s.fields[i].Value = val
		return s
	}
	s.index[key] = len(s.fields)
	s.fields = append(s.fields, KV{Key: key, Value: val})
	return s
}

// Get returns the value for key, if present.
func (s *SAD) Get(key string) (any, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.fields[i].Value, true
}

// GetString is Get with a string type assertion.
func (s *SAD) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Keys returns field names in insertion order.
func (s *SAD) Keys() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Key
	}
	return out
}

// Fields returns the ordered key-value pairs.
func (s *SAD) Fields() []KV { return s.fields }

// Clone deep-copies the field list (values are shared, not deep-copied).
func (s *SAD) Clone() *SAD {
	out := NewSAD()
	for _, f := range s.fields {
		out.Set(f.Key, f.Value)
	}
	return out
}

// MarshalJSON emits the fields in insertion order, matching KERI's
// canonical field-ordered JSON serialization.
func (s *SAD) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("sad: marshal field %q: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object while preserving source field order,
// using the decoder's token stream (encoding/json does not expose ordering
// through a plain map).
func (s *SAD) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("sad: expected JSON object")
	}
	*s = *NewSAD()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("sad: expected string key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		val, err := decodeJSONValue(raw)
		if err != nil {
			return err
		}
		s.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}
	return nil
}

// decodeJSONValue decodes a raw JSON value, recursing into nested objects
// as SAD so field order survives arbitrarily deep nesting.
func decodeJSONValue(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		nested := NewSAD()
		if err := nested.UnmarshalJSON(trimmed); err != nil {
			return nil, err
		}
		return nested, nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return nil, err
		}
		out := make([]any, len(arr))
		for i, el := range arr {
			v, err := decodeJSONValue(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Package specs models the flexible-schema layer of an equipment record:
// the ordered details extension map plus the structured attribute bags
// (accessories, spare parts, screw tables, oil tables, documents) that are
// stored JSON-encoded in single columns. The template/field registry decides
// which detail keys and which bags apply to a given piece of equipment.
package specs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Details is an ordered key→value extension map for scalar attributes that
// have no fixed column. Keys are unique; insertion order is preserved across
// an encode/decode cycle.
type Details struct {
	pairs []detailPair
}

type detailPair struct {
	key   string
	value interface{}
}

// Set inserts or replaces a key. Replacing keeps the key's position.
func (d *Details) Set(key string, value interface{}) {
	for i := range d.pairs {
		if d.pairs[i].key == key {
			d.pairs[i].value = value
			return
		}
	}
	d.pairs = append(d.pairs, detailPair{key: key, value: value})
}

// Get returns the value for key, if present.
func (d *Details) Get(key string) (interface{}, bool) {
	for i := range d.pairs {
		if d.pairs[i].key == key {
			return d.pairs[i].value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order.
func (d *Details) Keys() []string {
	keys := make([]string, 0, len(d.pairs))
	for i := range d.pairs {
		keys = append(keys, d.pairs[i].key)
	}
	return keys
}

func (d Details) Len() int { return len(d.pairs) }

// Filter returns a copy holding only the keys for which keep returns true,
// preserving order. Render paths use this to drop keys whose field
// definitions were deactivated after the record was written.
func (d *Details) Filter(keep func(key string) bool) Details {
	var out Details
	for i := range d.pairs {
		if keep(d.pairs[i].key) {
			out.pairs = append(out.pairs, d.pairs[i])
		}
	}
	return out
}

// MarshalJSON encodes the map as a JSON object in insertion order without
// escaping non-ASCII text.
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range d.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeValue(p.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := encodeValue(p.value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving top-level key order.
func (d *Details) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("details: expected JSON object, got %v", tok)
	}

	var pairs []detailPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("details: non-string key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		value, err := decodeScalar(raw)
		if err != nil {
			return err
		}
		pairs = append(pairs, detailPair{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	d.pairs = pairs
	return nil
}

func decodeScalar(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return v, nil
}

// ParseDetails decodes client-supplied details strictly: malformed input is
// an error, because it arrives on a write path.
func ParseDetails(data []byte) (Details, error) {
	var d Details
	if len(data) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return Details{}, err
	}
	return d, nil
}

// DecodeDetails decodes a stored details column. Malformed stored JSON is
// treated as an empty map, never surfaced as an error.
func DecodeDetails(stored string) Details {
	d, err := ParseDetails([]byte(stored))
	if err != nil {
		return Details{}
	}
	return d
}

// NormalizeValue coerces a detail value to the canonical form for its field
// type: text stays a string, numbers become float64, dates become ISO-8601
// date strings. Accepted date inputs are ISO dates, RFC3339 timestamps and
// time.Time values.
func NormalizeValue(fieldType string, value interface{}) (interface{}, error) {
	switch fieldType {
	case "text":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("value %v is not text", value)
		}
		return s, nil
	case "number":
		switch n := value.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case json.Number:
			return n.Float64()
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, fmt.Errorf("value %q is not a number", n)
			}
			return f, nil
		default:
			return nil, fmt.Errorf("value %v is not a number", value)
		}
	case "date":
		switch t := value.(type) {
		case time.Time:
			return t.Format("2006-01-02"), nil
		case string:
			for _, layout := range []string{"2006-01-02", time.RFC3339} {
				if parsed, err := time.Parse(layout, t); err == nil {
					return parsed.Format("2006-01-02"), nil
				}
			}
			return nil, fmt.Errorf("value %q is not a date", t)
		default:
			return nil, fmt.Errorf("value %v is not a date", value)
		}
	default:
		return nil, fmt.Errorf("unknown field type %q", fieldType)
	}
}

// encodeValue marshals without HTML escaping, keeping Korean and other
// non-ASCII text readable in the stored column.
func encodeValue(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeJSON renders any bag to its stored column form.
func EncodeJSON(v interface{}) (string, error) {
	b, err := encodeValue(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

package qavalidator

import (
	"bytes"
	"encoding/json"
	"strconv"
	"unicode/utf8"
)

// maxStringFactLen bounds the length of a single string fact. Facts carry
// identifiers, codes, and units, never sentences; anything longer is
// truncated with an ellipsis marker.
const maxStringFactLen = 120

// Fact is a single typed value in a finding's detail payload.
// The set of variants is closed: string, number, boolean, or a nested
// fact map. Free-text sentences are not representable.
type Fact interface {
	isFact()
}

// StringFact holds a short identifying string (a code, unit, pattern, id).
type StringFact string

// NumberFact holds a numeric fact (bounds, lengths, actual values).
type NumberFact float64

// BoolFact holds a boolean fact.
type BoolFact bool

// MapFact holds a nested, ordered fact map.
type MapFact struct {
	Map *FactMap
}

func (StringFact) isFact() {}
func (NumberFact) isFact() {}
func (BoolFact) isFact()   {}
func (MapFact) isFact()    {}

// String builds a string fact, truncating oversized values so that no
// fact variant can smuggle prose past the taxonomy.
func String(v string) Fact {
	if utf8.RuneCountInString(v) > maxStringFactLen {
		runes := []rune(v)
		v = string(runes[:maxStringFactLen-1]) + "…"
	}
	return StringFact(v)
}

// Number builds a numeric fact.
func Number(v float64) Fact {
	return NumberFact(v)
}

// Int builds a numeric fact from an integer.
func Int(v int) Fact {
	return NumberFact(float64(v))
}

// Bool builds a boolean fact.
func Bool(v bool) Fact {
	return BoolFact(v)
}

// Nested builds a nested map fact.
func Nested(m *FactMap) Fact {
	return MapFact{Map: m}
}

// FactMap is an insertion-ordered map from stable field names to facts.
// Presentation layers rely on the ordering to render payloads
// deterministically.
type FactMap struct {
	keys []string
	vals map[string]Fact
}

// NewFactMap creates an empty fact map.
func NewFactMap() *FactMap {
	return &FactMap{vals: make(map[string]Fact, 4)}
}

// Set adds or replaces the fact for key. Insertion order is preserved;
// replacing an existing key keeps its original position.
func (m *FactMap) Set(key string, f Fact) *FactMap {
	if _, exists := m.vals[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = f
	return m
}

// SetString is shorthand for Set(key, String(v)).
func (m *FactMap) SetString(key, v string) *FactMap {
	return m.Set(key, String(v))
}

// SetNumber is shorthand for Set(key, Number(v)).
func (m *FactMap) SetNumber(key string, v float64) *FactMap {
	return m.Set(key, Number(v))
}

// SetBool is shorthand for Set(key, Bool(v)).
func (m *FactMap) SetBool(key string, v bool) *FactMap {
	return m.Set(key, Bool(v))
}

// Get returns the fact for key.
func (m *FactMap) Get(key string) (Fact, bool) {
	f, ok := m.vals[key]
	return f, ok
}

// Keys returns the keys in insertion order.
func (m *FactMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of facts in the map.
func (m *FactMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// MarshalJSON renders the map as a JSON object in insertion order.
func (m *FactMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyData, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		valData, err := marshalFact(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valData)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalFact(f Fact) ([]byte, error) {
	switch v := f.(type) {
	case StringFact:
		return json.Marshal(string(v))
	case NumberFact:
		// Render integral numbers without a fraction part.
		fv := float64(v)
		if fv == float64(int64(fv)) {
			return []byte(strconv.FormatInt(int64(fv), 10)), nil
		}
		return json.Marshal(fv)
	case BoolFact:
		return json.Marshal(bool(v))
	case MapFact:
		if v.Map == nil {
			return []byte("{}"), nil
		}
		return v.Map.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// Package answer normalizes extracted values into a closed set of typed
// answer kinds and provides kind-aware presence checks.
package answer

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Kind classifies a normalized value at run time.
type Kind uint8

// Value kinds.
const (
	KindUnknown Kind = iota
	KindString
	KindInteger
	KindDecimal
	KindBoolean
	KindQuantity
	KindCoding
	KindCodeableConcept
)

// String returns the canonical kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "boolean"
	case KindQuantity:
		return "quantity"
	case KindCoding:
		return "coding"
	case KindCodeableConcept:
		return "codeableConcept"
	default:
		return "unknown"
	}
}

// Value is a normalized, typed answer value. The variant set is closed.
type Value interface {
	Kind() Kind
}

// String is a string answer.
type String string

// Integer is a whole-number answer.
type Integer int64

// Decimal is a fractional numeric answer.
type Decimal struct {
	Val decimal.Decimal
}

// Boolean is a boolean answer.
type Boolean bool

// Quantity is a measured amount with an optional unit and unit code.
type Quantity struct {
	Value    decimal.Decimal
	HasValue bool
	Unit     string
	Code     string
	System   string
}

// Coding is a (system, code) concept identity.
type Coding struct {
	System  string
	Code    string
	Display string
}

// CodeableConcept is one-of-many codings under a concept.
type CodeableConcept struct {
	Codings []Coding
	Text    string
}

// Kind implementations.
func (String) Kind() Kind          { return KindString }
func (Integer) Kind() Kind         { return KindInteger }
func (Decimal) Kind() Kind         { return KindDecimal }
func (Boolean) Kind() Kind         { return KindBoolean }
func (Quantity) Kind() Kind        { return KindQuantity }
func (Coding) Kind() Kind          { return KindCoding }
func (CodeableConcept) Kind() Kind { return KindCodeableConcept }

// KindName names a value's kind; nil values are "none".
func KindName(v Value) string {
	if v == nil {
		return "none"
	}
	return v.Kind().String()
}

// IsPresent reports whether a value counts as an answer. Presence is
// kind-aware: a quantity needs a numeric value, a coding needs a
// non-empty code, a codeable concept needs at least one coding, a string
// must be non-empty.
func IsPresent(v Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case String:
		return val != ""
	case Quantity:
		return val.HasValue
	case Coding:
		return val.Code != ""
	case CodeableConcept:
		return len(val.Codings) > 0
	default:
		return true
	}
}

// Normalize classifies a raw extracted value into exactly one kind.
// Values that fit no kind yield nil.
func Normalize(raw any) Value {
	switch v := raw.(type) {
	case string:
		return String(v)
	case bool:
		return Boolean(v)
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v <= math.MaxInt64 {
			return Integer(int64(v))
		}
		return Decimal{Val: decimal.NewFromFloat(v)}
	case int:
		return Integer(int64(v))
	case int64:
		return Integer(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Integer(i)
		}
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return Decimal{Val: d}
		}
		return nil
	case map[string]any:
		return normalizeMap(v)
	default:
		return nil
	}
}

func normalizeMap(m map[string]any) Value {
	if _, ok := m["coding"]; ok {
		return normalizeCodeableConcept(m)
	}
	if _, ok := m["value"]; ok {
		return normalizeQuantity(m)
	}
	if _, ok := m["unit"]; ok {
		return normalizeQuantity(m)
	}
	if hasAny(m, "system", "code", "display") {
		return normalizeCoding(m)
	}
	if _, ok := m["text"]; ok {
		return normalizeCodeableConcept(m)
	}
	return nil
}

func normalizeQuantity(m map[string]any) Value {
	q := Quantity{
		Unit:   stringField(m, "unit"),
		Code:   stringField(m, "code"),
		System: stringField(m, "system"),
	}
	switch v := m["value"].(type) {
	case float64:
		q.Value = decimal.NewFromFloat(v)
		q.HasValue = true
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			q.Value = d
			q.HasValue = true
		}
	case int:
		q.Value = decimal.NewFromInt(int64(v))
		q.HasValue = true
	case int64:
		q.Value = decimal.NewFromInt(v)
		q.HasValue = true
	}
	return q
}

func normalizeCoding(m map[string]any) Value {
	return Coding{
		System:  stringField(m, "system"),
		Code:    stringField(m, "code"),
		Display: stringField(m, "display"),
	}
}

func normalizeCodeableConcept(m map[string]any) Value {
	cc := CodeableConcept{Text: stringField(m, "text")}
	if list, ok := m["coding"].([]any); ok {
		for _, item := range list {
			cm, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if c, ok := normalizeCoding(cm).(Coding); ok {
				cc.Codings = append(cc.Codings, c)
			}
		}
	}
	return cc
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func hasAny(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// Package question models externally managed question definitions: the
// identifying code, the allowed answer kind, and the constraints an answer
// must satisfy. Definitions are project-scoped and resolved through a
// Catalog; persistence and CRUD are external concerns.
package question

// AnswerType is the kind of answer a question admits. The set of kinds is
// closed; dispatch over it is exhaustive and an unknown kind is reported,
// never silently passed.
type AnswerType uint8

// Answer kinds.
const (
	AnswerUnknown AnswerType = iota
	AnswerCode
	AnswerQuantity
	AnswerInteger
	AnswerDecimal
	AnswerString
	AnswerBoolean
)

// String returns the canonical lowercase name of the kind.
func (t AnswerType) String() string {
	switch t {
	case AnswerCode:
		return "code"
	case AnswerQuantity:
		return "quantity"
	case AnswerInteger:
		return "integer"
	case AnswerDecimal:
		return "decimal"
	case AnswerString:
		return "string"
	case AnswerBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// ParseAnswerType maps a type name to its kind. Unrecognized names map to
// AnswerUnknown.
func ParseAnswerType(s string) AnswerType {
	switch s {
	case "code", "Code", "coding", "Coding":
		return AnswerCode
	case "quantity", "Quantity":
		return AnswerQuantity
	case "integer", "Integer":
		return AnswerInteger
	case "decimal", "Decimal":
		return AnswerDecimal
	case "string", "String", "text":
		return AnswerString
	case "boolean", "Boolean":
		return AnswerBoolean
	default:
		return AnswerUnknown
	}
}

// Coding identifies a concept as a (system, code) pair with an optional
// display.
type Coding struct {
	System  string `json:"system"`
	Code    string `json:"code"`
	Display string `json:"display,omitempty"`
}

// Matches reports (system, code) equality.
func (c Coding) Matches(other Coding) bool {
	return c.System == other.System && c.Code == other.Code
}

// BindingStrength states how strictly a coded answer must belong to the
// bound value set.
type BindingStrength string

// Binding strengths. Anything else is treated as informational.
const (
	BindingRequired   BindingStrength = "required"
	BindingExtensible BindingStrength = "extensible"
)

// ValueSetBinding references a value set an answer's code must come from.
// Full membership checking is a terminology service's concern; this
// validator only checks code presence under a binding.
type ValueSetBinding struct {
	URL      string          `json:"url"`
	Strength BindingStrength `json:"bindingStrength"`
}

// Constraints bound an answer's value.
type Constraints struct {
	// Min and Max bound numeric and quantity answers, inclusive.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// MaxLength bounds string answers, counted in runes.
	MaxLength *int `json:"maxLength,omitempty"`

	// Regex is a pattern a string answer must match. An invalid pattern
	// is logged and skipped, never fatal.
	Regex string `json:"regex,omitempty"`
}

// Question is one externally defined question.
type Question struct {
	ID          string           `json:"id"`
	Code        Coding           `json:"code"`
	AnswerType  AnswerType       `json:"-"`
	Unit        string           `json:"unit,omitempty"`
	Constraints *Constraints     `json:"constraints,omitempty"`
	Binding     *ValueSetBinding `json:"valueSetBinding,omitempty"`
}

// QuestionRef is one entry of a question set.
type QuestionRef struct {
	QuestionID string `json:"questionId"`
	Required   bool   `json:"required"`
}

// QuestionSet groups the questions a rule validates against.
type QuestionSet struct {
	ID        string        `json:"id"`
	Questions []QuestionRef `json:"questions"`
}

// Ref returns the entry for a question id, if present.
func (s *QuestionSet) Ref(questionID string) (QuestionRef, bool) {
	if s == nil {
		return QuestionRef{}, false
	}
	for _, ref := range s.Questions {
		if ref.QuestionID == questionID {
			return ref, true
		}
	}
	return QuestionRef{}, false
}

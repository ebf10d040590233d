package qavalidator

import (
	"fmt"
	"strings"
)

// QuestionRef identifies the question a finding is about. All fields are
// optional; empty fields are omitted from the fact payload.
type QuestionRef struct {
	QuestionSetID string
	QuestionID    string
	System        string
	Code          string
	Display       string
}

// Facts renders the reference as a nested fact map.
func (r QuestionRef) Facts() *FactMap {
	m := NewFactMap()
	if r.QuestionSetID != "" {
		m.SetString("questionSetId", r.QuestionSetID)
	}
	if r.QuestionID != "" {
		m.SetString("questionId", r.QuestionID)
	}
	if r.System != "" {
		m.SetString("system", r.System)
	}
	if r.Code != "" {
		m.SetString("code", r.Code)
	}
	if r.Display != "" {
		m.SetString("display", r.Display)
	}
	return m
}

func (r QuestionRef) isEmpty() bool {
	return r == QuestionRef{}
}

// FindingSite carries the rule and bundle location a finding is attached to.
type FindingSite struct {
	RuleID       string
	ResourceType string
	EntryIndex   int
	Location     Location
}

// newFinding assembles a finding, running the no-prose guard on the hint.
// The details map arrives with the constructor-specific facts; question and
// location facts are appended here under their stable keys.
func newFinding(code ErrorCode, sev Severity, site FindingSite, q QuestionRef, hint string, details *FactMap) (Finding, error) {
	if err := EnsureNoProse(hint); err != nil {
		return Finding{}, fmt.Errorf("%s: %w", code, err)
	}
	if details == nil {
		details = NewFactMap()
	}
	if !q.isEmpty() {
		qm := NewFactMap()
		qm.Set("question", Nested(q.Facts()))
		// Prepend by rebuilding: question facts lead the payload.
		for _, k := range details.Keys() {
			f, _ := details.Get(k)
			qm.Set(k, f)
		}
		details = qm
	}
	if site.Location.Path != "" || site.Location.Pointer != "" {
		loc := NewFactMap()
		loc.SetString("path", site.Location.Path)
		if site.Location.Pointer != "" {
			loc.SetString("pointer", site.Location.Pointer)
		}
		details.Set("location", Nested(loc))
	}
	return Finding{
		RuleID:       site.RuleID,
		Code:         code,
		Severity:     sev,
		ResourceType: site.ResourceType,
		Path:         site.Location.Path,
		EntryIndex:   site.EntryIndex,
		Hint:         hint,
		Details:      details,
	}, nil
}

// AnswerRequiredParams parameterizes NewAnswerRequired.
type AnswerRequiredParams struct {
	Site     FindingSite
	Question QuestionRef
	Hint     string
}

// NewAnswerRequired reports a required answer that is absent.
func NewAnswerRequired(p AnswerRequiredParams) (Finding, error) {
	d := NewFactMap()
	d.SetBool("required", true)
	return newFinding(CodeAnswerRequired, SeverityError, p.Site, p.Question, p.Hint, d)
}

// InvalidAnswerValueParams parameterizes NewInvalidAnswerValue.
type InvalidAnswerValueParams struct {
	Site     FindingSite
	Question QuestionRef

	// Expected is the answer kind the question declares.
	Expected string
	// Actual is the run-time kind of the extracted value.
	Actual string
	// Value optionally carries the offending value as a fact.
	Value Fact

	Hint string
}

// NewInvalidAnswerValue reports an answer whose run-time kind does not
// conform to the question's declared answer kind.
func NewInvalidAnswerValue(p InvalidAnswerValueParams) (Finding, error) {
	d := NewFactMap()
	if p.Expected != "" {
		d.SetString("expected", p.Expected)
	}
	if p.Actual != "" {
		d.SetString("actual", p.Actual)
	}
	if p.Value != nil {
		d.Set("value", p.Value)
	}
	return newFinding(CodeInvalidAnswerValue, SeverityError, p.Site, p.Question, p.Hint, d)
}

// InvalidUnitParams parameterizes NewInvalidUnit.
type InvalidUnitParams struct {
	Site     FindingSite
	Question QuestionRef

	ExpectedUnit string
	ActualUnit   string
	ActualCode   string

	Hint string
}

// NewInvalidUnit reports a quantity whose unit matches neither the
// expected unit nor its code. It is an INVALID_ANSWER_VALUE variant
// distinguished by its expected/actual unit facts.
func NewInvalidUnit(p InvalidUnitParams) (Finding, error) {
	expected := NewFactMap().SetString("unit", p.ExpectedUnit)
	actual := NewFactMap()
	actual.SetString("unit", p.ActualUnit)
	if p.ActualCode != "" {
		actual.SetString("code", p.ActualCode)
	}
	d := NewFactMap()
	d.Set("expected", Nested(expected))
	d.Set("actual", Nested(actual))
	return newFinding(CodeInvalidAnswerValue, SeverityError, p.Site, p.Question, p.Hint, d)
}

// AnswerOutOfRangeParams parameterizes NewAnswerOutOfRange.
type AnswerOutOfRangeParams struct {
	Site     FindingSite
	Question QuestionRef

	Min    *float64
	Max    *float64
	Actual float64

	Hint string
}

// NewAnswerOutOfRange reports a numeric answer outside [min, max]. Both
// configured bounds are carried as facts.
func NewAnswerOutOfRange(p AnswerOutOfRangeParams) (Finding, error) {
	d := NewFactMap()
	if p.Min != nil {
		d.SetNumber("min", *p.Min)
	}
	if p.Max != nil {
		d.SetNumber("max", *p.Max)
	}
	d.SetNumber("actual", p.Actual)
	return newFinding(CodeAnswerOutOfRange, SeverityError, p.Site, p.Question, p.Hint, d)
}

// SeverityForBindingStrength derives a finding severity from a value-set
// binding strength: required bindings are errors, extensible bindings are
// warnings, anything else is informational.
func SeverityForBindingStrength(strength string) Severity {
	switch strength {
	case "required":
		return SeverityError
	case "extensible":
		return SeverityWarning
	default:
		return SeverityInformation
	}
}

// AnswerNotInValueSetParams parameterizes NewAnswerNotInValueSet.
type AnswerNotInValueSetParams struct {
	Site     FindingSite
	Question QuestionRef

	ValueSetURL     string
	BindingStrength string

	Hint string
}

// NewAnswerNotInValueSet reports a coded answer that fails its value-set
// binding. Severity derives from the binding strength.
func NewAnswerNotInValueSet(p AnswerNotInValueSetParams) (Finding, error) {
	d := NewFactMap()
	d.SetString("valueSet", p.ValueSetURL)
	d.SetString("bindingStrength", p.BindingStrength)
	sev := SeverityForBindingStrength(p.BindingStrength)
	return newFinding(CodeAnswerNotInValueSet, sev, p.Site, p.Question, p.Hint, d)
}

// AnswerMultipleNotAllowedParams parameterizes NewAnswerMultipleNotAllowed.
type AnswerMultipleNotAllowedParams struct {
	Site     FindingSite
	Question QuestionRef

	Count int

	Hint string
}

// NewAnswerMultipleNotAllowed reports multiple answers where the question
// admits exactly one.
func NewAnswerMultipleNotAllowed(p AnswerMultipleNotAllowedParams) (Finding, error) {
	d := NewFactMap()
	d.Set("count", Int(p.Count))
	return newFinding(CodeAnswerMultipleNotAllowed, SeverityError, p.Site, p.Question, p.Hint, d)
}

// QuestionNotFoundParams parameterizes NewQuestionNotFound.
type QuestionNotFoundParams struct {
	Site          FindingSite
	QuestionSetID string

	// System and Code identify the question code found in the data.
	System string
	Code   string

	Hint string
}

// NewQuestionNotFound reports a question code that matches no entry of the
// rule's question set.
func NewQuestionNotFound(p QuestionNotFoundParams) (Finding, error) {
	q := QuestionRef{QuestionSetID: p.QuestionSetID, System: p.System, Code: p.Code}
	return newFinding(CodeQuestionNotFound, SeverityWarning, p.Site, q, p.Hint, nil)
}

// QuestionSetDataMissingParams parameterizes NewQuestionSetDataMissing.
type QuestionSetDataMissingParams struct {
	Site          FindingSite
	QuestionSetID string

	// UnresolvedQuestionIDs lists referenced question definitions that
	// could not be loaded, when the set itself was found.
	UnresolvedQuestionIDs []string

	Hint string
}

// NewQuestionSetDataMissing reports missing master data: the question set
// or one of its referenced question definitions could not be loaded. This
// is advisory, not a domain violation.
func NewQuestionSetDataMissing(p QuestionSetDataMissingParams) (Finding, error) {
	d := NewFactMap()
	d.SetString("questionSetId", p.QuestionSetID)
	if len(p.UnresolvedQuestionIDs) > 0 {
		d.SetString("unresolvedQuestions", strings.Join(p.UnresolvedQuestionIDs, ","))
	}
	return newFinding(CodeQuestionSetDataMissing, SeverityInformation, p.Site, QuestionRef{}, p.Hint, d)
}

// InvalidAnswerTypeParams parameterizes NewInvalidAnswerType.
type InvalidAnswerTypeParams struct {
	Site     FindingSite
	Question QuestionRef

	// DeclaredType is the unrecognized answer kind from the question
	// definition.
	DeclaredType string

	Hint string
}

// NewInvalidAnswerType reports a question definition declaring an answer
// kind the validator does not implement. Unknown kinds never pass silently.
func NewInvalidAnswerType(p InvalidAnswerTypeParams) (Finding, error) {
	d := NewFactMap()
	d.SetString("declaredType", p.DeclaredType)
	return newFinding(CodeInvalidAnswerType, SeverityError, p.Site, p.Question, p.Hint, d)
}

// MaxLengthExceededParams parameterizes NewMaxLengthExceeded.
type MaxLengthExceededParams struct {
	Site     FindingSite
	Question QuestionRef

	MaxLength    int
	ActualLength int

	Hint string
}

// NewMaxLengthExceeded reports a string answer longer than the question's
// maxLength constraint. It is an INVALID_ANSWER_VALUE variant carrying
// maxLength/actualLength facts.
func NewMaxLengthExceeded(p MaxLengthExceededParams) (Finding, error) {
	d := NewFactMap()
	d.Set("maxLength", Int(p.MaxLength))
	d.Set("actualLength", Int(p.ActualLength))
	return newFinding(CodeInvalidAnswerValue, SeverityError, p.Site, p.Question, p.Hint, d)
}

// RegexMismatchParams parameterizes NewRegexMismatch.
type RegexMismatchParams struct {
	Site     FindingSite
	Question QuestionRef

	Pattern string
	Value   string

	Hint string
}

// NewRegexMismatch reports a string answer that does not match the
// question's regex constraint. It is an INVALID_ANSWER_VALUE variant
// carrying pattern/value facts.
func NewRegexMismatch(p RegexMismatchParams) (Finding, error) {
	d := NewFactMap()
	d.SetString("pattern", p.Pattern)
	d.SetString("value", p.Value)
	return newFinding(CodeInvalidAnswerValue, SeverityError, p.Site, p.Question, p.Hint, d)
}

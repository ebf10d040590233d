package qavalidator

// Severity represents the severity of a validation finding.
type Severity string

const (
	// SeverityError indicates the answer is invalid and must be corrected.
	SeverityError Severity = "error"
	// SeverityWarning indicates a potential problem that should be reviewed.
	SeverityWarning Severity = "warning"
	// SeverityInformation indicates advisory feedback.
	SeverityInformation Severity = "information"
)

// ErrorCode identifies the kind of validation finding. The enumeration is
// closed: consumers can interpret every finding programmatically without
// reading free text.
type ErrorCode string

const (
	// CodeAnswerRequired indicates a required answer is absent.
	CodeAnswerRequired ErrorCode = "ANSWER_REQUIRED"
	// CodeInvalidAnswerValue indicates the answer does not conform to the
	// question's answer kind or constraints (wrong kind, unit mismatch,
	// length or pattern violation).
	CodeInvalidAnswerValue ErrorCode = "INVALID_ANSWER_VALUE"
	// CodeAnswerOutOfRange indicates a numeric answer outside [min, max].
	CodeAnswerOutOfRange ErrorCode = "ANSWER_OUT_OF_RANGE"
	// CodeAnswerNotInValueSet indicates a coded answer that fails its
	// value-set binding.
	CodeAnswerNotInValueSet ErrorCode = "ANSWER_NOT_IN_VALUESET"
	// CodeAnswerMultipleNotAllowed indicates multiple answers where a
	// single value is expected.
	CodeAnswerMultipleNotAllowed ErrorCode = "ANSWER_MULTIPLE_NOT_ALLOWED"
	// CodeQuestionNotFound indicates the extracted question code matches
	// no entry of the rule's question set.
	CodeQuestionNotFound ErrorCode = "QUESTION_NOT_FOUND"
	// CodeQuestionSetDataMissing indicates missing master data: the
	// question set or a referenced question definition could not be loaded.
	CodeQuestionSetDataMissing ErrorCode = "QUESTIONSET_DATA_MISSING"
	// CodeInvalidAnswerType indicates a question declares an answer kind
	// the validator does not know.
	CodeInvalidAnswerType ErrorCode = "INVALID_ANSWER_TYPE"
)

// ErrorCodes lists every code the validator can emit.
var ErrorCodes = []ErrorCode{
	CodeAnswerRequired,
	CodeInvalidAnswerValue,
	CodeAnswerOutOfRange,
	CodeAnswerNotInValueSet,
	CodeAnswerMultipleNotAllowed,
	CodeQuestionNotFound,
	CodeQuestionSetDataMissing,
	CodeInvalidAnswerType,
}

// Location identifies where in the bundle a finding occurred.
type Location struct {
	// Path is the canonical, index-qualified location
	// (e.g. "Bundle.entry[2].resource.component[1]").
	Path string `json:"path"`

	// Pointer optionally narrows the location below the iteration node
	// (the relative answer path).
	Pointer string `json:"pointer,omitempty"`
}

// Finding is a single machine-readable validation finding.
//
// Findings carry no natural-language sentences. The optional Hint is a
// short non-sentence label enforced by EnsureNoProse at construction;
// everything else lives in the typed Details payload.
type Finding struct {
	// RuleID identifies the rule that produced this finding.
	RuleID string `json:"ruleId"`

	// Code is the taxonomy code for this finding.
	Code ErrorCode `json:"errorCode"`

	// Severity of the finding.
	Severity Severity `json:"severity"`

	// ResourceType is the type of the resource the finding points at.
	ResourceType string `json:"resourceType,omitempty"`

	// Path is the canonical path to the finding location.
	Path string `json:"path,omitempty"`

	// EntryIndex is the bundle entry index, or -1 when the finding is not
	// attached to a specific entry (e.g. missing master data). Always
	// serialized: index 0 is a real entry, -1 is the explicit sentinel.
	EntryIndex int `json:"entryIndex"`

	// Hint is an optional short label (≤60 chars, no sentence punctuation).
	Hint string `json:"hint,omitempty"`

	// Details holds the ordered, typed fact payload.
	Details *FactMap `json:"details,omitempty"`
}

// IsError returns true for error findings.
func (f Finding) IsError() bool {
	return f.Severity == SeverityError
}

// IsWarning returns true for warning findings.
func (f Finding) IsWarning() bool {
	return f.Severity == SeverityWarning
}

// IsAdvisory returns true for informational findings.
func (f Finding) IsAdvisory() bool {
	return f.Severity == SeverityInformation
}

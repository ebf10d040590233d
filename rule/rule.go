// Package rule models author-defined business rules. Only QuestionAnswer
// rules are consumed by this validator; rule persistence and authoring are
// external concerns.
package rule

import (
	"encoding/json"
	"fmt"
)

// TypeQuestionAnswer is the rule type handled by this validator.
const TypeQuestionAnswer = "QuestionAnswer"

// Rule is one author-defined business rule.
type Rule struct {
	// ID identifies the rule within its ruleset.
	ID string `json:"id"`

	// Type selects the validation subsystem (e.g. "QuestionAnswer").
	Type string `json:"type"`

	// ResourceType names the resource type the rule applies to.
	ResourceType string `json:"resourceType"`

	// FieldPath is the rule's target field, relative to the resource. It
	// drives iteration-context resolution for repeating sub-elements.
	FieldPath string `json:"fieldPath"`

	// Params carries rule-type-specific configuration.
	Params map[string]any `json:"params,omitempty"`
}

// QAParams is the configuration a QuestionAnswer rule requires.
type QAParams struct {
	// QuestionSetID names the externally managed question set.
	QuestionSetID string

	// QuestionPath locates the question-identifying code, relative to the
	// iteration node.
	QuestionPath string

	// AnswerPath locates the candidate answer, relative to the iteration
	// node.
	AnswerPath string

	// Condition optionally gates rule applicability per resource with a
	// FHIRPath expression.
	Condition string
}

// QAParams extracts the QuestionAnswer parameters. ok is false when any
// required parameter is missing; such rules are unconfigured, not invalid,
// and are skipped silently by the orchestrator.
func (r Rule) QAParams() (QAParams, bool) {
	p := QAParams{
		QuestionSetID: stringParam(r.Params, "questionSetId"),
		QuestionPath:  stringParam(r.Params, "questionPath"),
		AnswerPath:    stringParam(r.Params, "answerPath"),
		Condition:     stringParam(r.Params, "condition"),
	}
	if p.QuestionSetID == "" || p.QuestionPath == "" || p.AnswerPath == "" {
		return QAParams{}, false
	}
	return p, true
}

func stringParam(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	if s, ok := params[key].(string); ok {
		return s
	}
	return ""
}

// Set is an ordered collection of rules.
type Set struct {
	Rules []Rule `json:"rules"`
}

// OfType returns the rules of the given type, preserving order.
func (s *Set) OfType(ruleType string) []Rule {
	if s == nil {
		return nil
	}
	var out []Rule
	for _, r := range s.Rules {
		if r.Type == ruleType {
			out = append(out, r)
		}
	}
	return out
}

// ParseSet decodes a JSON ruleset. Both a bare rule array and an object
// with a "rules" field are accepted.
func ParseSet(data []byte) (*Set, error) {
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err == nil {
		return &Set{Rules: rules}, nil
	}
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode ruleset: %w", err)
	}
	return &s, nil
}

// Package check implements the per-kind answer validators. Each answer
// kind has one routine consuming an extracted value plus the question's
// constraints and returning zero or more findings. Dispatch over the kind
// is exhaustive; an unknown kind is itself a finding.
package check

import (
	"go.uber.org/zap"

	qav "github.com/clinrule/qavalidator"
	"github.com/clinrule/qavalidator/answer"
	"github.com/clinrule/qavalidator/question"
)

// Target carries everything a type validator needs besides the value:
// the matched question, its owning set, and the finding site.
type Target struct {
	Site          qav.FindingSite
	Question      *question.Question
	QuestionSetID string
}

// ref builds the question reference facts for findings.
func (t Target) ref() qav.QuestionRef {
	return qav.QuestionRef{
		QuestionSetID: t.QuestionSetID,
		QuestionID:    t.Question.ID,
		System:        t.Question.Code.System,
		Code:          t.Question.Code.Code,
		Display:       t.Question.Code.Display,
	}
}

// Checker validates answers against question definitions.
type Checker struct {
	log *zap.Logger
}

// New creates a checker. A nil logger disables logging.
func New(log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{log: log}
}

// Check dispatches on the question's answer kind. Every kind is handled;
// a question declaring an unimplemented kind yields INVALID_ANSWER_TYPE.
func (c *Checker) Check(v answer.Value, t Target) []qav.Finding {
	switch t.Question.AnswerType {
	case question.AnswerCode:
		return c.checkCode(v, t)
	case question.AnswerQuantity:
		return c.checkQuantity(v, t)
	case question.AnswerInteger:
		return c.checkInteger(v, t)
	case question.AnswerDecimal:
		return c.checkDecimal(v, t)
	case question.AnswerString:
		return c.checkString(v, t)
	case question.AnswerBoolean:
		return c.checkBoolean(v, t)
	default:
		f, err := qav.NewInvalidAnswerType(qav.InvalidAnswerTypeParams{
			Site:         t.Site,
			Question:     t.ref(),
			DeclaredType: t.Question.AnswerType.String(),
		})
		return c.collect(nil, f, err)
	}
}

// collect appends a constructed finding, logging the construction error
// that a prose hint would raise. Hints used here are static non-sentence
// labels.
func (c *Checker) collect(list []qav.Finding, f qav.Finding, err error) []qav.Finding {
	if err != nil {
		c.log.Error("finding construction rejected", zap.Error(err))
		return list
	}
	return append(list, f)
}

// invalidValue emits the generic kind-mismatch finding.
func (c *Checker) invalidValue(list []qav.Finding, v answer.Value, t Target, expected string) []qav.Finding {
	f, err := qav.NewInvalidAnswerValue(qav.InvalidAnswerValueParams{
		Site:     t.Site,
		Question: t.ref(),
		Expected: expected,
		Actual:   answer.KindName(v),
		Value:    valueFact(v),
	})
	return c.collect(list, f, err)
}

// valueFact renders a value as a typed fact where a compact rendering
// exists. Composite kinds nest; unrepresentable values are omitted.
func valueFact(v answer.Value) qav.Fact {
	switch val := v.(type) {
	case answer.String:
		return qav.String(string(val))
	case answer.Integer:
		return qav.Number(float64(val))
	case answer.Decimal:
		f, _ := val.Val.Float64()
		return qav.Number(f)
	case answer.Boolean:
		return qav.Bool(bool(val))
	case answer.Quantity:
		m := qav.NewFactMap()
		if val.HasValue {
			f, _ := val.Value.Float64()
			m.SetNumber("value", f)
		}
		if val.Unit != "" {
			m.SetString("unit", val.Unit)
		}
		if val.Code != "" {
			m.SetString("code", val.Code)
		}
		return qav.Nested(m)
	case answer.Coding:
		m := qav.NewFactMap()
		m.SetString("system", val.System)
		m.SetString("code", val.Code)
		return qav.Nested(m)
	default:
		return nil
	}
}

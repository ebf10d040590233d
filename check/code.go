package check

import (
	"regexp"
	"unicode/utf8"

	"go.uber.org/zap"

	qav "github.com/clinrule/qavalidator"
	"github.com/clinrule/qavalidator/answer"
	"github.com/clinrule/qavalidator/question"
)

// checkCode validates coded answers. The value must be a coding or a
// codeable concept carrying a non-empty code. When the question binds a
// value set, an empty code is reported against the binding with severity
// derived from the binding strength; full value-set membership is a
// terminology service's concern, not this layer's.
func (c *Checker) checkCode(v answer.Value, t Target) []qav.Finding {
	var hasCode bool
	switch val := v.(type) {
	case answer.Coding:
		hasCode = val.Code != ""
	case answer.CodeableConcept:
		for _, coding := range val.Codings {
			if coding.Code != "" {
				hasCode = true
				break
			}
		}
	default:
		return c.invalidValue(nil, v, t, question.AnswerCode.String())
	}
	if hasCode {
		return nil
	}

	if b := t.Question.Binding; b != nil {
		f, err := qav.NewAnswerNotInValueSet(qav.AnswerNotInValueSetParams{
			Site:            t.Site,
			Question:        t.ref(),
			ValueSetURL:     b.URL,
			BindingStrength: string(b.Strength),
			Hint:            "empty code under binding",
		})
		return c.collect(nil, f, err)
	}
	return c.invalidValue(nil, v, t, question.AnswerCode.String())
}

// checkString validates string answers against maxLength and regex
// constraints. An invalid regex pattern is a configuration problem: it is
// logged and the constraint skipped, never fatal to the rule.
func (c *Checker) checkString(v answer.Value, t Target) []qav.Finding {
	s, ok := v.(answer.String)
	if !ok {
		return c.invalidValue(nil, v, t, question.AnswerString.String())
	}

	cons := t.Question.Constraints
	if cons == nil {
		return nil
	}

	var findings []qav.Finding
	if cons.MaxLength != nil {
		length := utf8.RuneCountInString(string(s))
		if length > *cons.MaxLength {
			f, err := qav.NewMaxLengthExceeded(qav.MaxLengthExceededParams{
				Site:         t.Site,
				Question:     t.ref(),
				MaxLength:    *cons.MaxLength,
				ActualLength: length,
			})
			findings = c.collect(findings, f, err)
		}
	}

	if cons.Regex != "" {
		re, err := regexp.Compile(cons.Regex)
		if err != nil {
			c.log.Warn("invalid regex constraint skipped",
				zap.String("question_id", t.Question.ID),
				zap.String("pattern", cons.Regex),
				zap.Error(err))
		} else if !re.MatchString(string(s)) {
			f, err := qav.NewRegexMismatch(qav.RegexMismatchParams{
				Site:     t.Site,
				Question: t.ref(),
				Pattern:  cons.Regex,
				Value:    string(s),
			})
			findings = c.collect(findings, f, err)
		}
	}
	return findings
}

// checkBoolean validates boolean answers. No further constraints apply.
func (c *Checker) checkBoolean(v answer.Value, t Target) []qav.Finding {
	if _, ok := v.(answer.Boolean); !ok {
		return c.invalidValue(nil, v, t, question.AnswerBoolean.String())
	}
	return nil
}

package check

import (
	"github.com/shopspring/decimal"

	qav "github.com/clinrule/qavalidator"
	"github.com/clinrule/qavalidator/answer"
	"github.com/clinrule/qavalidator/question"
)

// checkQuantity validates quantity answers: the value must be a quantity
// with a numeric value; the unit must match the question's expected unit
// (by unit text or unit code) when one is configured; the numeric value
// must fall inside the configured bounds.
func (c *Checker) checkQuantity(v answer.Value, t Target) []qav.Finding {
	q, ok := v.(answer.Quantity)
	if !ok || !q.HasValue {
		return c.invalidValue(nil, v, t, question.AnswerQuantity.String())
	}

	var findings []qav.Finding
	if expected := t.Question.Unit; expected != "" {
		if q.Unit != expected && q.Code != expected {
			f, err := qav.NewInvalidUnit(qav.InvalidUnitParams{
				Site:         t.Site,
				Question:     t.ref(),
				ExpectedUnit: expected,
				ActualUnit:   q.Unit,
				ActualCode:   q.Code,
				Hint:         "unit mismatch",
			})
			findings = c.collect(findings, f, err)
		}
	}
	return c.checkRange(findings, q.Value, t)
}

// checkInteger validates integer answers. A decimal coerces only when it
// has no fractional part; anything else is a kind mismatch.
func (c *Checker) checkInteger(v answer.Value, t Target) []qav.Finding {
	var d decimal.Decimal
	switch val := v.(type) {
	case answer.Integer:
		d = decimal.NewFromInt(int64(val))
	case answer.Decimal:
		if !val.Val.IsInteger() {
			return c.invalidValue(nil, v, t, question.AnswerInteger.String())
		}
		d = val.Val
	default:
		return c.invalidValue(nil, v, t, question.AnswerInteger.String())
	}
	return c.checkRange(nil, d, t)
}

// checkDecimal validates decimal answers. Integers widen losslessly.
func (c *Checker) checkDecimal(v answer.Value, t Target) []qav.Finding {
	var d decimal.Decimal
	switch val := v.(type) {
	case answer.Integer:
		d = decimal.NewFromInt(int64(val))
	case answer.Decimal:
		d = val.Val
	default:
		return c.invalidValue(nil, v, t, question.AnswerDecimal.String())
	}
	return c.checkRange(nil, d, t)
}

// checkRange appends an out-of-range finding when the value falls outside
// the question's inclusive [min, max] bounds.
func (c *Checker) checkRange(list []qav.Finding, d decimal.Decimal, t Target) []qav.Finding {
	cons := t.Question.Constraints
	if cons == nil || (cons.Min == nil && cons.Max == nil) {
		return list
	}

	below := cons.Min != nil && d.Cmp(decimal.NewFromFloat(*cons.Min)) < 0
	above := cons.Max != nil && d.Cmp(decimal.NewFromFloat(*cons.Max)) > 0
	if !below && !above {
		return list
	}

	actual, _ := d.Float64()
	f, err := qav.NewAnswerOutOfRange(qav.AnswerOutOfRangeParams{
		Site:     t.Site,
		Question: t.ref(),
		Min:      cons.Min,
		Max:      cons.Max,
		Actual:   actual,
	})
	return c.collect(list, f, err)
}

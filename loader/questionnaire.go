// Package loader fills question catalogs from external definition
// sources: FHIR R4 Questionnaire resources and YAML catalog files.
package loader

import (
	"fmt"

	"github.com/gofhir/fhir/r4"

	"github.com/clinrule/qavalidator/question"
)

// FromQuestionnaire converts an R4 Questionnaire into a question set plus
// the question definitions it references. Group items contribute their
// children; display items are skipped. Item types outside the supported
// answer kinds convert to the unknown kind, which the validator reports
// rather than silently passing.
func FromQuestionnaire(q *r4.Questionnaire) (*question.QuestionSet, []*question.Question, error) {
	if q == nil {
		return nil, nil, fmt.Errorf("questionnaire is nil")
	}
	id := derefString(q.Name)
	if id == "" {
		id = derefString(q.Url)
	}
	if id == "" {
		return nil, nil, fmt.Errorf("questionnaire has neither name nor url")
	}

	set := &question.QuestionSet{ID: id}
	var questions []*question.Question
	collectItems(q.Item, set, &questions)
	return set, questions, nil
}

func collectItems(items []r4.QuestionnaireItem, set *question.QuestionSet, out *[]*question.Question) {
	for i := range items {
		item := &items[i]
		itemType := derefItemType(item.Type)
		switch itemType {
		case "group":
			collectItems(item.Item, set, out)
			continue
		case "display":
			continue
		}

		linkID := derefString(item.LinkId)
		if linkID == "" {
			continue
		}

		q := &question.Question{
			ID:         linkID,
			AnswerType: answerTypeForItem(itemType),
		}
		if len(item.Code) > 0 {
			q.Code = convertCoding(&item.Code[0])
		}
		if item.MaxLength != nil {
			maxLen := *item.MaxLength
			q.Constraints = &question.Constraints{MaxLength: &maxLen}
		}
		if vs := derefString(item.AnswerValueSet); vs != "" {
			// answerValueSet constrains the choice to the set: treat as a
			// required binding.
			q.Binding = &question.ValueSetBinding{
				URL:      vs,
				Strength: question.BindingRequired,
			}
		}

		*out = append(*out, q)
		set.Questions = append(set.Questions, question.QuestionRef{
			QuestionID: linkID,
			Required:   derefBool(item.Required),
		})

		// Question items can nest follow-up questions.
		collectItems(item.Item, set, out)
	}
}

// answerTypeForItem maps Questionnaire item types to answer kinds.
func answerTypeForItem(itemType string) question.AnswerType {
	switch itemType {
	case "boolean":
		return question.AnswerBoolean
	case "decimal":
		return question.AnswerDecimal
	case "integer":
		return question.AnswerInteger
	case "string", "text":
		return question.AnswerString
	case "quantity":
		return question.AnswerQuantity
	case "choice", "open-choice":
		return question.AnswerCode
	default:
		return question.AnswerUnknown
	}
}

func convertCoding(c *r4.Coding) question.Coding {
	if c == nil {
		return question.Coding{}
	}
	return question.Coding{
		System:  derefString(c.System),
		Code:    derefString(c.Code),
		Display: derefString(c.Display),
	}
}

func derefItemType(t *r4.QuestionnaireItemType) string {
	if t == nil {
		return ""
	}
	return string(*t)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

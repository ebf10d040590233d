package loader

import (
	"testing"

	"github.com/gofhir/fhir/r4"

	"github.com/clinrule/qavalidator/question"
)

func itemType(t r4.QuestionnaireItemType) *r4.QuestionnaireItemType {
	return &t
}

func TestFromQuestionnaire(t *testing.T) {
	name := "vitals-intake"
	sysLink := "q-sys"
	sysSystem := "http://loinc.org"
	sysCode := "8480-6"
	noteLink := "q-note"
	maxLen := 200
	sevLink := "q-sev"
	valueSet := "http://example.org/ValueSet/severity"
	required := true

	q := &r4.Questionnaire{
		Name: &name,
		Item: []r4.QuestionnaireItem{
			{
				LinkId:   &sysLink,
				Type:     itemType("quantity"),
				Code:     []r4.Coding{{System: &sysSystem, Code: &sysCode}},
				Required: &required,
			},
			{
				LinkId:    &noteLink,
				Type:      itemType("text"),
				MaxLength: &maxLen,
			},
			{
				LinkId:         &sevLink,
				Type:           itemType("choice"),
				AnswerValueSet: &valueSet,
			},
		},
	}

	set, questions, err := FromQuestionnaire(q)
	if err != nil {
		t.Fatalf("FromQuestionnaire() error: %v", err)
	}
	if set.ID != "vitals-intake" {
		t.Errorf("set ID = %q; want the questionnaire name", set.ID)
	}
	if len(set.Questions) != 3 || len(questions) != 3 {
		t.Fatalf("converted %d refs / %d questions; want 3/3", len(set.Questions), len(questions))
	}

	ref, ok := set.Ref("q-sys")
	if !ok || !ref.Required {
		t.Errorf("Ref(q-sys) = %+v, %v; want required", ref, ok)
	}
	if questions[0].AnswerType != question.AnswerQuantity {
		t.Errorf("q-sys kind = %v; want quantity", questions[0].AnswerType)
	}
	if questions[0].Code.System != "http://loinc.org" || questions[0].Code.Code != "8480-6" {
		t.Errorf("q-sys code = %+v", questions[0].Code)
	}

	if questions[1].AnswerType != question.AnswerString {
		t.Errorf("q-note kind = %v; want string", questions[1].AnswerType)
	}
	if questions[1].Constraints == nil || questions[1].Constraints.MaxLength == nil || *questions[1].Constraints.MaxLength != 200 {
		t.Errorf("q-note constraints = %+v", questions[1].Constraints)
	}

	if questions[2].AnswerType != question.AnswerCode {
		t.Errorf("q-sev kind = %v; want code", questions[2].AnswerType)
	}
	if questions[2].Binding == nil || questions[2].Binding.URL != valueSet {
		t.Fatalf("q-sev binding = %+v", questions[2].Binding)
	}
	if questions[2].Binding.Strength != question.BindingRequired {
		t.Errorf("q-sev binding strength = %q; want required", questions[2].Binding.Strength)
	}
}

func TestFromQuestionnaireGroupsAndDisplay(t *testing.T) {
	name := "grouped"
	groupLink := "grp"
	innerLink := "q-flag"
	displayLink := "d-1"

	q := &r4.Questionnaire{
		Name: &name,
		Item: []r4.QuestionnaireItem{
			{
				LinkId: &groupLink,
				Type:   itemType("group"),
				Item: []r4.QuestionnaireItem{
					{LinkId: &innerLink, Type: itemType("boolean")},
				},
			},
			{LinkId: &displayLink, Type: itemType("display")},
		},
	}

	set, questions, err := FromQuestionnaire(q)
	if err != nil {
		t.Fatalf("FromQuestionnaire() error: %v", err)
	}
	// Groups flatten, display items vanish.
	if len(questions) != 1 || questions[0].ID != "q-flag" {
		t.Fatalf("questions = %+v; want only q-flag", questions)
	}
	if questions[0].AnswerType != question.AnswerBoolean {
		t.Errorf("q-flag kind = %v; want boolean", questions[0].AnswerType)
	}
	if _, ok := set.Ref("grp"); ok {
		t.Error("group item leaked into the set")
	}
}

func TestFromQuestionnaireUnsupportedItemType(t *testing.T) {
	name := "dates"
	link := "q-date"

	q := &r4.Questionnaire{
		Name: &name,
		Item: []r4.QuestionnaireItem{
			{LinkId: &link, Type: itemType("date")},
		},
	}

	_, questions, err := FromQuestionnaire(q)
	if err != nil {
		t.Fatalf("FromQuestionnaire() error: %v", err)
	}
	if len(questions) != 1 || questions[0].AnswerType != question.AnswerUnknown {
		t.Errorf("questions = %+v; unsupported types must convert to unknown", questions)
	}
}

func TestFromQuestionnaireIdentity(t *testing.T) {
	if _, _, err := FromQuestionnaire(nil); err == nil {
		t.Error("FromQuestionnaire(nil) succeeded")
	}
	if _, _, err := FromQuestionnaire(&r4.Questionnaire{}); err == nil {
		t.Error("FromQuestionnaire() accepted a questionnaire without name or url")
	}

	url := "http://example.org/Questionnaire/fallback"
	set, _, err := FromQuestionnaire(&r4.Questionnaire{Url: &url})
	if err != nil {
		t.Fatalf("FromQuestionnaire() error: %v", err)
	}
	if set.ID != url {
		t.Errorf("set ID = %q; want the url fallback", set.ID)
	}
}

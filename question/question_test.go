package question

import (
	"context"
	"testing"
)

func TestParseAnswerType(t *testing.T) {
	tests := []struct {
		in   string
		want AnswerType
	}{
		{"code", AnswerCode},
		{"Coding", AnswerCode},
		{"quantity", AnswerQuantity},
		{"Quantity", AnswerQuantity},
		{"integer", AnswerInteger},
		{"decimal", AnswerDecimal},
		{"string", AnswerString},
		{"text", AnswerString},
		{"boolean", AnswerBoolean},
		{"date", AnswerUnknown},
		{"", AnswerUnknown},
	}
	for _, tt := range tests {
		if got := ParseAnswerType(tt.in); got != tt.want {
			t.Errorf("ParseAnswerType(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestAnswerTypeStringRoundTrip(t *testing.T) {
	kinds := []AnswerType{AnswerCode, AnswerQuantity, AnswerInteger, AnswerDecimal, AnswerString, AnswerBoolean}
	for _, k := range kinds {
		if got := ParseAnswerType(k.String()); got != k {
			t.Errorf("ParseAnswerType(%q) = %v; want %v", k.String(), got, k)
		}
	}
	if AnswerUnknown.String() != "unknown" {
		t.Errorf("AnswerUnknown.String() = %q", AnswerUnknown.String())
	}
}

func TestCodingMatches(t *testing.T) {
	a := Coding{System: "http://loinc.org", Code: "8480-6", Display: "Systolic BP"}
	b := Coding{System: "http://loinc.org", Code: "8480-6"}
	if !a.Matches(b) {
		t.Error("Matches() ignores display; want true")
	}
	c := Coding{System: "http://snomed.info/sct", Code: "8480-6"}
	if a.Matches(c) {
		t.Error("Matches() across systems; want false")
	}
}

func TestQuestionSetRef(t *testing.T) {
	qs := &QuestionSet{
		ID: "qs-1",
		Questions: []QuestionRef{
			{QuestionID: "q-1", Required: true},
			{QuestionID: "q-2"},
		},
	}
	ref, ok := qs.Ref("q-1")
	if !ok || !ref.Required {
		t.Errorf("Ref(q-1) = %+v, %v", ref, ok)
	}
	if _, ok := qs.Ref("q-3"); ok {
		t.Error("Ref(q-3) found; want absent")
	}

	var nilSet *QuestionSet
	if _, ok := nilSet.Ref("q-1"); ok {
		t.Error("Ref on nil set found; want absent")
	}
}

func TestInMemoryCatalog(t *testing.T) {
	ctx := context.Background()
	cat := NewInMemoryCatalog()
	cat.AddQuestionSet("proj-1", &QuestionSet{ID: "qs-1"})
	cat.AddQuestion("proj-1", &Question{ID: "q-1", AnswerType: AnswerQuantity})

	qs, err := cat.QuestionSet(ctx, "proj-1", "qs-1")
	if err != nil || qs == nil {
		t.Fatalf("QuestionSet() = %v, %v", qs, err)
	}

	// Not found is (nil, nil), and projects are isolated.
	qs, err = cat.QuestionSet(ctx, "proj-2", "qs-1")
	if err != nil || qs != nil {
		t.Errorf("QuestionSet(other project) = %v, %v; want nil, nil", qs, err)
	}
	q, err := cat.Question(ctx, "proj-1", "q-9")
	if err != nil || q != nil {
		t.Errorf("Question(absent) = %v, %v; want nil, nil", q, err)
	}

	if sets, questions := cat.Counts(); sets != 1 || questions != 1 {
		t.Errorf("Counts() = %d, %d; want 1, 1", sets, questions)
	}
}

package qavalidator

import (
	"errors"
	"testing"
)

func testSite() FindingSite {
	return FindingSite{
		RuleID:       "rule-1",
		ResourceType: "Observation",
		EntryIndex:   2,
		Location:     Location{Path: "Bundle.entry[2].resource.component[1]", Pointer: "valueQuantity"},
	}
}

func testQuestion() QuestionRef {
	return QuestionRef{
		QuestionSetID: "qs-1",
		QuestionID:    "q-1",
		System:        "http://loinc.org",
		Code:          "8480-6",
	}
}

func TestNewAnswerRequired(t *testing.T) {
	f, err := NewAnswerRequired(AnswerRequiredParams{Site: testSite(), Question: testQuestion()})
	if err != nil {
		t.Fatalf("NewAnswerRequired() error: %v", err)
	}
	if f.Code != CodeAnswerRequired {
		t.Errorf("Code = %q; want %q", f.Code, CodeAnswerRequired)
	}
	if f.Severity != SeverityError {
		t.Errorf("Severity = %q; want error", f.Severity)
	}
	if f.Path != "Bundle.entry[2].resource.component[1]" {
		t.Errorf("Path = %q", f.Path)
	}
	if f.EntryIndex != 2 {
		t.Errorf("EntryIndex = %d; want 2", f.EntryIndex)
	}

	// Question facts lead the payload; location facts close it.
	keys := f.Details.Keys()
	if len(keys) == 0 || keys[0] != "question" {
		t.Fatalf("Details keys = %v; want question first", keys)
	}
	if keys[len(keys)-1] != "location" {
		t.Errorf("Details keys = %v; want location last", keys)
	}
}

func TestNewAnswerOutOfRangeFacts(t *testing.T) {
	minVal, maxVal := 0.0, 200.0
	f, err := NewAnswerOutOfRange(AnswerOutOfRangeParams{
		Site:     testSite(),
		Question: testQuestion(),
		Min:      &minVal,
		Max:      &maxVal,
		Actual:   250,
	})
	if err != nil {
		t.Fatalf("NewAnswerOutOfRange() error: %v", err)
	}
	if f.Code != CodeAnswerOutOfRange {
		t.Errorf("Code = %q; want %q", f.Code, CodeAnswerOutOfRange)
	}
	for key, want := range map[string]float64{"min": 0, "max": 200, "actual": 250} {
		fact, ok := f.Details.Get(key)
		if !ok {
			t.Fatalf("missing fact %q", key)
		}
		if fact != NumberFact(want) {
			t.Errorf("fact %q = %v; want %v", key, fact, want)
		}
	}
}

func TestNewAnswerNotInValueSetSeverity(t *testing.T) {
	tests := []struct {
		strength string
		want     Severity
	}{
		{"required", SeverityError},
		{"extensible", SeverityWarning},
		{"preferred", SeverityInformation},
		{"", SeverityInformation},
	}
	for _, tt := range tests {
		t.Run(tt.strength, func(t *testing.T) {
			f, err := NewAnswerNotInValueSet(AnswerNotInValueSetParams{
				Site:            testSite(),
				Question:        testQuestion(),
				ValueSetURL:     "http://example.org/ValueSet/vs-1",
				BindingStrength: tt.strength,
			})
			if err != nil {
				t.Fatalf("NewAnswerNotInValueSet() error: %v", err)
			}
			if f.Severity != tt.want {
				t.Errorf("Severity = %q; want %q", f.Severity, tt.want)
			}
		})
	}
}

func TestProseHintRejectedAtConstruction(t *testing.T) {
	_, err := NewAnswerRequired(AnswerRequiredParams{
		Site:     testSite(),
		Question: testQuestion(),
		Hint:     "Please fix this.",
	})
	if !errors.Is(err, ErrProseHint) {
		t.Errorf("error = %v; want ErrProseHint", err)
	}
}

func TestNonSentenceHintAccepted(t *testing.T) {
	f, err := NewInvalidUnit(InvalidUnitParams{
		Site:         testSite(),
		Question:     testQuestion(),
		ExpectedUnit: "mmHg",
		ActualUnit:   "kPa",
		Hint:         "unit mismatch",
	})
	if err != nil {
		t.Fatalf("NewInvalidUnit() error: %v", err)
	}
	if f.Hint != "unit mismatch" {
		t.Errorf("Hint = %q", f.Hint)
	}
	if f.Code != CodeInvalidAnswerValue {
		t.Errorf("Code = %q; want %q", f.Code, CodeInvalidAnswerValue)
	}
}

func TestNewQuestionSetDataMissing(t *testing.T) {
	f, err := NewQuestionSetDataMissing(QuestionSetDataMissingParams{
		Site:                  FindingSite{RuleID: "rule-1", EntryIndex: -1},
		QuestionSetID:         "qs-missing",
		UnresolvedQuestionIDs: []string{"q-1", "q-2"},
	})
	if err != nil {
		t.Fatalf("NewQuestionSetDataMissing() error: %v", err)
	}
	if f.Severity != SeverityInformation {
		t.Errorf("Severity = %q; want information", f.Severity)
	}
	fact, ok := f.Details.Get("unresolvedQuestions")
	if !ok || fact != StringFact("q-1,q-2") {
		t.Errorf("unresolvedQuestions = %v; want q-1,q-2", fact)
	}
}

func TestNewMaxLengthExceededIsInvalidAnswerValue(t *testing.T) {
	f, err := NewMaxLengthExceeded(MaxLengthExceededParams{
		Site:         testSite(),
		Question:     testQuestion(),
		MaxLength:    10,
		ActualLength: 17,
	})
	if err != nil {
		t.Fatalf("NewMaxLengthExceeded() error: %v", err)
	}
	if f.Code != CodeInvalidAnswerValue {
		t.Errorf("Code = %q; want %q", f.Code, CodeInvalidAnswerValue)
	}
	if fact, _ := f.Details.Get("actualLength"); fact != NumberFact(17) {
		t.Errorf("actualLength = %v; want 17", fact)
	}
}

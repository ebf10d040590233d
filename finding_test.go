package qavalidator

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFindingJSONKeepsEntryIndexZero(t *testing.T) {
	site := FindingSite{
		RuleID:       "rule-1",
		ResourceType: "Observation",
		EntryIndex:   0,
		Location:     Location{Path: "Bundle.entry[0].resource"},
	}
	f, err := NewAnswerRequired(AnswerRequiredParams{Site: site, Question: testQuestion()})
	if err != nil {
		t.Fatalf("NewAnswerRequired() error: %v", err)
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"entryIndex":0`) {
		t.Errorf("entry index 0 missing from %s", data)
	}
}

func TestFindingJSONSentinelEntryIndex(t *testing.T) {
	f, err := NewQuestionSetDataMissing(QuestionSetDataMissingParams{
		Site:          FindingSite{RuleID: "rule-1", EntryIndex: -1},
		QuestionSetID: "qs-missing",
	})
	if err != nil {
		t.Fatalf("NewQuestionSetDataMissing() error: %v", err)
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"entryIndex":-1`) {
		t.Errorf("sentinel entry index missing from %s", data)
	}
}

func TestFindingSeverityPredicates(t *testing.T) {
	tests := []struct {
		sev      Severity
		isErr    bool
		isWarn   bool
		advisory bool
	}{
		{SeverityError, true, false, false},
		{SeverityWarning, false, true, false},
		{SeverityInformation, false, false, true},
	}
	for _, tt := range tests {
		f := Finding{Severity: tt.sev}
		if f.IsError() != tt.isErr || f.IsWarning() != tt.isWarn || f.IsAdvisory() != tt.advisory {
			t.Errorf("%q predicates = %v/%v/%v", tt.sev, f.IsError(), f.IsWarning(), f.IsAdvisory())
		}
	}
}

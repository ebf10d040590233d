package answer

import (
	"testing"
)

func componentNode() map[string]any {
	return map[string]any{
		"code": map[string]any{
			"coding": []any{
				map[string]any{"system": "http://loinc.org", "code": "8480-6"},
				map[string]any{"system": "http://snomed.info/sct", "code": "271649006"},
			},
		},
		"valueQuantity": map[string]any{"value": 120.0, "unit": "mmHg"},
	}
}

func TestQuestionCode(t *testing.T) {
	e := NewExtractor(nil)

	// A codeable concept contributes its first coding.
	c, err := e.QuestionCode(componentNode(), "code")
	if err != nil {
		t.Fatalf("QuestionCode() error: %v", err)
	}
	if c == nil || c.System != "http://loinc.org" || c.Code != "8480-6" {
		t.Errorf("QuestionCode() = %+v; want first loinc coding", c)
	}

	// Direct coding path.
	c, err = e.QuestionCode(componentNode(), "code.coding[1]")
	if err != nil {
		t.Fatalf("QuestionCode() error: %v", err)
	}
	if c == nil || c.System != "http://snomed.info/sct" {
		t.Errorf("QuestionCode(coding[1]) = %+v", c)
	}

	// A bare string becomes a system-less code.
	node := map[string]any{"questionId": "q-7"}
	c, err = e.QuestionCode(node, "questionId")
	if err != nil {
		t.Fatalf("QuestionCode() error: %v", err)
	}
	if c == nil || c.System != "" || c.Code != "q-7" {
		t.Errorf("QuestionCode(bare string) = %+v", c)
	}

	// Absent path resolves to no code, not an error.
	c, err = e.QuestionCode(componentNode(), "missing.code")
	if err != nil || c != nil {
		t.Errorf("QuestionCode(absent) = %+v, %v; want nil, nil", c, err)
	}

	// Malformed paths surface as errors.
	if _, err = e.QuestionCode(componentNode(), "code["); err == nil {
		t.Error("QuestionCode() accepted malformed path")
	}
}

func TestAnswers(t *testing.T) {
	e := NewExtractor(nil)

	values, err := e.Answers(componentNode(), "valueQuantity")
	if err != nil {
		t.Fatalf("Answers() error: %v", err)
	}
	if len(values) != 1 {
		t.Fatalf("Answers() = %d values; want 1", len(values))
	}
	q, ok := values[0].(Quantity)
	if !ok || !q.HasValue || q.Unit != "mmHg" {
		t.Errorf("Answers()[0] = %+v; want quantity 120 mmHg", values[0])
	}

	// Fan-out over a list yields every normalized match.
	node := map[string]any{
		"answer": []any{
			map[string]any{"valueString": "yes"},
			map[string]any{"valueString": "no"},
		},
	}
	values, err = e.Answers(node, "answer.valueString")
	if err != nil {
		t.Fatalf("Answers() error: %v", err)
	}
	if len(values) != 2 || values[0] != String("yes") || values[1] != String("no") {
		t.Errorf("Answers(fan-out) = %v", values)
	}

	// Unclassifiable matches are dropped.
	node = map[string]any{"valueX": []any{[]any{"nested list"}}}
	values, err = e.Answers(node, "valueX")
	if err != nil {
		t.Fatalf("Answers() error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("Answers(unclassifiable) = %v; want none", values)
	}
}

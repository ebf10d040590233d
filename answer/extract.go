package answer

import (
	"github.com/clinrule/qavalidator/navigate"
)

// Extractor pulls question codes and candidate answers out of an
// iteration node using a relative-path navigator. Absence is not an
// error at this layer; requiredness is judged one level up.
type Extractor struct {
	nav navigate.Navigator
}

// NewExtractor creates an extractor over the given navigator.
func NewExtractor(nav navigate.Navigator) *Extractor {
	if nav == nil {
		nav = navigate.NewPathNavigator()
	}
	return &Extractor{nav: nav}
}

// QuestionCode resolves the question-identifying code under a node. Only
// the first match is used; a codeable concept contributes its first
// coding, a bare string becomes a system-less code.
func (e *Extractor) QuestionCode(node map[string]any, relativePath string) (*Coding, error) {
	raw, err := navigate.First(e.nav, node, relativePath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	switch v := Normalize(raw).(type) {
	case Coding:
		return &v, nil
	case CodeableConcept:
		if len(v.Codings) == 0 {
			return nil, nil
		}
		c := v.Codings[0]
		return &c, nil
	case String:
		if v == "" {
			return nil, nil
		}
		return &Coding{Code: string(v)}, nil
	default:
		return nil, nil
	}
}

// Answers resolves every candidate answer under a node, normalized and in
// document order. Raw matches that fit no answer kind are dropped.
func (e *Extractor) Answers(node map[string]any, relativePath string) ([]Value, error) {
	raws, err := e.nav.Select(node, relativePath)
	if err != nil {
		return nil, err
	}
	values := make([]Value, 0, len(raws))
	for _, raw := range raws {
		if v := Normalize(raw); v != nil {
			values = append(values, v)
		}
	}
	return values, nil
}

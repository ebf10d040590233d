package qavalidator

import (
	"sync"
)

// Result contains the outcome of validating a bundle against a ruleset.
//
// Findings appear in document order within each rule; advisory notes are
// non-blocking infrastructure diagnostics, distinct from findings.
type Result struct {
	// Findings contains all validation findings.
	Findings []Finding `json:"findings"`

	// QuestionsValidated counts question codes matched against a set.
	QuestionsValidated int `json:"questionsValidated"`

	// AnswersValidated counts answers that reached a type validator.
	AnswersValidated int `json:"answersValidated"`

	// AdvisoryNotes contains per-rule infrastructure diagnostics.
	AdvisoryNotes []string `json:"advisoryNotes,omitempty"`

	// mu protects concurrent appends during parallel rule execution.
	mu sync.Mutex
}

// NewResult creates an empty result.
func NewResult() *Result {
	return &Result{
		Findings: make([]Finding, 0, 8),
	}
}

// AddFinding appends a finding. Safe for concurrent use.
func (r *Result) AddFinding(f Finding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Findings = append(r.Findings, f)
}

// AddFindings appends multiple findings preserving their order.
func (r *Result) AddFindings(fs []Finding) {
	if len(fs) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Findings = append(r.Findings, fs...)
}

// AddAdvisory appends an advisory note.
func (r *Result) AddAdvisory(note string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.AdvisoryNotes = append(r.AdvisoryNotes, note)
}

// CountValidated adds to the question/answer counters.
func (r *Result) CountValidated(questions, answers int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.QuestionsValidated += questions
	r.AnswersValidated += answers
}

// HasErrors returns true if any finding has error severity.
func (r *Result) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.Findings {
		if f.IsError() {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error findings.
func (r *Result) ErrorCount() int {
	return r.countBy(func(f Finding) bool { return f.IsError() })
}

// WarningCount returns the number of warning findings.
func (r *Result) WarningCount() int {
	return r.countBy(func(f Finding) bool { return f.IsWarning() })
}

func (r *Result) countBy(pred func(Finding) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.Findings {
		if pred(f) {
			n++
		}
	}
	return n
}

// ByRule returns the findings attributed to one rule, in emission order.
func (r *Result) ByRule(ruleID string) []Finding {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Finding
	for _, f := range r.Findings {
		if f.RuleID == ruleID {
			out = append(out, f)
		}
	}
	return out
}

// Merge combines another result into this one.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	other.mu.Lock()
	findings := make([]Finding, len(other.Findings))
	copy(findings, other.Findings)
	notes := make([]string, len(other.AdvisoryNotes))
	copy(notes, other.AdvisoryNotes)
	questions, answers := other.QuestionsValidated, other.AnswersValidated
	other.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Findings = append(r.Findings, findings...)
	r.AdvisoryNotes = append(r.AdvisoryNotes, notes...)
	r.QuestionsValidated += questions
	r.AnswersValidated += answers
}

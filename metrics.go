package qavalidator

import (
	"sync/atomic"
	"time"
)

// Metrics tracks validation counters using lock-free atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	rulesProcessed atomic.Uint64
	rulesSkipped   atomic.Uint64
	seedsResolved  atomic.Uint64

	questionsValidated atomic.Uint64
	answersValidated   atomic.Uint64

	findingsError   atomic.Uint64
	findingsWarning atomic.Uint64
	findingsInfo    atomic.Uint64

	validationTimeTotal atomic.Uint64 // nanoseconds
	validationsTotal    atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordRule records a processed or skipped rule.
func (m *Metrics) RecordRule(skipped bool) {
	if skipped {
		m.rulesSkipped.Add(1)
		return
	}
	m.rulesProcessed.Add(1)
}

// RecordSeeds records resolved context seeds.
func (m *Metrics) RecordSeeds(n int) {
	if n > 0 {
		m.seedsResolved.Add(uint64(n))
	}
}

// RecordValidated records matched questions and checked answers.
func (m *Metrics) RecordValidated(questions, answers int) {
	if questions > 0 {
		m.questionsValidated.Add(uint64(questions))
	}
	if answers > 0 {
		m.answersValidated.Add(uint64(answers))
	}
}

// RecordFinding records one finding by severity.
func (m *Metrics) RecordFinding(sev Severity) {
	switch sev {
	case SeverityError:
		m.findingsError.Add(1)
	case SeverityWarning:
		m.findingsWarning.Add(1)
	default:
		m.findingsInfo.Add(1)
	}
}

// RecordValidation records a completed validation call.
func (m *Metrics) RecordValidation(duration time.Duration) {
	m.validationsTotal.Add(1)
	m.validationTimeTotal.Add(uint64(duration.Nanoseconds()))
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	RulesProcessed     uint64 `json:"rulesProcessed"`
	RulesSkipped       uint64 `json:"rulesSkipped"`
	SeedsResolved      uint64 `json:"seedsResolved"`
	QuestionsValidated uint64 `json:"questionsValidated"`
	AnswersValidated   uint64 `json:"answersValidated"`
	FindingsError      uint64 `json:"findingsError"`
	FindingsWarning    uint64 `json:"findingsWarning"`
	FindingsInfo       uint64 `json:"findingsInfo"`
	ValidationsTotal   uint64 `json:"validationsTotal"`
	TotalTimeNanos     uint64 `json:"totalTimeNanos"`
}

// Snapshot returns a consistent-enough copy of the counters.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		RulesProcessed:     m.rulesProcessed.Load(),
		RulesSkipped:       m.rulesSkipped.Load(),
		SeedsResolved:      m.seedsResolved.Load(),
		QuestionsValidated: m.questionsValidated.Load(),
		AnswersValidated:   m.answersValidated.Load(),
		FindingsError:      m.findingsError.Load(),
		FindingsWarning:    m.findingsWarning.Load(),
		FindingsInfo:       m.findingsInfo.Load(),
		ValidationsTotal:   m.validationsTotal.Load(),
		TotalTimeNanos:     m.validationTimeTotal.Load(),
	}
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	m.rulesProcessed.Store(0)
	m.rulesSkipped.Store(0)
	m.seedsResolved.Store(0)
	m.questionsValidated.Store(0)
	m.answersValidated.Store(0)
	m.findingsError.Store(0)
	m.findingsWarning.Store(0)
	m.findingsInfo.Store(0)
	m.validationsTotal.Store(0)
	m.validationTimeTotal.Store(0)
}

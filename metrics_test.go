package qavalidator

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsRecordAndSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRule(false)
	m.RecordRule(false)
	m.RecordRule(true)
	m.RecordSeeds(3)
	m.RecordValidated(2, 2)
	m.RecordFinding(SeverityError)
	m.RecordFinding(SeverityWarning)
	m.RecordFinding(SeverityInformation)
	m.RecordValidation(5 * time.Millisecond)

	s := m.Snapshot()
	if s.RulesProcessed != 2 || s.RulesSkipped != 1 {
		t.Errorf("rules = %d/%d; want 2/1", s.RulesProcessed, s.RulesSkipped)
	}
	if s.SeedsResolved != 3 {
		t.Errorf("SeedsResolved = %d; want 3", s.SeedsResolved)
	}
	if s.QuestionsValidated != 2 || s.AnswersValidated != 2 {
		t.Errorf("validated = %d/%d; want 2/2", s.QuestionsValidated, s.AnswersValidated)
	}
	if s.FindingsError != 1 || s.FindingsWarning != 1 || s.FindingsInfo != 1 {
		t.Errorf("findings = %d/%d/%d; want 1/1/1", s.FindingsError, s.FindingsWarning, s.FindingsInfo)
	}
	if s.ValidationsTotal != 1 || s.TotalTimeNanos == 0 {
		t.Errorf("validations = %d, nanos = %d", s.ValidationsTotal, s.TotalTimeNanos)
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.RecordRule(false)
	m.RecordSeeds(5)
	m.RecordFinding(SeverityError)
	m.Reset()

	if s := m.Snapshot(); s != (Snapshot{}) {
		t.Errorf("Snapshot after Reset = %+v; want zero", s)
	}
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordRule(false)
				m.RecordFinding(SeverityError)
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.RulesProcessed != 1000 {
		t.Errorf("RulesProcessed = %d; want 1000", s.RulesProcessed)
	}
	if s.FindingsError != 1000 {
		t.Errorf("FindingsError = %d; want 1000", s.FindingsError)
	}
}

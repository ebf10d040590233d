package question

import (
	"context"
	"sync"
)

// InMemoryCatalog implements Catalog with in-memory storage. It backs the
// CLI and tests; production deployments supply their own Catalog.
type InMemoryCatalog struct {
	mu        sync.RWMutex
	sets      map[string]*QuestionSet // key: projectID + "/" + id
	questions map[string]*Question
}

// NewInMemoryCatalog creates an empty catalog.
func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{
		sets:      make(map[string]*QuestionSet),
		questions: make(map[string]*Question),
	}
}

func catalogKey(projectID, id string) string {
	return projectID + "/" + id
}

// AddQuestionSet stores a question set for a project.
func (c *InMemoryCatalog) AddQuestionSet(projectID string, qs *QuestionSet) {
	if qs == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets[catalogKey(projectID, qs.ID)] = qs
}

// AddQuestion stores a question definition for a project.
func (c *InMemoryCatalog) AddQuestion(projectID string, q *Question) {
	if q == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions[catalogKey(projectID, q.ID)] = q
}

// QuestionSet implements Catalog.
func (c *InMemoryCatalog) QuestionSet(_ context.Context, projectID, id string) (*QuestionSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sets[catalogKey(projectID, id)], nil
}

// Question implements Catalog.
func (c *InMemoryCatalog) Question(_ context.Context, projectID, id string) (*Question, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.questions[catalogKey(projectID, id)], nil
}

// Counts returns the number of stored sets and questions.
func (c *InMemoryCatalog) Counts() (sets, questions int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sets), len(c.questions)
}

// Verify interface compliance.
var _ Catalog = (*InMemoryCatalog)(nil)

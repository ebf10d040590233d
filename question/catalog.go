package question

import "context"

// Catalog resolves project-scoped question definitions. Implementations
// typically front a database or an HTTP service; lookups are the only
// suspension points of a validation call.
//
// Not-found is (nil, nil), never an error. Errors are reserved for
// infrastructure failures and degrade to advisory notes upstream.
type Catalog interface {
	// QuestionSet returns the set with the given id, or nil.
	QuestionSet(ctx context.Context, projectID, id string) (*QuestionSet, error)

	// Question returns the question with the given id, or nil.
	Question(ctx context.Context, projectID, id string) (*Question, error)
}

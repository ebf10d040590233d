// Package condition evaluates rule-applicability conditions against
// resources. A rule may carry a FHIRPath expression in its params; the
// rule then only runs where the expression holds.
package condition

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofhir/fhirpath"
	"github.com/gofhir/fhirpath/types"
)

// Evaluator decides whether a condition expression holds for a resource.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string, resource map[string]any) (bool, error)
}

// FHIRPathEvaluator implements Evaluator with compiled FHIRPath
// expressions. Compiled expressions are cached; the cache is safe for
// concurrent use because rules may run in parallel.
type FHIRPathEvaluator struct {
	mu    sync.RWMutex
	cache map[string]*fhirpath.Expression
}

// NewFHIRPathEvaluator creates an evaluator with an empty cache.
func NewFHIRPathEvaluator() *FHIRPathEvaluator {
	return &FHIRPathEvaluator{
		cache: make(map[string]*fhirpath.Expression),
	}
}

// Evaluate compiles (or reuses) the expression and applies it to the
// resource. Non-boolean results follow FHIRPath truthiness: an empty
// collection is false, a single boolean is itself, any other non-empty
// collection is true.
func (e *FHIRPathEvaluator) Evaluate(_ context.Context, expression string, resource map[string]any) (bool, error) {
	data, err := json.Marshal(resource)
	if err != nil {
		return false, fmt.Errorf("encode resource: %w", err)
	}

	compiled, err := e.compile(expression)
	if err != nil {
		return false, fmt.Errorf("compile condition %q: %w", expression, err)
	}

	result, err := compiled.Evaluate(data)
	if err != nil {
		return false, fmt.Errorf("evaluate condition %q: %w", expression, err)
	}
	return toBool(result), nil
}

func (e *FHIRPathEvaluator) compile(expression string) (*fhirpath.Expression, error) {
	e.mu.RLock()
	compiled, ok := e.cache[expression]
	e.mu.RUnlock()
	if ok {
		return compiled, nil
	}

	compiled, err := fhirpath.Compile(expression)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[expression] = compiled
	e.mu.Unlock()
	return compiled, nil
}

func toBool(result types.Collection) bool {
	if len(result) == 0 {
		return false
	}
	if len(result) == 1 {
		if b, ok := result[0].(types.Boolean); ok {
			return b.Bool()
		}
	}
	return true
}

// CacheSize returns the number of cached expressions.
func (e *FHIRPathEvaluator) CacheSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

// Verify interface compliance.
var _ Evaluator = (*FHIRPathEvaluator)(nil)

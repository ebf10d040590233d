package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/clinrule/qavalidator/bundle"
	"github.com/clinrule/qavalidator/rule"
)

// runParallel validates rules on a bounded worker pool. Each rule's
// outcome lands in its ruleset position, so the caller's merge preserves
// deterministic ordering regardless of completion order.
func (v *Validator) runParallel(ctx context.Context, log *zap.Logger, b *bundle.Bundle, rules []rule.Rule, projectID string) []ruleOutcome {
	outcomes := make([]ruleOutcome, len(rules))

	workers := v.options.WorkerCount
	if workers <= 0 || workers > len(rules) {
		workers = len(rules)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = v.validateRule(ctx, log, b, rules[i], projectID)
			}
		}()
	}

	for i := range rules {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

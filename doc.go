// Package qavalidator validates question/answer business rules against
// clinical data bundles.
//
// Given a bundle (an ordered collection of typed resources), a set of
// QuestionAnswer rules, and externally supplied question definitions, the
// validator produces machine-readable findings. It never produces prose:
// every finding is an error code from a closed taxonomy plus a typed fact
// payload, so that all wording is owned by a presentation layer.
//
// # Quick Start
//
//	import (
//	    qav "github.com/clinrule/qavalidator"
//	    "github.com/clinrule/qavalidator/engine"
//	)
//
//	v := engine.New(qav.WithParallelRules(true))
//	v.SetCatalog(catalog)
//
//	result, err := v.Validate(ctx, bundle, ruleset, projectID)
//	for _, f := range result.Findings {
//	    fmt.Println(f.Code, f.Path)
//	}
//
// # Architecture
//
//   - resolve: locates every place in the bundle a rule must run, including
//     repeating sub-elements, with a deterministic canonical path per seed
//   - navigate/answer: relative-path value extraction and run-time kind
//     classification
//   - check: one validation routine per answer kind
//   - engine: orchestration, per-rule failure isolation, cancellation
//
// The root package owns the finding taxonomy, the typed fact model, and the
// no-prose guard that rejects sentence-like hints at construction time.
package qavalidator

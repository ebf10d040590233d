// Package engine orchestrates question/answer rule validation: it
// resolves iteration contexts, extracts and matches question codes,
// dispatches answers to the type validators, and aggregates findings
// while isolating per-rule failures.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	qav "github.com/clinrule/qavalidator"
	"github.com/clinrule/qavalidator/answer"
	"github.com/clinrule/qavalidator/bundle"
	"github.com/clinrule/qavalidator/check"
	"github.com/clinrule/qavalidator/condition"
	"github.com/clinrule/qavalidator/navigate"
	"github.com/clinrule/qavalidator/question"
	"github.com/clinrule/qavalidator/resolve"
	"github.com/clinrule/qavalidator/rule"
)

// Validator is the entry point of the subsystem. It is safe for
// concurrent Validate calls once configured; configuration setters are
// not synchronized with running validations.
type Validator struct {
	options *qav.Options

	catalog    question.Catalog
	navigator  navigate.Navigator
	conditions condition.Evaluator

	resolver  *resolve.Resolver
	extractor *answer.Extractor
	checker   *check.Checker

	log     *zap.Logger
	metrics *qav.Metrics
}

// New creates a Validator with the given options.
func New(opts ...qav.Option) *Validator {
	options := qav.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	v := &Validator{
		options:   options,
		navigator: navigate.NewPathNavigator(),
		log:       zap.NewNop(),
		metrics:   qav.NewMetrics(),
	}
	v.rebuild()
	return v
}

func (v *Validator) rebuild() {
	v.resolver = resolve.New(v.log)
	v.extractor = answer.NewExtractor(v.navigator)
	v.checker = check.New(v.log)
}

// SetCatalog sets the question definition lookup collaborator.
func (v *Validator) SetCatalog(c question.Catalog) {
	v.catalog = c
}

// SetNavigator replaces the relative-path navigator.
func (v *Validator) SetNavigator(n navigate.Navigator) {
	if n == nil {
		n = navigate.NewPathNavigator()
	}
	v.navigator = n
	v.rebuild()
}

// SetConditionEvaluator enables rule-applicability conditions.
func (v *Validator) SetConditionEvaluator(e condition.Evaluator) {
	v.conditions = e
}

// SetLogger sets the structured logger.
func (v *Validator) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	v.log = log
	v.rebuild()
}

// Metrics returns the validator's counters.
func (v *Validator) Metrics() *qav.Metrics {
	return v.metrics
}

// Validate runs every QuestionAnswer rule of the ruleset against the
// bundle and returns the aggregated result. The bundle and ruleset are
// never mutated; validating the same inputs twice yields an identical,
// identically ordered findings list.
//
// Cancellation is cooperative between rules (and between seeds); on
// cancellation the partial result is returned alongside ctx.Err().
func (v *Validator) Validate(ctx context.Context, b *bundle.Bundle, rs *rule.Set, projectID string) (*qav.Result, error) {
	start := time.Now()
	res := qav.NewResult()
	if b == nil || rs == nil {
		return res, nil
	}

	log := v.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("project_id", projectID),
	)

	rules := rs.OfType(rule.TypeQuestionAnswer)

	var outcomes []ruleOutcome
	if v.options.ParallelRules && len(rules) > 1 {
		outcomes = v.runParallel(ctx, log, b, rules, projectID)
	} else {
		outcomes = make([]ruleOutcome, 0, len(rules))
		for _, rl := range rules {
			if ctx.Err() != nil {
				break
			}
			outcomes = append(outcomes, v.validateRule(ctx, log, b, rl, projectID))
		}
	}

	// Per-rule outcomes merge in ruleset order so parallel execution
	// cannot reorder or interleave findings.
	for _, out := range outcomes {
		res.AddFindings(out.findings)
		for _, note := range out.notes {
			res.AddAdvisory(note)
		}
		res.CountValidated(out.questions, out.answers)
		if v.options.CollectMetrics {
			for _, f := range out.findings {
				v.metrics.RecordFinding(f.Severity)
			}
		}
	}

	if max := v.options.MaxFindings; max > 0 && len(res.Findings) > max {
		res.Findings = res.Findings[:max]
	}

	if v.options.CollectMetrics {
		v.metrics.RecordValidation(time.Since(start))
	}
	return res, ctx.Err()
}

// ruleOutcome is the isolated result of one rule.
type ruleOutcome struct {
	findings  []qav.Finding
	notes     []string
	questions int
	answers   int
}

// validateRule runs one rule end to end. Panics degrade to an advisory
// note naming the rule; they never abort the call.
func (v *Validator) validateRule(ctx context.Context, log *zap.Logger, b *bundle.Bundle, rl rule.Rule, projectID string) (out ruleOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("rule validation panicked",
				zap.String("rule_id", rl.ID),
				zap.Any("panic", rec))
			out = ruleOutcome{
				notes: []string{fmt.Sprintf("rule %s: internal error during validation", rl.ID)},
			}
		}
	}()

	params, ok := rl.QAParams()
	if !ok {
		// An unconfigured rule is not a contract violation.
		log.Debug("rule missing parameters, skipped", zap.String("rule_id", rl.ID))
		if v.options.CollectMetrics {
			v.metrics.RecordRule(true)
		}
		return out
	}
	if v.options.CollectMetrics {
		v.metrics.RecordRule(false)
	}

	if v.catalog == nil {
		out.notes = append(out.notes, fmt.Sprintf("rule %s: no question catalog configured", rl.ID))
		return out
	}

	qs, err := v.catalog.QuestionSet(ctx, projectID, params.QuestionSetID)
	if err != nil {
		out.notes = append(out.notes, fmt.Sprintf("rule %s: question set %s lookup failed: %v", rl.ID, params.QuestionSetID, err))
		return out
	}
	if qs == nil {
		f, ferr := qav.NewQuestionSetDataMissing(qav.QuestionSetDataMissingParams{
			Site:          qav.FindingSite{RuleID: rl.ID, ResourceType: rl.ResourceType, EntryIndex: -1},
			QuestionSetID: params.QuestionSetID,
		})
		if ferr == nil {
			out.findings = append(out.findings, f)
		}
		return out
	}

	defs, unresolved := v.loadQuestions(ctx, log, &out, rl, qs, projectID)

	seeds := v.resolver.Resolve(b, rl)
	if v.options.CollectMetrics {
		v.metrics.RecordSeeds(len(seeds))
	}

	for _, seed := range seeds {
		if ctx.Err() != nil {
			return out
		}
		findings, questions, answers := v.validateSeed(ctx, log, rl, params, qs, defs, unresolved, seed)
		out.findings = append(out.findings, findings...)
		out.questions += questions
		out.answers += answers
	}
	if v.options.CollectMetrics {
		v.metrics.RecordValidated(out.questions, out.answers)
	}
	return out
}

// loadQuestions resolves every referenced question definition. Partial
// failures are advisory: unresolved ids are remembered so seed-level
// matching can report missing master data instead of a false not-found.
func (v *Validator) loadQuestions(ctx context.Context, log *zap.Logger, out *ruleOutcome, rl rule.Rule, qs *question.QuestionSet, projectID string) (map[string]*question.Question, []string) {
	defs := make(map[string]*question.Question, len(qs.Questions))
	var unresolved []string
	for _, ref := range qs.Questions {
		q, err := v.catalog.Question(ctx, projectID, ref.QuestionID)
		if err != nil {
			out.notes = append(out.notes, fmt.Sprintf("rule %s: question %s lookup failed: %v", rl.ID, ref.QuestionID, err))
			unresolved = append(unresolved, ref.QuestionID)
			continue
		}
		if q == nil {
			log.Debug("question definition missing",
				zap.String("rule_id", rl.ID),
				zap.String("question_id", ref.QuestionID))
			unresolved = append(unresolved, ref.QuestionID)
			continue
		}
		defs[ref.QuestionID] = q
	}
	return defs, unresolved
}

// validateSeed validates one iteration context. It returns the findings
// plus the question/answer counters this seed contributes.
func (v *Validator) validateSeed(
	ctx context.Context,
	log *zap.Logger,
	rl rule.Rule,
	params rule.QAParams,
	qs *question.QuestionSet,
	defs map[string]*question.Question,
	unresolved []string,
	seed resolve.ContextSeed,
) ([]qav.Finding, int, int) {
	if params.Condition != "" && v.conditions != nil {
		applies, err := v.conditions.Evaluate(ctx, params.Condition, seed.Resource)
		if err != nil {
			// Fail open: a broken condition must not suppress validation.
			log.Warn("condition evaluation failed, rule applied",
				zap.String("rule_id", rl.ID),
				zap.String("path", seed.CanonicalPath),
				zap.Error(err))
		} else if !applies {
			return nil, 0, 0
		}
	}

	coding, err := v.extractor.QuestionCode(seed.IterationNode, params.QuestionPath)
	if err != nil {
		log.Warn("question path evaluation failed",
			zap.String("rule_id", rl.ID),
			zap.String("path", seed.CanonicalPath),
			zap.Error(err))
		return nil, 0, 0
	}
	if coding == nil {
		// Nothing to validate at this seed.
		return nil, 0, 0
	}

	site := qav.FindingSite{
		RuleID:       rl.ID,
		ResourceType: rl.ResourceType,
		EntryIndex:   seed.EntryIndex,
		Location:     qav.Location{Path: seed.CanonicalPath, Pointer: params.AnswerPath},
	}

	var matched *question.Question
	var matchedRef question.QuestionRef
	for _, ref := range qs.Questions {
		q := defs[ref.QuestionID]
		if q == nil {
			continue
		}
		if q.Code.System == coding.System && q.Code.Code == coding.Code {
			matched = q
			matchedRef = ref
			break
		}
	}

	if matched == nil {
		if len(unresolved) > 0 {
			// One of the unloadable definitions might have matched:
			// report missing master data, not a false not-found.
			f, ferr := qav.NewQuestionSetDataMissing(qav.QuestionSetDataMissingParams{
				Site:                  site,
				QuestionSetID:         qs.ID,
				UnresolvedQuestionIDs: unresolved,
			})
			if ferr != nil {
				return nil, 1, 0
			}
			return []qav.Finding{f}, 1, 0
		}
		f, ferr := qav.NewQuestionNotFound(qav.QuestionNotFoundParams{
			Site:          site,
			QuestionSetID: qs.ID,
			System:        coding.System,
			Code:          coding.Code,
		})
		if ferr != nil {
			return nil, 1, 0
		}
		return []qav.Finding{f}, 1, 0
	}

	values, err := v.extractor.Answers(seed.IterationNode, params.AnswerPath)
	if err != nil {
		log.Warn("answer path evaluation failed",
			zap.String("rule_id", rl.ID),
			zap.String("path", seed.CanonicalPath),
			zap.Error(err))
		return nil, 1, 0
	}

	if len(values) == 0 || !answer.IsPresent(values[0]) {
		if !matchedRef.Required {
			return nil, 1, 0
		}
		f, ferr := qav.NewAnswerRequired(qav.AnswerRequiredParams{
			Site: site,
			Question: qav.QuestionRef{
				QuestionSetID: qs.ID,
				QuestionID:    matched.ID,
				System:        matched.Code.System,
				Code:          matched.Code.Code,
				Display:       matched.Code.Display,
			},
		})
		if ferr != nil {
			return nil, 1, 0
		}
		return []qav.Finding{f}, 1, 0
	}

	var findings []qav.Finding
	if len(values) > 1 {
		f, ferr := qav.NewAnswerMultipleNotAllowed(qav.AnswerMultipleNotAllowedParams{
			Site: site,
			Question: qav.QuestionRef{
				QuestionSetID: qs.ID,
				QuestionID:    matched.ID,
				System:        matched.Code.System,
				Code:          matched.Code.Code,
			},
			Count: len(values),
		})
		if ferr == nil {
			findings = append(findings, f)
		}
	}

	findings = append(findings, v.checker.Check(values[0], check.Target{
		Site:          site,
		Question:      matched,
		QuestionSetID: qs.ID,
	})...)
	return findings, 1, 1
}

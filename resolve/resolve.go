// Package resolve locates every place in a bundle a rule must be checked.
//
// For most rules one resource yields one iteration context. Rules whose
// field path touches a recognized repeating element instead yield one
// context per sub-element, in document order. Recognition is a whitelist:
// the pattern table below is the only place repeating shapes are known,
// and supporting a new one means adding a table entry.
package resolve

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/clinrule/qavalidator/bundle"
	"github.com/clinrule/qavalidator/rule"
)

// ResourceLevel is the iteration index of a resource-level seed.
const ResourceLevel = -1

// ContextSeed is one resolved place a rule runs: the owning resource, the
// node the rule's relative paths are evaluated against, and a canonical
// path derived purely from (resourceType, entryIndex, iterationIndex).
// Seeds of one rule never collide on CanonicalPath.
type ContextSeed struct {
	Resource       bundle.Resource
	IterationNode  map[string]any
	EntryIndex     int
	IterationIndex int
	CanonicalPath  string
}

// repeatPattern declares one supported repeating-element shape.
type repeatPattern struct {
	resourceType string
	element      string
}

// repeatPatterns is the whitelist of repeating shapes the resolver
// iterates. One row per supported shape; no path parsing beyond prefix
// matching against the declared element.
var repeatPatterns = []repeatPattern{
	{resourceType: "Observation", element: "component"},
	{resourceType: "QuestionnaireResponse", element: "item"},
}

// patternFor returns the matching pattern, or nil for resource-level
// iteration.
func patternFor(resourceType, fieldPath string) *repeatPattern {
	for i := range repeatPatterns {
		p := &repeatPatterns[i]
		if p.resourceType != resourceType {
			continue
		}
		if fieldPath == p.element ||
			strings.HasPrefix(fieldPath, p.element+".") ||
			strings.HasPrefix(fieldPath, p.element+"[") {
			return p
		}
	}
	return nil
}

// Resolver produces context seeds for rules. It is a pure read-only
// traversal; malformed resources degrade to zero seeds with a log line,
// never to an aborted resolution.
type Resolver struct {
	log *zap.Logger
}

// New creates a resolver. A nil logger disables logging.
func New(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log}
}

// Resolve yields one seed per place the rule must be checked, in entry
// order, then sub-element order.
func (r *Resolver) Resolve(b *bundle.Bundle, rl rule.Rule) []ContextSeed {
	if b == nil {
		return nil
	}
	var seeds []ContextSeed
	for i, entry := range b.Entries {
		if entry.Resource.Type() != rl.ResourceType {
			continue
		}
		seeds = append(seeds, r.entrySeeds(i, entry.Resource, rl)...)
	}
	return seeds
}

// entrySeeds produces the seeds one entry contributes. A panic while
// reading malformed data drops that entry's seeds only.
func (r *Resolver) entrySeeds(entryIndex int, res bundle.Resource, rl rule.Rule) (seeds []ContextSeed) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Warn("seed resolution failed, entry skipped",
				zap.String("rule_id", rl.ID),
				zap.Int("entry_index", entryIndex),
				zap.Any("panic", rec))
			seeds = nil
		}
	}()

	pattern := patternFor(rl.ResourceType, rl.FieldPath)
	if pattern == nil {
		return []ContextSeed{resourceSeed(entryIndex, res)}
	}

	raw, ok := res[pattern.element]
	if !ok || raw == nil {
		// Absent repeating element: fall back to resource-level iteration.
		return []ContextSeed{resourceSeed(entryIndex, res)}
	}
	list, ok := raw.([]any)
	if !ok {
		r.log.Warn("repeating element is not a list, entry skipped",
			zap.String("rule_id", rl.ID),
			zap.String("element", pattern.element),
			zap.Int("entry_index", entryIndex))
		return nil
	}

	for j, item := range list {
		node, ok := item.(map[string]any)
		if !ok {
			r.log.Debug("repeating element item is not an object, skipped",
				zap.String("rule_id", rl.ID),
				zap.Int("entry_index", entryIndex),
				zap.Int("item_index", j))
			continue
		}
		seeds = append(seeds, ContextSeed{
			Resource:       res,
			IterationNode:  node,
			EntryIndex:     entryIndex,
			IterationIndex: j,
			CanonicalPath:  elementPath(entryIndex, pattern.element, j),
		})
	}
	return seeds
}

func resourceSeed(entryIndex int, res bundle.Resource) ContextSeed {
	return ContextSeed{
		Resource:       res,
		IterationNode:  map[string]any(res),
		EntryIndex:     entryIndex,
		IterationIndex: ResourceLevel,
		CanonicalPath:  resourcePath(entryIndex),
	}
}

func resourcePath(entryIndex int) string {
	return fmt.Sprintf("Bundle.entry[%d].resource", entryIndex)
}

func elementPath(entryIndex int, element string, itemIndex int) string {
	return fmt.Sprintf("Bundle.entry[%d].resource.%s[%d]", entryIndex, element, itemIndex)
}

// Package bundle models the clinical data bundle under validation: an
// ordered sequence of entries, each wrapping at most one typed resource.
// Bundles are treated as immutable for the duration of a validation call.
package bundle

import (
	"encoding/json"
	"fmt"
)

// Resource is a tree-shaped record with a resourceType tag, as decoded
// from JSON. Validation never mutates a resource.
type Resource map[string]any

// Type returns the resourceType tag, or "" when absent.
func (r Resource) Type() string {
	if r == nil {
		return ""
	}
	if rt, ok := r["resourceType"].(string); ok {
		return rt
	}
	return ""
}

// ID returns the resource id, or "" when absent.
func (r Resource) ID() string {
	if r == nil {
		return ""
	}
	if id, ok := r["id"].(string); ok {
		return id
	}
	return ""
}

// Entry is one position in a bundle, optionally wrapping a resource.
type Entry struct {
	FullURL  string   `json:"fullUrl,omitempty"`
	Resource Resource `json:"resource,omitempty"`
}

// Bundle is an ordered collection of entries.
type Bundle struct {
	Entries []Entry
}

// Len returns the number of entries.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Entries)
}

// Parse decodes a JSON bundle document. The document must be an object
// with resourceType "Bundle"; its "entry" array becomes the entries.
func Parse(data []byte) (*Bundle, error) {
	var raw struct {
		ResourceType string `json:"resourceType"`
		Entry        []struct {
			FullURL  string         `json:"fullUrl"`
			Resource map[string]any `json:"resource"`
		} `json:"entry"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if raw.ResourceType != "Bundle" {
		return nil, fmt.Errorf("expected resourceType Bundle, got %q", raw.ResourceType)
	}

	b := &Bundle{Entries: make([]Entry, 0, len(raw.Entry))}
	for _, e := range raw.Entry {
		b.Entries = append(b.Entries, Entry{
			FullURL:  e.FullURL,
			Resource: Resource(e.Resource),
		})
	}
	return b, nil
}

// New builds a bundle from resources, one entry per resource, in order.
func New(resources ...Resource) *Bundle {
	b := &Bundle{Entries: make([]Entry, 0, len(resources))}
	for _, r := range resources {
		b.Entries = append(b.Entries, Entry{Resource: r})
	}
	return b
}

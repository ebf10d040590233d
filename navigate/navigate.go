// Package navigate evaluates relative navigation expressions against
// tree-shaped resource nodes.
//
// Navigation is deliberately not a general path-execution engine: the
// supported expression shapes are closed and enumerable (dotted field
// segments, optionally index-qualified), and extending them means
// extending the grammar here, not scattering string checks through
// callers.
package navigate

// Navigator selects the values a relative path expression matches under a
// node. A path that resolves to nothing yields zero matches, not an
// error; errors are reserved for malformed expressions.
type Navigator interface {
	Select(node map[string]any, relativePath string) ([]any, error)
}

// PathNavigator is the default Navigator. Its grammar is:
//
//	path    = segment *("." segment)
//	segment = field [ "[" index "]" ]
//
// A field whose value is a list fans out over the list elements when no
// index is given. Matches are returned in document order.
type PathNavigator struct{}

// NewPathNavigator creates the default navigator.
func NewPathNavigator() *PathNavigator {
	return &PathNavigator{}
}

// Select implements Navigator.
func (n *PathNavigator) Select(node map[string]any, relativePath string) ([]any, error) {
	segments, err := parsePath(relativePath)
	if err != nil {
		return nil, err
	}
	if node == nil || len(segments) == 0 {
		return nil, nil
	}

	current := []any{map[string]any(node)}
	for _, seg := range segments {
		var next []any
		for _, c := range current {
			m, ok := c.(map[string]any)
			if !ok {
				continue
			}
			v, ok := m[seg.field]
			if !ok || v == nil {
				continue
			}
			switch val := v.(type) {
			case []any:
				if seg.indexed {
					if seg.index >= 0 && seg.index < len(val) {
						next = append(next, val[seg.index])
					}
					continue
				}
				next = append(next, val...)
			default:
				if seg.indexed {
					// An index on a scalar only matches position zero.
					if seg.index == 0 {
						next = append(next, val)
					}
					continue
				}
				next = append(next, val)
			}
		}
		current = next
		if len(current) == 0 {
			return nil, nil
		}
	}
	return current, nil
}

// First returns the first match of a path, or nil.
func First(n Navigator, node map[string]any, relativePath string) (any, error) {
	values, err := n.Select(node, relativePath)
	if err != nil || len(values) == 0 {
		return nil, err
	}
	return values[0], nil
}

// Verify interface compliance.
var _ Navigator = (*PathNavigator)(nil)

package navigate

import (
	"fmt"
	"strconv"
	"strings"
)

// segment is one parsed path segment: a field name, optionally with a
// zero-based list index.
type segment struct {
	field   string
	indexed bool
	index   int
}

// parsePath splits a relative path into segments, validating the closed
// grammar. An empty path yields zero segments.
func parsePath(path string) ([]segment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	parts := strings.Split(path, ".")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("empty segment in path %q", path)
		}
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", path, err)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func parseSegment(part string) (segment, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if strings.IndexByte(part, ']') >= 0 {
			return segment{}, fmt.Errorf("unmatched ']' in segment %q", part)
		}
		return segment{field: part}, nil
	}
	if !strings.HasSuffix(part, "]") || open == 0 {
		return segment{}, fmt.Errorf("malformed segment %q", part)
	}
	idxText := part[open+1 : len(part)-1]
	idx, err := strconv.Atoi(idxText)
	if err != nil || idx < 0 {
		return segment{}, fmt.Errorf("invalid index %q in segment %q", idxText, part)
	}
	return segment{field: part[:open], indexed: true, index: idx}, nil
}

package neta

import (
	"fmt"
	"strings"
)

// CategorizedFromRecord builds a Categorized from a decoded JSON object with
// aruaru/arisou/nainai keys. Each value may be a list of strings or a single
// string (coerced to a one-element list). Missing keys yield empty buckets.
func CategorizedFromRecord(rec map[string]any) (Categorized, error) {
	var c Categorized
	for _, l := range Levels {
		raw, ok := rec[string(l)]
		if !ok || raw == nil {
			continue
		}
		items, err := StringList(raw)
		if err != nil {
			return Categorized{}, fmt.Errorf("%s: %w", l, err)
		}
		switch l {
		case Aruaru:
			c.Aruaru = items
		case Arisou:
			c.Arisou = items
		case Nainai:
			c.Nainai = items
		}
	}
	return c, nil
}

// StringList coerces a decoded JSON value into a list of non-empty strings.
func StringList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}, nil
		}
		return nil, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d is %T, want string", i, item)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("got %T, want string or list", v)
	}
}

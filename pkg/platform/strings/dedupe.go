// Package strings provides string slice utilities.
package strings

import (
	"strings"
)

// DedupeExcluding trims whitespace from each value and removes blanks,
// duplicates and every value equal to one of exclude. Order is preserved. It
// returns nil rather than an empty slice so callers can rely on omitempty.
//
// Example:
//
//	DedupeExcluding([]string{"GBR-PS-1", "GBR-PS-2", "GBR-PS-1"}, "GBR-PS-2")
//	// Returns: []string{"GBR-PS-1"}
func DedupeExcluding(values []string, exclude ...string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values)+len(exclude))
	for _, e := range exclude {
		seen[strings.TrimSpace(e)] = struct{}{}
	}

	var result []string
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// Package strings provides string helpers shared by transports.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved and case is kept,
// since scope names compare case-sensitively.
//
//	DedupeAndTrim([]string{"  openid ", "profile", "openid", ""})
//	// []string{"openid", "profile"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

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

// SplitFields splits a space-delimited list (an OAuth scope parameter) and
// dedupes it. An empty input yields an empty, non-nil slice.
func SplitFields(value string) []string {
	fields := DedupeAndTrim(strings.Fields(value))
	if fields == nil {
		return []string{}
	}
	return fields
}

// Package utils provides small, generic parsing helpers used across layers.
// Nothing here knows about tickets or services.
package utils

import "strconv"

// AtoiDefault converts s to an int, returning def when s is empty or not a
// valid integer. Input is not trimmed: a query value with stray whitespace
// falls back to the default rather than being silently repaired.
//
//	utils.AtoiDefault("6", 0)  // 6
//	utils.AtoiDefault("", 6)   // 6
//	utils.AtoiDefault("x", 6)  // 6
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

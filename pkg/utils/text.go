// Package utils provides shared helpers for text, vector math, and logging.
package utils

// Truncate shortens s to at most maxLen runes, appending "..." when it cuts.
// Model paths and tokens may be non-ASCII, so the cut never splits a rune.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i] + "..."
		}
		n++
	}
	return s
}

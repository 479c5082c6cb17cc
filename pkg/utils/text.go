package utils

// Truncate returns s cut to at most maxLen runes, never splitting a multibyte
// character (dosage text carries µ and dash runes). If maxLen is 0 or negative,
// s is returned unchanged. No ellipsis is appended; callers that need one add it.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i]
		}
		n++
	}
	return s
}

// HashString returns a deterministic non-negative hash of s.
func HashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}

package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone converts a raw phone string to canonical E.164 form.
// Exactly 10 digits are assumed to be a US number; 11 digits with a leading
// trunk "1" are accepted as-is. Anything else returns false — callers must
// reject the input rather than guess.
func NormalizePhone(raw string) (string, bool) {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")
	switch {
	case len(digits) == 10:
		return "+1" + digits, true
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits, true
	default:
		return "", false
	}
}

// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
)

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// CollapseWhitespace folds all whitespace runs into single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DecodeLossy interprets raw bytes as UTF-8 text, dropping invalid
// sequences, and sanitizes the result. Used for plain-text uploads.
func DecodeLossy(data []byte) string {
	return SanitizeText(strings.ToValidUTF8(string(data), ""))
}

package screening

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// experiencePattern captures "<N> years" or "<N>+ years"; matching runs
	// on lower-cased text.
	experiencePattern = regexp.MustCompile(`(\d+)\+?\s+years?`)
	emailPattern      = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
)

// ExtractExperience finds a years-of-experience figure in text, e.g.
// "3 years" or "5+ years". The FIRST match wins: a resume stating
// "2 years as intern, 5+ years total" yields 2, not 5. Returns nil when no
// pattern matches.
func ExtractExperience(text string) *float64 {
	m := experiencePattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return nil
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &n
}

// ExtractEmail returns the first email-like substring in text, or "".
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

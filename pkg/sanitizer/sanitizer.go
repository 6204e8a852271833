package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reKeepCodeChars   = regexp.MustCompile(`[^0-9A-Za-z\-]+`)
	reMultiDash       = regexp.MustCompile(`-+`)
	reKeepLettersOnly = regexp.MustCompile(`[^\p{L}]+`)
	reTrimUnderscores = regexp.MustCompile(`_+`)
)

func collapseUnderscores(s string) string {
	s = reTrimUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// SanitizeLabel normalizes course and subject labels to a lowercase
// underscore-separated token used for grouping and search.
func SanitizeLabel(input string) string {
	p := Pipeline{
		func(s string) string { return strings.ToLower(strings.TrimSpace(s)) },
		func(s string) string { return reKeepLettersOnly.ReplaceAllString(s, "_") },
		collapseUnderscores,
	}
	return p.Apply(input)
}

// SanitizeCode normalizes classroom codes ("Aula B-12" -> "AULA-B-12"):
// uppercase, alphanumeric and dashes only.
func SanitizeCode(input string) string {
	p := Pipeline{
		func(s string) string { return strings.ToUpper(strings.TrimSpace(s)) },
		func(s string) string { return reKeepCodeChars.ReplaceAllString(s, "-") },
		func(s string) string { return strings.Trim(reMultiDash.ReplaceAllString(s, "-"), "-") },
	}
	return p.Apply(input)
}

// SanitizeSlice applies a strategy to each value, dropping empties and
// duplicates while keeping first-seen order.
func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

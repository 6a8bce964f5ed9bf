package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// textTriggers are keywords known to coax image models into rendering
// lettering, paired with the neutral substitution applied by Validate. Order
// matters: longer phrases are checked before their substrings.
var textTriggers = []struct {
	keyword     string
	replacement string
}{
	{"book cover", "front of a closed object"},
	{"speech bubble", "expressive gesture"},
	{"alphabet", "colorful patterns"},
	{"letters", "small shapes"},
	{"letter", "small shape"},
	{"writing", "drawing"},
	{"written", "drawn"},
	{"words", "patterns"},
	{"word", "pattern"},
	{"text", "detail"},
	{"caption", "border"},
	{"label", "marking"},
	{"sign", "symbol"},
	{"title", "decoration"},
	{"newspaper", "folded paper"},
}

// ValidationResult is the outcome of linting an image prompt for
// text-triggering keywords.
type ValidationResult struct {
	Original string   `json:"original"`
	Cleaned  string   `json:"cleaned"`
	Issues   []string `json:"issues"`
	IsSafe   bool     `json:"is_safe"`
}

// Validate scans an image prompt for keywords that tend to make the model
// render readable text, reports each hit, and produces a cleaned variant with
// the substitutions applied. Matching is whole-word and case-insensitive.
func Validate(p string) ValidationResult {
	res := ValidationResult{
		Original: p,
		Cleaned:  p,
		Issues:   []string{},
	}
	for _, t := range textTriggers {
		rx := regexp.MustCompile(`(?i)\b` + strings.ReplaceAll(regexp.QuoteMeta(t.keyword), ` `, `\s+`) + `\b`)
		if !rx.MatchString(res.Cleaned) {
			continue
		}
		res.Issues = append(res.Issues, fmt.Sprintf("contains text-trigger keyword %q; replaced with %q", t.keyword, t.replacement))
		res.Cleaned = rx.ReplaceAllString(res.Cleaned, t.replacement)
	}
	res.IsSafe = len(res.Issues) == 0
	return res
}

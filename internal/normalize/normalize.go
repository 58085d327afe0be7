package normalize

import (
	"regexp"
	"strings"
)

// substitution is one literal replacement in the OCR cleanup table.
type substitution struct {
	pattern     string
	replacement string
}

// substitutions corrects common OCR confusions and obfuscated separators.
// Order matters: replacements are applied sequentially as literal text edits,
// so later entries can consume text produced by earlier ones. Do not collapse
// this into a single regex; the observed behavior depends on sequential,
// overlapping application.
var substitutions = []substitution{
	{"(at)", "@"},
	{"[at]", "@"},
	{" at ", "@"},
	{" dot ", "."},
	{"|", "1"},
	{"I", "1"},
	{"l", "1"},
	{"O", "0"},
	{"o", "0"},
}

var multiSpace = regexp.MustCompile(`\s{2,}`)

// Clean turns raw OCR output into a single normalized line: newlines become
// spaces, the substitution table is applied in order, and runs of whitespace
// collapse to one space. Always returns a string, possibly empty.
func Clean(raw string) string {
	text := strings.ReplaceAll(raw, "\n", " ")
	for _, s := range substitutions {
		text = strings.ReplaceAll(text, s.pattern, s.replacement)
	}
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

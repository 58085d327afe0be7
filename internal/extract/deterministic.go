package extract

import (
	"regexp"
	"strings"

	"visiting-card-bot/constants"
	"visiting-card-bot/internal/entity"
)

// Fields with strict lexical structure are extracted by pattern, not by the
// model: regex output is deterministic and auditable, so it always wins over
// AI-provided phone/email/website values.
var (
	phonePattern   = regexp.MustCompile(`(\+91[\s\-]?\d{10}|\b\d{10}\b)`)
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	websitePattern = regexp.MustCompile(`(https?://[^\s]+|www\.[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
)

// Deterministic extracts phone, email and website from normalized card text.
// Each field is the first match or the sentinel.
func Deterministic(clean string) entity.DeterministicFields {
	return entity.DeterministicFields{
		Phone:   Phone(clean),
		Email:   Email(clean),
		Website: Website(clean),
	}
}

// Phone returns the first +91-prefixed or bare 10-digit number, verbatim.
func Phone(text string) string {
	if m := phonePattern.FindString(text); m != "" {
		return m
	}
	return constants.Sentinel
}

// Email returns the first local-part@domain.tld match.
func Email(text string) string {
	if m := emailPattern.FindString(text); m != "" {
		return m
	}
	return constants.Sentinel
}

// Website returns the first http(s) URL or www domain. OCR often drops the dot
// after "www", so that artifact is repaired before matching.
func Website(text string) string {
	text = strings.ReplaceAll(text, "www ", "www.")
	if m := websitePattern.FindString(text); m != "" {
		return m
	}
	return constants.Sentinel
}

package reconcile

import (
	"strings"

	"visiting-card-bot/constants"
	"visiting-card-bot/internal/entity"
)

// Merge combines the two candidate sets into a fully populated card.
//
// Precedence, field by field:
//   - Phone, Email, Website: always the deterministic values. The model is not
//     trusted to emit syntactically valid phone/email/URL strings.
//   - Name, Designation, Company, Address, Industry: the AI value when
//     non-empty; otherwise a fallback (below) or the sentinel.
//   - Services: non-empty AI list joined into one string; otherwise fallback
//     or sentinel.
//
// Fallbacks fire when the extractor failed (aiErr != nil leaves ai zero) or
// left a field empty: Name is guessed from the first two tokens of the
// normalized text, and Designation/Industry/Services come from the configured
// vertical profile. The zero profile seeds nothing. The result never has an
// absent or empty field.
func Merge(det entity.DeterministicFields, ai entity.AIFields, aiErr error, clean string, profile constants.VerticalProfile) entity.Card {
	if aiErr != nil {
		ai = entity.AIFields{}
	}

	services := constants.Sentinel
	if len(ai.Services) > 0 {
		services = strings.Join(ai.Services, constants.ServicesSeparator)
	} else if len(profile.DefaultServices) > 0 {
		services = strings.Join(profile.DefaultServices, constants.ServicesSeparator)
	}

	return entity.Card{
		Name:        firstNonEmpty(ai.Name, nameGuess(clean)),
		Designation: firstNonEmpty(ai.Designation, profile.DefaultDesignation),
		Company:     firstNonEmpty(ai.Company, ""),
		Phone:       safe(det.Phone),
		Email:       safe(det.Email),
		Website:     safe(det.Website),
		Address:     firstNonEmpty(ai.Address, ""),
		Industry:    firstNonEmpty(ai.Industry, profile.DefaultIndustry),
		Services:    safe(services),
	}
}

// nameGuess derives a best-effort name from the first two whitespace-separated
// tokens of the normalized text.
func nameGuess(clean string) string {
	tokens := strings.Fields(clean)
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	return strings.Join(tokens, " ")
}

// firstNonEmpty prefers the AI value, then the fallback, then the sentinel.
func firstNonEmpty(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return safe(fallback)
}

// safe maps blank values onto the sentinel so the card is always fully
// populated.
func safe(v string) string {
	if strings.TrimSpace(v) == "" {
		return constants.Sentinel
	}
	return v
}

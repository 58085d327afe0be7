package constants

import "strings"

// VerticalProfile seeds best-effort defaults into a card when the AI extractor
// fails or leaves a field empty. A zero profile seeds nothing; a configured one
// is an explicit deployment decision, never a silent branch in the merge.
type VerticalProfile struct {
	Name               string
	DefaultDesignation string
	DefaultIndustry    string
	DefaultServices    []string
}

// IsZero reports whether the profile seeds anything at all.
func (p VerticalProfile) IsZero() bool {
	return p.DefaultDesignation == "" && p.DefaultIndustry == "" && len(p.DefaultServices) == 0
}

// RealEstateProfile mirrors the real-estate deployment variant.
var RealEstateProfile = VerticalProfile{
	Name:               "real-estate",
	DefaultDesignation: "Real Estate Agent",
	DefaultIndustry:    "Real Estate",
	DefaultServices:    []string{"Property Sales", "Leasing"},
}

var profiles = []VerticalProfile{RealEstateProfile}

// ProfileByName resolves a configured profile name. Empty or "none" returns the
// zero profile.
func ProfileByName(name string) (VerticalProfile, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" || normalized == "none" {
		return VerticalProfile{}, true
	}
	for _, p := range profiles {
		if normalized == p.Name {
			return p, true
		}
	}
	return VerticalProfile{}, false
}

package entity

import "strings"

// Card is the structured outcome of one processed visiting card.
// Every field holds either a real value or constants.Sentinel, never "".
// Cards are built once by the reconciliation engine and never mutated; a later
// card for the same conversation supersedes the earlier one.
type Card struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	Industry    string `json:"industry"`
	Services    string `json:"services"`
}

// DeterministicFields is the regex-extracted half of a raw extraction.
// These three fields are trusted over AI output unconditionally.
type DeterministicFields struct {
	Phone   string
	Email   string
	Website string
}

// AIFields is the model-extracted half of a raw extraction. Field names match
// the JSON object shape the extraction prompt demands. Empty values mean the
// model explicitly found nothing; extractor failure is signalled separately so
// the reconciler can tell the two apart.
type AIFields struct {
	Name        string   `json:"Name"`
	Designation string   `json:"Designation"`
	Company     string   `json:"Company"`
	Address     string   `json:"Address"`
	Industry    string   `json:"Industry"`
	Services    []string `json:"Services"`
}

// IsEmpty reports whether the model returned an explicitly empty extraction.
func (f AIFields) IsEmpty() bool {
	return strings.TrimSpace(f.Name) == "" &&
		strings.TrimSpace(f.Designation) == "" &&
		strings.TrimSpace(f.Company) == "" &&
		strings.TrimSpace(f.Address) == "" &&
		strings.TrimSpace(f.Industry) == "" &&
		len(f.Services) == 0
}

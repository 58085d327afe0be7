package llm

import "strings"

// BuildExtractionPrompt composes the instruction for structured card parsing.
// The model must emit JSON only, with empty string / empty list for unknowns so
// that "explicitly empty" stays distinguishable from extractor failure.
func BuildExtractionPrompt(text string) string {
	var b strings.Builder
	b.WriteString("You are an expert business card parser.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("- Output ONLY valid JSON\n")
	b.WriteString("- No explanation, no markdown\n")
	b.WriteString("- Empty string if missing, empty list for Services if missing\n\n")
	b.WriteString("JSON FORMAT:\n")
	b.WriteString(`{
  "Name": "",
  "Designation": "",
  "Company": "",
  "Address": "",
  "Industry": "",
  "Services": []
}`)
	b.WriteString("\n\nTEXT:\n")
	b.WriteString(text)
	return b.String()
}

// BuildFollowupPrompt grounds a user question in the extracted company profile.
// regionFocus is the configured regional scoping phrase; empty disables it.
func BuildFollowupPrompt(company, industry, services, question, regionFocus string) string {
	parts := []string{
		"You are a business analyst.",
		"Use public knowledge and reasoning.",
		"If exact data is unavailable, give realistic estimates and clearly mention assumptions.",
		"",
		"Context:",
		"Company: " + company,
		"Industry: " + industry,
		"Services: " + services,
	}
	if strings.TrimSpace(regionFocus) != "" {
		parts = append(parts, "", regionFocus)
	}
	parts = append(parts, "", "Question:", question)
	return strings.Join(parts, "\n")
}

package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject pulls a JSON object out of possibly noisy model output.
// Strict parse first; if that fails, take the span from the first '{' to the
// last '}' (greedy, mirroring the defensive regex in the original pipeline)
// and retry. Both failing is a malformed-response error, deliberately
// distinct from the model returning an explicitly empty object.
func ExtractJSONObject(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	if json.Valid([]byte(content)) && strings.HasPrefix(content, "{") {
		return []byte(content), nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &CallError{Reason: ReasonMalformed, Err: fmt.Errorf("no JSON object in content")}
	}
	candidate := []byte(content[start : end+1])
	if !json.Valid(candidate) {
		return nil, &CallError{Reason: ReasonMalformed, Err: fmt.Errorf("embedded span is not valid JSON")}
	}
	return candidate, nil
}

// DecodeLooseJSON is ExtractJSONObject plus unmarshal into out.
func DecodeLooseJSON(content string, out any) error {
	raw, err := ExtractJSONObject(content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &CallError{Reason: ReasonMalformed, Err: fmt.Errorf("decode JSON object: %w", err)}
	}
	return nil
}

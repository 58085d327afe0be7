package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"visiting-card-bot/internal/entity"
	"visiting-card-bot/internal/llm"
)

// ExtractFields implements llm.FieldExtractor over text-only chat/completions.
// Every failure mode (transport, timeout, undecodable or schema-violating
// content) comes back as *llm.CallError; nothing is raised past this layer.
func (c *Client) ExtractFields(ctx context.Context, text string) (entity.AIFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(text),
	)

	content, err := c.chat(ctx, []llm.Message{
		{Role: "user", Content: llm.BuildExtractionPrompt(text)},
	}, c.cfg.Temperature)
	if err != nil {
		c.logger.Error("llm.extract.call_error",
			"req_id", rid, "reason", string(llm.ReasonOf(err)), "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.AIFields{}, nil, err
	}

	rawObject, err := llm.ExtractJSONObject(content)
	if err != nil {
		c.logger.Error("llm.extract.parse_error",
			"req_id", rid, "error", err, "content_len", len(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.AIFields{}, []byte(content), err
	}

	if err := llm.ValidateJSONAgainstSchema(llm.BuildCardJSONSchema(), rawObject); err != nil {
		c.logger.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(rawObject),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.AIFields{}, rawObject, &llm.CallError{Reason: llm.ReasonMalformed, Err: err}
	}

	var out entity.AIFields
	if err := json.Unmarshal(rawObject, &out); err != nil {
		c.logger.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.AIFields{}, rawObject, &llm.CallError{Reason: llm.ReasonMalformed, Err: fmt.Errorf("unmarshal fields: %w", err)}
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"name", out.Name,
		"company", out.Company,
		"industry", out.Industry,
		"services", len(out.Services),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, rawObject, nil
}

// Complete implements llm.Completer: one round-trip, content returned verbatim.
func (c *Client) Complete(ctx context.Context, messages []llm.Message, temperature float32) (string, error) {
	return c.chat(ctx, messages, temperature)
}

func (c *Client) chat(ctx context.Context, messages []llm.Message, temperature float32) (string, error) {
	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": temperature,
		"messages":    messages,
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		return "", err
	}
	content, err := llm.DecodeChatContent(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

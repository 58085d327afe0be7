package llm

import (
	"context"

	"visiting-card-bot/internal/entity"
)

// Message is one chat turn in an OpenAI-compatible completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FieldExtractor turns normalized card text into the AI half of a raw
// extraction. The raw content bytes are returned for logging/audit. A non-nil
// error is always a *CallError; callers branch on its Reason rather than
// treating failure as an empty extraction.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (entity.AIFields, []byte, error)
}

// Completer is the plain completion surface used by follow-up answering.
// It returns the model's message content verbatim.
type Completer interface {
	Complete(ctx context.Context, messages []Message, temperature float32) (string, error)
}

package followup

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"visiting-card-bot/internal/entity"
	"visiting-card-bot/internal/llm"
)

// FallbackReply is returned verbatim whenever the language model cannot be
// reached; follow-up answering never surfaces a raw error to the user.
const FallbackReply = "Unable to fetch an answer right now."

// Config tunes the follow-up answering behavior per deployment.
type Config struct {
	Timeout     time.Duration // per-question bound, default 15s
	Temperature float32       // answer temperature, default 0.3
	RegionFocus string        // regional scoping phrase, e.g. "Focus on India."
}

// Answerer grounds user questions in the stored card and asks the model.
type Answerer struct {
	cfg       Config
	completer llm.Completer
	logger    *slog.Logger
}

func NewAnswerer(cfg Config, completer llm.Completer, logger *slog.Logger) *Answerer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.3
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Answerer{cfg: cfg, completer: completer, logger: logger}
}

// Answer builds the grounding prompt from the card's company profile and the
// verbatim question, and returns the model's reply. Callers must already hold
// a card for the conversation; with no card the transport replies with its
// "send an image first" message and never reaches this component.
func (a *Answerer) Answer(ctx context.Context, card entity.Card, question string) string {
	rid := uuid.New().String()
	start := time.Now()

	a.logger.Info("followup.answer.start",
		"req_id", rid,
		"company", card.Company,
		"question_len", len(question),
	)

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	prompt := llm.BuildFollowupPrompt(card.Company, card.Industry, card.Services, question, a.cfg.RegionFocus)
	answer, err := a.completer.Complete(ctx, []llm.Message{{Role: "user", Content: prompt}}, a.cfg.Temperature)
	if err != nil {
		a.logger.Warn("followup.answer.fallback",
			"req_id", rid,
			"reason", string(llm.ReasonOf(err)),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return FallbackReply
	}

	a.logger.Info("followup.answer.ok",
		"req_id", rid,
		"answer_len", len(answer),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return answer
}

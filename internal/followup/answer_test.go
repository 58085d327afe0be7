package followup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"visiting-card-bot/internal/entity"
	"visiting-card-bot/internal/llm"
)

type fakeCompleter struct {
	answer string
	err    error
	calls  int
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, messages []llm.Message, _ float32) (string, error) {
	f.calls++
	if len(messages) > 0 {
		f.prompt = messages[0].Content
	}
	return f.answer, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var card = entity.Card{
	Company:  "Zenith Homes",
	Industry: "Real Estate",
	Services: "Sales, Rentals",
}

func TestAnswerGroundsPromptInCard(t *testing.T) {
	fc := &fakeCompleter{answer: "They operate across Kerala."}
	a := NewAnswerer(Config{RegionFocus: "Focus on India."}, fc, testLogger())

	got := a.Answer(context.Background(), card, "Where do they operate?")
	assert.Equal(t, "They operate across Kerala.", got)
	assert.Contains(t, fc.prompt, "Company: Zenith Homes")
	assert.Contains(t, fc.prompt, "Industry: Real Estate")
	assert.Contains(t, fc.prompt, "Services: Sales, Rentals")
	assert.Contains(t, fc.prompt, "Focus on India.")
	assert.Contains(t, fc.prompt, "Where do they operate?")
}

func TestAnswerFallbackOnError(t *testing.T) {
	fc := &fakeCompleter{err: &llm.CallError{Reason: llm.ReasonTimeout, Err: errors.New("deadline")}}
	a := NewAnswerer(Config{Timeout: 50 * time.Millisecond}, fc, testLogger())

	got := a.Answer(context.Background(), card, "anything")
	assert.Equal(t, FallbackReply, got)
	assert.Equal(t, 1, fc.calls)
}

func TestAnswerNoRegionFocus(t *testing.T) {
	fc := &fakeCompleter{answer: "ok"}
	a := NewAnswerer(Config{}, fc, testLogger())

	a.Answer(context.Background(), card, "q")
	assert.NotContains(t, fc.prompt, "Focus on")
}

package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visiting-card-bot/constants"
	"visiting-card-bot/internal/contextstore"
	"visiting-card-bot/internal/entity"
	"visiting-card-bot/internal/ledger"
	"visiting-card-bot/internal/llm"
)

type fakeRecognizer struct {
	fragments []string
	err       error
}

func (f *fakeRecognizer) Recognize(context.Context, string) ([]string, error) {
	return f.fragments, f.err
}

type fakeExtractor struct {
	fields entity.AIFields
	err    error
}

func (f *fakeExtractor) ExtractFields(context.Context, string) (entity.AIFields, []byte, error) {
	return f.fields, nil, f.err
}

type fakeLedger struct {
	rows []ledger.Row
	err  error
}

func (f *fakeLedger) Append(_ context.Context, row ledger.Row) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeLedger) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessImageHappyPath(t *testing.T) {
	rec := &fakeRecognizer{fragments: []string{"AMTT SHAH", "CEO Acme", "+91 9876543210", "amit@acme.in"}}
	ext := &fakeExtractor{fields: entity.AIFields{
		Name: "Amit Shah", Designation: "CEO", Company: "Acme",
		Industry: "Tech", Services: []string{"Consulting"},
	}}
	store := contextstore.NewMemory()
	sink := &fakeLedger{}

	p := NewProcessor(Config{}, rec, ext, store, sink, testLogger())
	card, err := p.ProcessImage(context.Background(), "chat-1", "/tmp/card.jpg")
	require.NoError(t, err)

	assert.Equal(t, "Amit Shah", card.Name)
	assert.Equal(t, "+91 9876543210", card.Phone)
	assert.Equal(t, "amit@acme.in", card.Email)
	assert.Equal(t, "Consulting", card.Services)

	// Stored card matches the returned one.
	stored, ok, err := store.Get(context.Background(), "chat-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, card, stored)

	// Ledger got exactly one row in column order.
	require.Len(t, sink.rows, 1)
	assert.Equal(t, "chat-1", sink.rows[0].ConversationID)
	assert.Equal(t, card.Name, sink.rows[0].Values()[2])
}

func TestProcessImageAIFailureFallsBack(t *testing.T) {
	rec := &fakeRecognizer{fragments: []string{"Jane Doe Realty Group"}}
	ext := &fakeExtractor{err: &llm.CallError{Reason: llm.ReasonTimeout, Err: errors.New("deadline")}}
	store := contextstore.NewMemory()

	p := NewProcessor(Config{}, rec, ext, store, &fakeLedger{}, testLogger())
	card, err := p.ProcessImage(context.Background(), "chat-2", "/tmp/card.jpg")
	require.NoError(t, err)

	assert.Equal(t, "Jane D0e", card.Name)
	assert.Equal(t, constants.Sentinel, card.Company)
}

func TestProcessImageOCRFailure(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("engine crashed")}
	p := NewProcessor(Config{}, rec, &fakeExtractor{}, contextstore.NewMemory(), &fakeLedger{}, testLogger())

	_, err := p.ProcessImage(context.Background(), "chat-3", "/tmp/card.jpg")
	require.Error(t, err)
}

func TestProcessImageLedgerFailureDoesNotFail(t *testing.T) {
	rec := &fakeRecognizer{fragments: []string{"Jane Doe"}}
	ext := &fakeExtractor{fields: entity.AIFields{Name: "Jane Doe"}}
	store := contextstore.NewMemory()
	sink := &fakeLedger{err: errors.New("sheet unavailable")}

	p := NewProcessor(Config{}, rec, ext, store, sink, testLogger())
	card, err := p.ProcessImage(context.Background(), "chat-4", "/tmp/card.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", card.Name)

	// Context is still updated so follow-ups keep working.
	_, ok, err := store.Get(context.Background(), "chat-4")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProcessImageVerticalProfile(t *testing.T) {
	rec := &fakeRecognizer{fragments: []string{"Jane Doe Realty"}}
	ext := &fakeExtractor{err: &llm.CallError{Reason: llm.ReasonTransport, Err: errors.New("502")}}

	p := NewProcessor(Config{Profile: constants.RealEstateProfile}, rec, ext,
		contextstore.NewMemory(), &fakeLedger{}, testLogger())
	card, err := p.ProcessImage(context.Background(), "chat-5", "/tmp/card.jpg")
	require.NoError(t, err)

	assert.Equal(t, "Real Estate Agent", card.Designation)
	assert.Equal(t, "Real Estate", card.Industry)
	assert.Equal(t, "Property Sales, Leasing", card.Services)
}

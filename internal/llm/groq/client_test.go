package groq

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visiting-card-bot/internal/llm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chatResponse(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, testLogger())
}

func TestExtractFieldsCleanJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string        `json:"model"`
			Messages []llm.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "business card parser")

		_, _ = io.WriteString(w, chatResponse(`{"Name":"Priya Nair","Designation":"Director","Company":"Zenith Homes","Address":"MG Road, Kochi","Industry":"Real Estate","Services":["Sales","Rentals"]}`))
	})

	fields, raw, err := c.ExtractFields(context.Background(), "Priya Nair Director Zenith H0mes")
	require.NoError(t, err)
	assert.Equal(t, "Priya Nair", fields.Name)
	assert.Equal(t, []string{"Sales", "Rentals"}, fields.Services)
	assert.True(t, json.Valid(raw))
}

func TestExtractFieldsNoisyContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, chatResponse(`Here you go: {"Name":"Amit Shah","Designation":"CEO","Company":"Acme","Address":"","Industry":"Tech","Services":["Consulting"]} thanks`))
	})

	fields, _, err := c.ExtractFields(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Equal(t, "Amit Shah", fields.Name)
	assert.Equal(t, []string{"Consulting"}, fields.Services)
}

func TestExtractFieldsNonJSONContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, chatResponse("I could not read the card, sorry."))
	})

	_, _, err := c.ExtractFields(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, llm.ReasonMalformed, llm.ReasonOf(err))
}

func TestExtractFieldsSchemaViolation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, chatResponse(`{"Name":"Amit","Services":"Consulting"}`))
	})

	_, _, err := c.ExtractFields(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, llm.ReasonMalformed, llm.ReasonOf(err))
}

func TestExtractFieldsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busy", http.StatusBadGateway)
	})

	_, _, err := c.ExtractFields(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, llm.ReasonTransport, llm.ReasonOf(err))
}

func TestExtractFieldsTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = io.WriteString(w, chatResponse("{}"))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, _, err := c.ExtractFields(ctx, "text")
	require.Error(t, err)
	assert.Equal(t, llm.ReasonTimeout, llm.ReasonOf(err))
}

func TestCompleteVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, chatResponse("Acme operates across Gujarat and Maharashtra."))
	})

	answer, err := c.Complete(context.Background(), []llm.Message{{Role: "user", Content: "where?"}}, 0.3)
	require.NoError(t, err)
	assert.Equal(t, "Acme operates across Gujarat and Maharashtra.", answer)
}

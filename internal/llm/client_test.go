package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmaker/backend/internal/llm"
)

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"parts": []any{map[string]any{"text": text}},
			},
		}},
	})
	return string(b)
}

func TestClient_GenerateContent(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Contains(t, body, "contents")

		w.Write([]byte(candidateBody("[{\"dayIndex\":1}]")))
	}))
	defer srv.Close()

	c := llm.NewClient(srv.URL, "secret", "gemini-1.5-flash")
	text, err := c.GenerateContent(context.Background(), "plan a trip")

	require.NoError(t, err)
	assert.Equal(t, `[{"dayIndex":1}]`, text)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
}

func TestClient_GenerateContent_NoAPIKey(t *testing.T) {
	c := llm.NewClient("http://localhost:0", "", "")

	_, err := c.GenerateContent(context.Background(), "plan")

	assert.ErrorContains(t, err, "API key not configured")
}

func TestClient_GenerateContent_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c := llm.NewClient(srv.URL, "secret", "")
	_, err := c.GenerateContent(context.Background(), "plan")

	assert.ErrorContains(t, err, "quota exceeded")
}

func TestClient_GenerateContent_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := llm.NewClient(srv.URL, "secret", "")
	_, err := c.GenerateContent(context.Background(), "plan")

	assert.ErrorContains(t, err, "no content")
}

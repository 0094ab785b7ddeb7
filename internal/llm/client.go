// Package llm talks to a generative-language endpoint and turns its
// untrusted free-text output into normalized itinerary days. The response is
// supposed to contain a JSON array but may be wrapped in prose, fenced in a
// code block, or truncated mid-structure; parse.go handles all of that.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

// defaultBaseURL is the public generative-language endpoint.
const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls POST <base>/models/<model>:generateContent and extracts the
// first candidate's text.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a Client. An empty model falls back to DefaultModel,
// an empty baseURL to the public endpoint.
func NewClient(baseURL, apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateContent sends the prompt and returns the first candidate's text.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("llm.Client.GenerateContent: API key not configured")
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 4096,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("llm.Client.GenerateContent: encode: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("llm.Client.GenerateContent: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm.Client.GenerateContent: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm.Client.GenerateContent: read: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("llm.Client.GenerateContent: decode: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("llm.Client.GenerateContent: API error (%d): %s", resp.StatusCode, msg)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("llm.Client.GenerateContent: no content in response")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("llm.Client.GenerateContent: empty candidate text")
	}
	return text, nil
}

// Package openai is a minimal chat completions client used to ask a
// language model for track suggestions.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	systemPrompt = "You are a helpful music expert."

	// promptFormat takes the seed track name and artist name.
	promptFormat = "I'm currently listening to '%s' by '%s'. " +
		"Can you suggest 20 similar genre / mood (but not mainstream) track recommendations? " +
		"Please provide the answer only as a JSON array of objects, where each object has exactly two keys: " +
		"'track_name' and 'artist'."
)

// Request defaults, applied when the corresponding Config field is zero.
const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultMaxTokens   = 600
	DefaultTemperature = 0.7
)

// ErrNoAPIKey is returned by SuggestTracks when the client has no API key.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY is not set")

// Config holds the API credentials and request tunables.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Client calls the chat completions API.
type Client struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	baseURL     string
	httpClient  *http.Client
}

// NewClient creates a suggestion client from the provided configuration.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		baseURL:     defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.maxTokens <= 0 {
		c.maxTokens = DefaultMaxTokens
	}
	if c.temperature <= 0 {
		c.temperature = DefaultTemperature
	}
	return c
}

// SuggestTracks asks the model for tracks similar to the given seed and
// parses its answer. Completions that are not a JSON suggestion array
// yield a *ParseError carrying the raw output.
func (c *Client) SuggestTracks(ctx context.Context, trackName, artistName string) ([]Suggestion, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	prompt := fmt.Sprintf(promptFormat, trackName, artistName)
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai api error: %d - %s", resp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parsing completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, errors.New("completion response has no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	return ParseSuggestions(content)
}

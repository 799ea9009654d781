// Package reccobeats is a client for the ReccoBeats track recommendation API.
package reccobeats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://api.reccobeats.com/v1"

	userAgent = "spotify-radio/1.0"
)

// Client is a ReccoBeats API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a recommendation client. An empty baseURL selects the
// public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Recommend fetches up to size recommended tracks seeded by a track ID.
// The API accepts both its own track IDs and streaming service IDs as seeds.
func (c *Client) Recommend(ctx context.Context, seedTrackID string, size int) ([]Track, error) {
	params := url.Values{
		"size":  {strconv.Itoa(size)},
		"seeds": {seedTrackID},
	}
	reqURL := c.baseURL + "/track/recommendation?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed recommendationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing recommendation response: %w", err)
	}
	return parsed.Content, nil
}

// Package spotify provides a wrapper around the Spotify Web API.
package spotify

import (
	"net/http"

	"github.com/zmb3/spotify/v2"

	"github.com/soundseed/go-spotify-radio/internal/radio"
)

// Client wraps the Spotify API client with the operations station builds
// need.
type Client struct {
	api *spotify.Client
}

var _ radio.MusicService = (*Client)(nil)

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// NewFromHTTP creates a wrapper from an authenticated HTTP client, such as
// one backed by an OAuth token source.
func NewFromHTTP(httpClient *http.Client) *Client {
	return New(spotify.New(httpClient))
}

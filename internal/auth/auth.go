// Package auth manages the Spotify OAuth2 authorization code flow and
// persists the resulting token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// ErrNotAuthenticated is returned when no token has been stored yet.
var ErrNotAuthenticated = errors.New("no token found")

// Config holds the OAuth application credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
}

// Authenticator runs the authorization code flow against the Spotify
// accounts service and keeps the resulting token in a TokenStore.
type Authenticator struct {
	config *oauth2.Config
	store  TokenStore
}

// New creates an Authenticator backed by the given token store.
func New(cfg Config, store TokenStore) *Authenticator {
	return &Authenticator{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  spotifyauth.AuthURL,
				TokenURL: spotifyauth.TokenURL,
			},
		},
		store: store,
	}
}

// AuthURL returns the authorization page URL carrying the given state.
func (a *Authenticator) AuthURL(state string) string {
	return a.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token and stores it.
func (a *Authenticator) Exchange(ctx context.Context, code string) error {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchanging code for token: %w", err)
	}
	if err := a.store.Save(token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// HTTPClient returns an HTTP client that authenticates requests with the
// stored token, refreshing it as needed. Refreshed tokens are written back
// to the store so later processes skip the refresh round trip. Returns
// ErrNotAuthenticated when no token has been stored.
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	token, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading token: %w", err)
	}
	if token == nil {
		return nil, ErrNotAuthenticated
	}

	source := &savingTokenSource{
		source: a.config.TokenSource(ctx, token),
		store:  a.store,
		last:   token.AccessToken,
	}
	return oauth2.NewClient(ctx, source), nil
}

// Logout removes the stored token.
func (a *Authenticator) Logout() error {
	return a.store.Delete()
}

// savingTokenSource persists tokens whenever the access token changes.
// A failed save is retried on the next refresh rather than failing the
// request; the in-flight token is still valid.
type savingTokenSource struct {
	source oauth2.TokenSource
	store  TokenStore

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken != s.last {
		if err := s.store.Save(token); err == nil {
			s.last = token.AccessToken
		}
	}
	return token, nil
}

package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/soundseed/go-spotify-radio/internal/auth"
	"github.com/soundseed/go-spotify-radio/internal/openai"
	"github.com/soundseed/go-spotify-radio/internal/radio"
	"github.com/soundseed/go-spotify-radio/internal/reccobeats"
)

// ClientSource builds a music service bound to the caller's stored token.
// It fails with auth.ErrNotAuthenticated when no login has happened yet.
type ClientSource func(ctx context.Context) (radio.MusicService, error)

// Handlers contains the HTTP handlers for the radio service.
type Handlers struct {
	auth    *auth.Authenticator
	clients ClientSource
	builder *radio.Builder
	logger  *log.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(a *auth.Authenticator, clients ClientSource, builder *radio.Builder, logger *log.Logger) *Handlers {
	return &Handlers{
		auth:    a,
		clients: clients,
		builder: builder,
		logger:  logger,
	}
}

// Success payloads. Each trigger echoes its strategy's inputs alongside the
// shuffled queue.

type searchStationResponse struct {
	Message     string   `json:"message"`
	StationID   string   `json:"station_id"`
	SeedTrack   string   `json:"seed_track"`
	SeedArtist  string   `json:"seed_artist"`
	SearchQuery string   `json:"search_query"`
	TrackURIs   []string `json:"track_uris"`
}

type openAIStationResponse struct {
	Message         string              `json:"message"`
	StationID       string              `json:"station_id"`
	SeedTrack       string              `json:"seed_track"`
	SeedArtist      string              `json:"seed_artist"`
	Recommendations []openai.Suggestion `json:"openai_recommendations"`
	TrackURIs       []string            `json:"track_uris"`
}

type reccoBeatsStationResponse struct {
	Message         string             `json:"message"`
	StationID       string             `json:"station_id"`
	SeedTrack       string             `json:"seed_track"`
	SeedArtist      string             `json:"seed_artist"`
	Recommendations []reccobeats.Track `json:"reccobeats_recommendations"`
	TrackURIs       []string           `json:"track_uris"`
}

// errorResponse is the JSON error envelope. The optional fields carry
// upstream payloads for diagnosis.
type errorResponse struct {
	Error          string `json:"error"`
	OpenAIResponse string `json:"openai_response,omitempty"`
	ParseError     string `json:"parse_error,omitempty"`
	ResponseText   string `json:"response_text,omitempty"`
}

// Login initiates the Spotify OAuth flow (GET /login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	// Generate state for CSRF protection
	state, err := generateOAuthState()
	if err != nil {
		http.Error(w, "Failed to generate state", http.StatusInternalServerError)
		return
	}

	// Store state in cookie for validation on callback
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300, // 5 minutes
	})

	http.Redirect(w, r, h.auth.AuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the OAuth callback from Spotify (GET /callback).
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	// Verify state
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil {
		http.Error(w, "Missing state cookie", http.StatusBadRequest)
		return
	}

	state := r.URL.Query().Get("state")
	if state != stateCookie.Value {
		http.Error(w, "State mismatch", http.StatusBadRequest)
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	// Check for error from Spotify
	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		http.Error(w, fmt.Sprintf("Spotify auth error: %s", errMsg), http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	// Exchange code for token
	if err := h.auth.Exchange(r.Context(), code); err != nil {
		h.logger.Error("token exchange failed", "err", err)
		http.Error(w, "Failed to get token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Logged in successfully – you can now use the /trigger endpoint.")
}

// TriggerSearch starts a genre-search station (POST /trigger).
func (h *Handlers) TriggerSearch(w http.ResponseWriter, r *http.Request) {
	svc, err := h.clients(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	station, err := h.builder.BuildFromSearch(r.Context(), svc)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchStationResponse{
		Message:     "Custom shuffled song radio started",
		StationID:   station.ID,
		SeedTrack:   station.Seed.TrackName,
		SeedArtist:  station.Seed.ArtistName,
		SearchQuery: station.Query,
		TrackURIs:   station.TrackURIs,
	})
}

// TriggerOpenAI starts a station from language model suggestions
// (POST /trigger-openai).
func (h *Handlers) TriggerOpenAI(w http.ResponseWriter, r *http.Request) {
	svc, err := h.clients(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	station, err := h.builder.BuildFromSuggestions(r.Context(), svc)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, openAIStationResponse{
		Message:         "Custom radio generated using OpenAI recommendations",
		StationID:       station.ID,
		SeedTrack:       station.Seed.TrackName,
		SeedArtist:      station.Seed.ArtistName,
		Recommendations: station.Suggestions,
		TrackURIs:       station.TrackURIs,
	})
}

// TriggerReccoBeats starts a station from ReccoBeats recommendations
// (POST /trigger-reccobeats).
func (h *Handlers) TriggerReccoBeats(w http.ResponseWriter, r *http.Request) {
	svc, err := h.clients(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	station, err := h.builder.BuildFromRecommendations(r.Context(), svc)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reccoBeatsStationResponse{
		Message:         "Custom radio generated using ReccoBeats recommendations",
		StationID:       station.ID,
		SeedTrack:       station.Seed.TrackName,
		SeedArtist:      station.Seed.ArtistName,
		Recommendations: station.Recommendations,
		TrackURIs:       station.TrackURIs,
	})
}

// writeError maps pipeline failures onto the JSON error envelope.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	var parseErr *openai.ParseError
	var apiErr *reccobeats.APIError
	var noTracks *radio.NoTracksError

	switch {
	case errors.Is(err, radio.ErrNoActivePlayback):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "No song is currently playing",
		})
	case errors.Is(err, auth.ErrNotAuthenticated):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "No token found. Please log in at /login",
		})
	case errors.As(err, &parseErr):
		h.logger.Error("unparseable model output", "raw", parseErr.Raw)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:          "Failed to parse OpenAI response as JSON",
			OpenAIResponse: parseErr.Raw,
			ParseError:     parseErr.Err.Error(),
		})
	case errors.As(err, &apiErr):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:        fmt.Sprintf("ReccoBeats API error: %d", apiErr.StatusCode),
			ResponseText: apiErr.Body,
		})
	case errors.As(err, &noTracks):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "No tracks found from " + noTracks.Source,
		})
	default:
		h.logger.Error("trigger failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: err.Error(),
		})
	}
}

// writeJSON writes the payload as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// generateOAuthState creates a random state string for OAuth.
func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

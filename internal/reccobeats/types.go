package reccobeats

import "fmt"

// Track is one recommended track as returned by the API. Href holds the
// streaming URI that the playback queue accepts.
type Track struct {
	ID         string   `json:"id"`
	TrackTitle string   `json:"trackTitle"`
	Href       string   `json:"href"`
	Artists    []Artist `json:"artists"`
	DurationMs int      `json:"durationMs"`
	Popularity int      `json:"popularity"`
	ISRC       string   `json:"isrc"`
}

// Artist credits one artist on a recommended track.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Href string `json:"href"`
}

// recommendationResponse wraps the content array the API returns.
type recommendationResponse struct {
	Content []Track `json:"content"`
}

// APIError reports a non-200 response. Body carries the response text so
// callers can surface it.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reccobeats api error: %d", e.StatusCode)
}

// Package radio builds shuffled radio stations seeded by the listener's
// currently playing track.
package radio

import (
	"github.com/soundseed/go-spotify-radio/internal/openai"
	"github.com/soundseed/go-spotify-radio/internal/reccobeats"
)

// Artist identifies one artist credited on a track.
type Artist struct {
	ID   string
	Name string
}

// PlaybackState is a snapshot of the player taken at trigger time.
// It is fetched once per request and never stored.
type PlaybackState struct {
	TrackID   string
	TrackName string
	Artists   []Artist
}

// Candidate is one track proposed for the station queue.
type Candidate struct {
	ID     string
	URI    string
	Name   string
	Artist string
}

// SearchPage is one page of track search results together with the total
// number of hits for the query.
type SearchPage struct {
	Total  int
	Tracks []Candidate
}

// Seed describes the currently playing track a station is derived from.
type Seed struct {
	TrackID    string
	TrackName  string
	ArtistID   string
	ArtistName string
}

// Station is the outcome of one trigger: a shuffled URI list already playing
// on the listener's active device. Exactly one of Query, Suggestions and
// Recommendations is set, matching the strategy that built the station.
type Station struct {
	ID              string
	Seed            Seed
	Query           string
	Suggestions     []openai.Suggestion
	Recommendations []reccobeats.Track
	TrackURIs       []string
}

package spotify

import (
	"context"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"

	"github.com/soundseed/go-spotify-radio/internal/radio"
)

// SearchTracks runs a track search and returns one page of results along
// with the total hit count for the query.
func (c *Client) SearchTracks(ctx context.Context, query string, limit, offset int) (*radio.SearchPage, error) {
	result, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit), spotify.Offset(offset))
	if err != nil {
		return nil, fmt.Errorf("searching tracks: %w", err)
	}
	return searchPage(result), nil
}

// FindTrackURI returns the URI of the top search hit for the query. ok is
// false when the query matched nothing.
func (c *Client) FindTrackURI(ctx context.Context, query string) (string, bool, error) {
	result, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		return "", false, fmt.Errorf("searching tracks: %w", err)
	}
	page := searchPage(result)
	if len(page.Tracks) == 0 {
		return "", false, nil
	}
	return page.Tracks[0].URI, true, nil
}

// searchPage reduces a search result to the track page the station builder
// consumes. A result without a track page yields an empty page.
func searchPage(result *spotify.SearchResult) *radio.SearchPage {
	page := &radio.SearchPage{}
	if result == nil || result.Tracks == nil {
		return page
	}

	page.Total = int(result.Tracks.Total)
	page.Tracks = make([]radio.Candidate, len(result.Tracks.Tracks))
	for i, t := range result.Tracks.Tracks {
		page.Tracks[i] = convertTrack(t)
	}
	return page
}

// convertTrack converts a Spotify FullTrack to a station candidate.
func convertTrack(t spotify.FullTrack) radio.Candidate {
	// Join artist names
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	return radio.Candidate{
		ID:     t.ID.String(),
		URI:    string(t.URI),
		Name:   t.Name,
		Artist: strings.Join(artists, ", "),
	}
}

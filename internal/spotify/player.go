package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/soundseed/go-spotify-radio/internal/radio"
)

// NowPlaying returns a snapshot of the player. It returns (nil, nil) when
// nothing is actively playing, which covers paused playback, an empty
// player, and the API's 204 response.
func (c *Client) NowPlaying(ctx context.Context) (*radio.PlaybackState, error) {
	current, err := c.api.PlayerCurrentlyPlaying(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting current playback: %w", err)
	}
	return playbackState(current), nil
}

// playbackState reduces the API response to a playback snapshot, or nil
// when there is no playing track to report.
func playbackState(current *spotify.CurrentlyPlaying) *radio.PlaybackState {
	if current == nil || current.Item == nil || !current.Playing {
		return nil
	}

	artists := make([]radio.Artist, len(current.Item.Artists))
	for i, a := range current.Item.Artists {
		artists[i] = radio.Artist{
			ID:   a.ID.String(),
			Name: a.Name,
		}
	}

	return &radio.PlaybackState{
		TrackID:   current.Item.ID.String(),
		TrackName: current.Item.Name,
		Artists:   artists,
	}
}

// StartPlayback replaces the queue on the active device with the given
// track URIs and starts playing.
func (c *Client) StartPlayback(ctx context.Context, uris []string) error {
	spotifyURIs := make([]spotify.URI, len(uris))
	for i, u := range uris {
		spotifyURIs[i] = spotify.URI(u)
	}

	opts := &spotify.PlayOptions{URIs: spotifyURIs}
	if err := c.api.PlayOpt(ctx, opts); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}
	return nil
}

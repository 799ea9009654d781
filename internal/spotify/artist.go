package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// ArtistGenres returns the genres tagged on an artist. Artists without
// genre tags yield an empty slice.
func (c *Client) ArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	artist, err := c.api.GetArtist(ctx, spotify.ID(artistID))
	if err != nil {
		return nil, fmt.Errorf("getting artist %s: %w", artistID, err)
	}
	return artist.Genres, nil
}

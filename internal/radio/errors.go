package radio

import (
	"errors"
	"fmt"
)

// ErrNoActivePlayback is returned when the listener has no track playing,
// so there is nothing to seed a station from.
var ErrNoActivePlayback = errors.New("no song is currently playing")

// NoTracksError is returned when a strategy produced zero playable tracks.
// Source names the strategy that came up empty.
type NoTracksError struct {
	Source string
}

func (e *NoTracksError) Error() string {
	return fmt.Sprintf("no tracks found from %s", e.Source)
}

package radio

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/soundseed/go-spotify-radio/internal/openai"
	"github.com/soundseed/go-spotify-radio/internal/reccobeats"
)

// DefaultPlaylistSize is the number of tracks queued per station.
const DefaultPlaylistSize = 20

// MusicService is the slice of the streaming API a station build needs.
type MusicService interface {
	// NowPlaying returns a snapshot of the player, or nil when nothing
	// is playing.
	NowPlaying(ctx context.Context) (*PlaybackState, error)
	// ArtistGenres returns the genres tagged on an artist.
	ArtistGenres(ctx context.Context, artistID string) ([]string, error)
	// SearchTracks runs a track search and returns one page of results.
	SearchTracks(ctx context.Context, query string, limit, offset int) (*SearchPage, error)
	// FindTrackURI returns the URI of the top hit for the query. ok is
	// false when the query matched nothing.
	FindTrackURI(ctx context.Context, query string) (uri string, ok bool, err error)
	// StartPlayback replaces the queue on the active device with the
	// given track URIs.
	StartPlayback(ctx context.Context, uris []string) error
}

// Suggester proposes similar tracks using a language model.
type Suggester interface {
	SuggestTracks(ctx context.Context, trackName, artistName string) ([]openai.Suggestion, error)
}

// Recommender proposes similar tracks using an audio analysis service.
type Recommender interface {
	Recommend(ctx context.Context, seedTrackID string, size int) ([]reccobeats.Track, error)
}

// Builder assembles radio stations from the currently playing track and
// starts them on the listener's active device. A Builder is shared between
// requests; the MusicService is passed per call because it is bound to the
// caller's token.
type Builder struct {
	suggester   Suggester
	recommender Recommender
	size        int
	probeOffset bool
	logger      *log.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithPlaylistSize sets how many tracks a station queues.
func WithPlaylistSize(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.size = n
		}
	}
}

// WithOffsetProbe toggles the extra one-result search used to pick a random
// page of search results. When disabled search stations always use the
// first page.
func WithOffsetProbe(enabled bool) Option {
	return func(b *Builder) {
		b.probeOffset = enabled
	}
}

// WithLogger sets the logger for build progress.
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a station builder.
func NewBuilder(suggester Suggester, recommender Recommender, opts ...Option) *Builder {
	b := &Builder{
		suggester:   suggester,
		recommender: recommender,
		size:        DefaultPlaylistSize,
		probeOffset: true,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// seed snapshots the current playback and reduces it to a station seed.
func seed(ctx context.Context, svc MusicService) (Seed, error) {
	state, err := svc.NowPlaying(ctx)
	if err != nil {
		return Seed{}, err
	}
	if state == nil {
		return Seed{}, ErrNoActivePlayback
	}
	if len(state.Artists) == 0 {
		return Seed{}, fmt.Errorf("track %q has no artists", state.TrackName)
	}
	primary := state.Artists[0]
	return Seed{
		TrackID:    state.TrackID,
		TrackName:  state.TrackName,
		ArtistID:   primary.ID,
		ArtistName: primary.Name,
	}, nil
}

// BuildFromSearch builds a station by searching for tracks in one of the
// seed artist's genres and starts playback.
func (b *Builder) BuildFromSearch(ctx context.Context, svc MusicService) (*Station, error) {
	sd, err := seed(ctx, svc)
	if err != nil {
		return nil, err
	}

	genres, err := svc.ArtistGenres(ctx, sd.ArtistID)
	if err != nil {
		return nil, err
	}
	query := DeriveQuery(sd.ArtistName, genres)
	b.logger.Info("building search station", "seed", sd.TrackName, "query", query)

	offset := 0
	if b.probeOffset {
		probe, err := svc.SearchTracks(ctx, query, 1, 0)
		if err != nil {
			return nil, fmt.Errorf("probing search results: %w", err)
		}
		// Keep the offset low enough that a full page remains past it.
		if maxOffset := probe.Total - b.size; maxOffset > 0 {
			offset = rand.IntN(maxOffset + 1)
		}
	}

	page, err := svc.SearchTracks(ctx, query, b.size, offset)
	if err != nil {
		return nil, err
	}
	uris := make([]string, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		uris = append(uris, t.URI)
	}
	if len(uris) == 0 {
		return nil, &NoTracksError{Source: "track search"}
	}

	Shuffle(uris)
	if err := svc.StartPlayback(ctx, uris); err != nil {
		return nil, err
	}
	b.logger.Info("station started", "source", "search", "tracks", len(uris), "offset", offset)

	return &Station{
		ID:        uuid.New().String(),
		Seed:      sd,
		Query:     query,
		TrackURIs: uris,
	}, nil
}

// BuildFromSuggestions builds a station from language model suggestions
// seeded by the current track and starts playback. Suggestions that match
// no track are skipped.
func (b *Builder) BuildFromSuggestions(ctx context.Context, svc MusicService) (*Station, error) {
	sd, err := seed(ctx, svc)
	if err != nil {
		return nil, err
	}
	b.logger.Info("building suggestion station", "seed", sd.TrackName, "artist", sd.ArtistName)

	suggestions, err := b.suggester.SuggestTracks(ctx, sd.TrackName, sd.ArtistName)
	if err != nil {
		return nil, err
	}

	uris := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		query := s.TrackName + " " + s.Artist
		uri, ok, err := svc.FindTrackURI(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("finding track for suggestion %q: %w", query, err)
		}
		if !ok {
			b.logger.Debug("suggestion matched no track", "query", query)
			continue
		}
		uris = append(uris, uri)
	}
	if len(uris) == 0 {
		return nil, &NoTracksError{Source: "OpenAI recommendations"}
	}

	Shuffle(uris)
	if err := svc.StartPlayback(ctx, uris); err != nil {
		return nil, err
	}
	b.logger.Info("station started", "source", "openai", "suggested", len(suggestions), "tracks", len(uris))

	return &Station{
		ID:          uuid.New().String(),
		Seed:        sd,
		Suggestions: suggestions,
		TrackURIs:   uris,
	}, nil
}

// BuildFromRecommendations builds a station from audio analysis
// recommendations seeded by the current track and starts playback.
func (b *Builder) BuildFromRecommendations(ctx context.Context, svc MusicService) (*Station, error) {
	sd, err := seed(ctx, svc)
	if err != nil {
		return nil, err
	}
	b.logger.Info("building recommendation station", "seed", sd.TrackName, "track_id", sd.TrackID)

	tracks, err := b.recommender.Recommend(ctx, sd.TrackID, b.size)
	if err != nil {
		return nil, err
	}

	uris := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if t.Href == "" {
			continue
		}
		uris = append(uris, t.Href)
	}
	if len(uris) == 0 {
		return nil, &NoTracksError{Source: "ReccoBeats recommendations"}
	}

	Shuffle(uris)
	if err := svc.StartPlayback(ctx, uris); err != nil {
		return nil, err
	}
	b.logger.Info("station started", "source", "reccobeats", "tracks", len(uris))

	return &Station{
		ID:              uuid.New().String(),
		Seed:            sd,
		Recommendations: tracks,
		TrackURIs:       uris,
	}, nil
}

// Command spotify-radio runs the Spotify radio web service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/soundseed/go-spotify-radio/internal/auth"
	"github.com/soundseed/go-spotify-radio/internal/config"
	"github.com/soundseed/go-spotify-radio/internal/openai"
	"github.com/soundseed/go-spotify-radio/internal/radio"
	"github.com/soundseed/go-spotify-radio/internal/reccobeats"
	"github.com/soundseed/go-spotify-radio/internal/spotify"
	"github.com/soundseed/go-spotify-radio/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	if cfg.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; /trigger-openai will report an error")
	}

	// Token storage under the user's config directory
	store, err := auth.DefaultTokenStore()
	if err != nil {
		return fmt.Errorf("creating token store: %w", err)
	}

	authenticator := auth.New(auth.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectURI,
		Scopes:       cfg.Scopes(),
	}, store)

	suggester := openai.NewClient(openai.Config{
		APIKey:      cfg.OpenAIKey,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
	})

	recommender := reccobeats.NewClient(cfg.Recco.BaseURL)

	builder := radio.NewBuilder(suggester, recommender,
		radio.WithPlaylistSize(cfg.Radio.Size),
		radio.WithOffsetProbe(cfg.Radio.ProbeOffset),
		radio.WithLogger(logger),
	)

	// Resolve the Spotify client per request so a fresh login is picked up
	// without a restart.
	clients := func(ctx context.Context) (radio.MusicService, error) {
		httpClient, err := authenticator.HTTPClient(ctx)
		if err != nil {
			return nil, err
		}
		return spotify.NewFromHTTP(httpClient), nil
	}

	server := web.NewServer(web.ServerConfig{
		Addr:          cfg.Addr,
		Authenticator: authenticator,
		Clients:       clients,
		Builder:       builder,
		Logger:        logger,
	})

	return server.Run()
}

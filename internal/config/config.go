// Package config loads the radio service configuration from environment
// variables and an optional TOML file. Credentials are environment-only;
// the file carries tunables. Environment values win over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// defaultConfigFile is probed in the working directory when RADIO_CONFIG is unset.
const defaultConfigFile = "config.toml"

// Defaults applied when neither the environment nor the config file sets a value.
const (
	DefaultAddr              = "0.0.0.0:5002"
	DefaultPlaylistSize      = 20
	DefaultOpenAIModel       = "gpt-3.5-turbo"
	DefaultOpenAIMaxTokens   = 600
	DefaultOpenAITemperature = 0.7
	DefaultReccoBeatsBaseURL = "https://api.reccobeats.com/v1"
)

// ErrMissingEnv is returned when a required environment variable is not set.
var ErrMissingEnv = errors.New("missing required environment variable")

// Config holds the full radio service configuration.
type Config struct {
	// Spotify OAuth credentials, required at startup.
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string

	// OpenAIKey is optional; the LLM endpoint reports an error without it.
	OpenAIKey string

	Addr   string
	Radio  RadioConfig
	OpenAI OpenAIConfig
	Recco  ReccoBeatsConfig
}

// RadioConfig holds candidate-selection tunables.
type RadioConfig struct {
	// Size is the maximum playlist length per trigger.
	Size int
	// ProbeOffset enables the total-count probe and random offset window
	// for the keyword strategy.
	ProbeOffset bool
}

// OpenAIConfig holds chat-completion request tunables.
type OpenAIConfig struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// ReccoBeatsConfig holds the recommendation API location.
type ReccoBeatsConfig struct {
	BaseURL string
}

// fileConfig mirrors the optional config.toml layout.
type fileConfig struct {
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
	Radio struct {
		Size        int   `toml:"size"`
		ProbeOffset *bool `toml:"probe_offset"`
	} `toml:"radio"`
	OpenAI struct {
		Model       string  `toml:"model"`
		MaxTokens   int     `toml:"max_tokens"`
		Temperature float64 `toml:"temperature"`
	} `toml:"openai"`
	ReccoBeats struct {
		BaseURL string `toml:"base_url"`
	} `toml:"reccobeats"`
}

// Load builds the configuration in three layers: defaults, then the config
// file (RADIO_CONFIG path or ./config.toml if present), then environment
// variables. A missing required variable yields an error wrapping
// ErrMissingEnv that names the variable.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Addr: DefaultAddr,
		Radio: RadioConfig{
			Size:        DefaultPlaylistSize,
			ProbeOffset: true,
		},
		OpenAI: OpenAIConfig{
			Model:       DefaultOpenAIModel,
			MaxTokens:   DefaultOpenAIMaxTokens,
			Temperature: DefaultOpenAITemperature,
		},
		Recco: ReccoBeatsConfig{
			BaseURL: DefaultReccoBeatsBaseURL,
		},
	}

	path := os.Getenv("RADIO_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if err := cfg.applyFile(path, explicit); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFile overlays values from a TOML file. A missing file is an error
// only when the path was set explicitly via RADIO_CONFIG.
func (c *Config) applyFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.Server.Addr != "" {
		c.Addr = fc.Server.Addr
	}
	if fc.Radio.Size > 0 {
		c.Radio.Size = fc.Radio.Size
	}
	if fc.Radio.ProbeOffset != nil {
		c.Radio.ProbeOffset = *fc.Radio.ProbeOffset
	}
	if fc.OpenAI.Model != "" {
		c.OpenAI.Model = fc.OpenAI.Model
	}
	if fc.OpenAI.MaxTokens > 0 {
		c.OpenAI.MaxTokens = fc.OpenAI.MaxTokens
	}
	if fc.OpenAI.Temperature > 0 {
		c.OpenAI.Temperature = fc.OpenAI.Temperature
	}
	if fc.ReccoBeats.BaseURL != "" {
		c.Recco.BaseURL = fc.ReccoBeats.BaseURL
	}

	return nil
}

// applyEnv overlays values from environment variables.
func (c *Config) applyEnv() {
	c.ClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	c.ClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	c.RedirectURI = os.Getenv("SPOTIFY_REDIRECT_URI")
	c.Scope = os.Getenv("SPOTIFY_SCOPE")
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	if addr := os.Getenv("RADIO_ADDR"); addr != "" {
		c.Addr = addr
	}
}

// validate checks that every required variable is present.
func (c *Config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"SPOTIFY_CLIENT_ID", c.ClientID},
		{"SPOTIFY_CLIENT_SECRET", c.ClientSecret},
		{"SPOTIFY_REDIRECT_URI", c.RedirectURI},
		{"SPOTIFY_SCOPE", c.Scope},
	}

	for _, v := range required {
		if v.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingEnv, v.name)
		}
	}

	return nil
}

// Scopes splits the configured OAuth scope string on whitespace.
func (c *Config) Scopes() []string {
	return strings.Fields(c.Scope)
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the service needs from the environment. The three
// API settings are required; Load fails fast with a clear diagnostic when any
// is missing so a misconfigured deployment dies at startup, not mid-request.
type Config struct {
	Port        string
	TMDBAPIKey  string
	OpenAIKey   string
	OpenAIModel string
	WatchRegion string
}

func Load() (*Config, error) {
	// Best effort: a missing .env file is fine, real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        strings.TrimSpace(os.Getenv("PORT")),
		TMDBAPIKey:  strings.TrimSpace(os.Getenv("TMDB_API_KEY")),
		OpenAIKey:   strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel: strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
		WatchRegion: strings.TrimSpace(os.Getenv("WATCH_REGION")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")
	if cfg.WatchRegion == "" {
		cfg.WatchRegion = "US"
	}

	var missing []string
	if cfg.TMDBAPIKey == "" {
		missing = append(missing, "TMDB_API_KEY")
	}
	if cfg.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if cfg.OpenAIModel == "" {
		missing = append(missing, "OPENAI_MODEL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

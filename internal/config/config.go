package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/tatianab/mystery-game/internal/hints"
	"github.com/tatianab/mystery-game/internal/models"
)

// Config holds the application configuration.
type Config struct {
	SaveDir      string
	SaveFile     string
	Case         string
	LogFile      string
	LogLevel     string
	ArchiveDB    string
	Hints        string
	GeminiAPIKey string
	OpenAIAPIKey string
	Seed         uint64
	HasSeed      bool
}

// LoadConfig loads .env if present, then reads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Load(os.LookupEnv)
}

// Load builds the configuration from lookupEnv.
func Load(lookupEnv func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookupEnv(key); ok && v != "" {
			return v
		}
		return fallback
	}

	dir := get("MYSTERY_SAVE_DIR", models.SaveDir)
	cfg := &Config{
		SaveDir:      dir,
		SaveFile:     get("MYSTERY_SAVE_FILE", filepath.Join(dir, "save_game.txt")),
		Case:         get("MYSTERY_CASE", "mansion"),
		LogFile:      get("MYSTERY_LOG_FILE", filepath.Join(dir, "mystery.log")),
		LogLevel:     get("MYSTERY_LOG_LEVEL", "info"),
		ArchiveDB:    get("MYSTERY_ARCHIVE_DB", filepath.Join(dir, "archive.db")),
		Hints:        get("MYSTERY_HINTS", hints.ProviderStatic),
		GeminiAPIKey: get("GEMINI_API_KEY", ""),
		OpenAIAPIKey: get("OPENAI_API_KEY", ""),
	}

	if s := get("MYSTERY_SEED", ""); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MYSTERY_SEED %q is not a number: %w", s, err)
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected hint provider can be used.
func (c *Config) Validate() error {
	switch c.Hints {
	case hints.ProviderStatic:
	case hints.ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
		}
	case hints.ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
	default:
		return fmt.Errorf("unknown hint provider %q (want %s, %s or %s)", c.Hints, hints.ProviderStatic, hints.ProviderGemini, hints.ProviderOpenAI)
	}
	return nil
}

package client

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	ai "github.com/mchlmayer/thumbpro"
	"github.com/mchlmayer/thumbpro/model"
)

// EditStrategy selects how reference edits are carried out.
type EditStrategy string

const (
	// EditStrategyDirect sends the reference images and the edit prompt to a
	// multimodal image model in one call.
	EditStrategyDirect EditStrategy = "direct"

	// EditStrategyDescribe first asks a vision model to describe the reference
	// images, then synthesizes a new image from the description and the edit prompt.
	EditStrategyDescribe EditStrategy = "describe"
)

// APIKeys holds API keys for different providers.
// Only the Google key is required; the others enable extra candidates.
type APIKeys struct {
	Google    string
	OpenAI    string
	Anthropic string
}

// Vertex configures the Google backend to use Vertex AI instead of an API key.
type Vertex struct {
	Project  string
	Location string
}

// Config holds configuration for creating a client.
type Config struct {
	// APIKeys contains authentication keys for each provider.
	APIKeys APIKeys

	// Vertex, when Project is set, routes Google models through Vertex AI with
	// Application Default Credentials. The Google API key is then optional.
	Vertex Vertex

	// Models is the candidate table. If nil, model.DefaultTable() is used.
	Models *model.Table

	// EditStrategy selects the reference edit pipeline (default: direct).
	EditStrategy EditStrategy

	// RetryConfig configures backoff for quota and transient transport errors.
	// If nil, uses ai.DefaultRetryConfig().
	RetryConfig *ai.RetryConfig

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event

	// Logger receives structured logs. If nil, slog.Default() is used.
	Logger *slog.Logger

	// LogLevel is the level read from THUMBPRO_LOG_LEVEL, for callers building a Logger.
	LogLevel slog.Level
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (Config, error) {
	godotenv.Load() // Load .env file if present

	retryCfg := ai.DefaultRetryConfig()
	retryCfg.MaxAttempts = getEnvIntOrDefault("THUMBPRO_MAX_ATTEMPTS", retryCfg.MaxAttempts)
	retryCfg.InitialDelay = getEnvDurationOrDefault("THUMBPRO_INITIAL_DELAY", retryCfg.InitialDelay)
	retryCfg.MaxDelay = getEnvDurationOrDefault("THUMBPRO_MAX_DELAY", retryCfg.MaxDelay)

	cfg := Config{
		APIKeys: APIKeys{
			Google:    firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"),
			OpenAI:    os.Getenv("OPENAI_API_KEY"),
			Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
		},
		Vertex: Vertex{
			Project:  os.Getenv("THUMBPRO_VERTEX_PROJECT"),
			Location: os.Getenv("THUMBPRO_VERTEX_LOCATION"),
		},
		EditStrategy: EditStrategy(getEnvOrDefault("THUMBPRO_EDIT_STRATEGY", string(EditStrategyDirect))),
		RetryConfig:  &retryCfg,
		LogLevel:     getEnvLevelOrDefault("THUMBPRO_LOG_LEVEL", slog.LevelInfo),
	}

	if path := os.Getenv("THUMBPRO_MODELS_FILE"); path != "" {
		table, err := model.LoadTable(path)
		if err != nil {
			return Config{}, ai.NewConfigurationError("THUMBPRO_MODELS_FILE is invalid", err)
		}
		cfg.Models = table
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c Config) Validate() error {
	if c.APIKeys.Google == "" && c.Vertex.Project == "" {
		return ai.NewConfigurationError("GEMINI_API_KEY is required (or THUMBPRO_VERTEX_PROJECT for Vertex AI)", nil)
	}

	switch c.EditStrategy {
	case "", EditStrategyDirect, EditStrategyDescribe:
	default:
		return ai.NewConfigurationError(fmt.Sprintf("unknown edit strategy %q (must be direct or describe)", c.EditStrategy), nil)
	}

	if c.RetryConfig != nil {
		if c.RetryConfig.MaxAttempts < 1 {
			return ai.NewConfigurationError("THUMBPRO_MAX_ATTEMPTS must be at least 1", nil)
		}
		if c.RetryConfig.MaxDelay < c.RetryConfig.InitialDelay {
			return ai.NewConfigurationError("THUMBPRO_MAX_DELAY must not be less than THUMBPRO_INITIAL_DELAY", nil)
		}
	}

	if c.Models != nil {
		if err := c.Models.Validate(); err != nil {
			return ai.NewConfigurationError("model table is incomplete", err)
		}
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvLevelOrDefault(key string, defaultValue slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return defaultValue
}

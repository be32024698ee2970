package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for waypoint-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API keys, passwords) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"3001"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Redis configuration (optional; response cache falls back to in-memory)
	Redis RedisConfig `yaml:"redis"`

	// Counselor oracle (OpenAI-compatible, tool-capable)
	Counselor CounselorAIConfig `yaml:"counselor_ai"`

	// Strategist oracle (Anthropic, no tools)
	Strategist StrategistAIConfig `yaml:"strategist_ai"`

	// Auth token validation (tokens minted by the accounts service)
	Auth AuthConfig `yaml:"auth"`

	// Response cache tuning
	Cache CacheConfig `yaml:"cache"`

	// Feedback notification routing
	Feedback FeedbackConfig `yaml:"feedback"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"waypoint"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"waypoint_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// RedisConfig holds Redis connection configuration.
// An empty host disables Redis and the response cache runs in-memory.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// CounselorAIConfig holds the endpoint for the tool-capable counselor model.
type CounselorAIConfig struct {
	BaseURL string `yaml:"base_url" env:"COUNSELOR_AI_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model   string `yaml:"model" env:"COUNSELOR_AI_MODEL" env-default:"gpt-4o"`
	APIKey  string `yaml:"-" env:"OPENAI_API_KEY"` // Secret - not in YAML
}

// StrategistAIConfig holds the endpoint for the deep-reasoning strategist model.
type StrategistAIConfig struct {
	Model          string `yaml:"model" env:"STRATEGIST_AI_MODEL" env-default:"claude-3-5-sonnet-20240620"`
	APIKey         string `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML
	MaxTokens      int    `yaml:"max_tokens" env:"STRATEGIST_AI_MAX_TOKENS" env-default:"1536"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"STRATEGIST_AI_TIMEOUT_SECONDS" env-default:"30"`
}

// IsAvailable returns true if the strategist oracle is configured.
func (c *StrategistAIConfig) IsAvailable() bool {
	return c.APIKey != ""
}

// Timeout returns the strategist call timeout as a duration.
func (c *StrategistAIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AuthConfig holds JWT validation settings. Tokens are minted by the
// accounts service; this engine only verifies them.
type AuthConfig struct {
	Secret string `yaml:"-" env:"AUTH_JWT_SECRET"` // Secret - not in YAML
	Issuer string `yaml:"issuer" env:"AUTH_JWT_ISSUER" env-default:"waypoint-accounts"`
}

// CacheConfig holds response cache tuning.
type CacheConfig struct {
	// ResearchTTLMinutes is how long research responses are memoized.
	ResearchTTLMinutes int `yaml:"research_ttl_minutes" env:"CACHE_RESEARCH_TTL_MINUTES" env-default:"240"`
}

// ResearchTTL returns the research cache TTL as a duration.
func (c *CacheConfig) ResearchTTL() time.Duration {
	return time.Duration(c.ResearchTTLMinutes) * time.Minute
}

// FeedbackConfig holds routing for the fire-and-forget feedback notification.
type FeedbackConfig struct {
	InboxAddress string `yaml:"inbox_address" env:"FEEDBACK_INBOX_ADDRESS" env-default:""`
	FromAddress  string `yaml:"from_address" env:"FEEDBACK_FROM_ADDRESS" env-default:"Waypoint <noreply@waypoint.app>"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
// A missing config.yaml is not an error; env defaults apply.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment config: %w", err)
		}
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

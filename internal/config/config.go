// Package config loads application configuration from defaults, an
// optional config.yaml and PERSONAAI_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Chat     ChatConfig     `mapstructure:"chat"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type AuthConfig struct {
	JWTSecret        string        `mapstructure:"jwt_secret" validate:"required"`
	TokenTTL         time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
	SignupInviteCode string        `mapstructure:"signup_invite_code"`

	// Seed admin, created only when the users table is empty.
	SeedAdminName     string `mapstructure:"seed_admin_name"`
	SeedAdminEmail    string `mapstructure:"seed_admin_email" validate:"omitempty,email"`
	SeedAdminPassword string `mapstructure:"seed_admin_password"`
}

type ChatConfig struct {
	// HistoryLimit bounds how many trailing conversation messages are
	// forwarded to the provider, keeping the request inside context limits.
	HistoryLimit int `mapstructure:"history_limit" validate:"gt=0"`

	// Rate limit per authenticated user on the chat endpoints.
	RatePerMinute int `mapstructure:"rate_per_minute" validate:"gt=0"`
	RateBurst     int `mapstructure:"rate_burst" validate:"gt=0"`
}

type LLMConfig struct {
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	OpenAIBaseURL   string `mapstructure:"openai_base_url"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	OllamaHost      string `mapstructure:"ollama_host"`
}

type SpeechConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Load reads configuration in precedence order: defaults, config.yaml,
// environment. The result is validated before use.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PERSONAAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults plus env cover everything.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every configuration key. AutomaticEnv only binds
// keys viper already knows, so keys without a meaningful default still get
// a zero-value entry here to make their PERSONAAI_* variables visible.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.path", "./personaai.db")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.signup_invite_code", "")
	v.SetDefault("auth.seed_admin_name", "")
	v.SetDefault("auth.seed_admin_email", "")
	v.SetDefault("auth.seed_admin_password", "")

	v.SetDefault("chat.history_limit", 50)
	v.SetDefault("chat.rate_per_minute", 20)
	v.SetDefault("chat.rate_burst", 5)

	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.openai_base_url", "")
	v.SetDefault("llm.anthropic_api_key", "")
	v.SetDefault("llm.ollama_host", "http://localhost:11434")

	v.SetDefault("speech.enabled", false)
	v.SetDefault("speech.credentials_file", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("PERSONAAI_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("PERSONAAI_LLM_OPENAI_API_KEY", "sk-test")
	t.Setenv("PERSONAAI_AUTH_SEED_ADMIN_EMAIL", "admin@example.com")
	t.Setenv("PERSONAAI_SPEECH_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, "admin@example.com", cfg.Auth.SeedAdminEmail)
	assert.True(t, cfg.Speech.Enabled)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PERSONAAI_AUTH_JWT_SECRET", "env-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "./personaai.db", cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 50, cfg.Chat.HistoryLimit)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.OllamaHost)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Speech.Enabled)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("PERSONAAI_AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTSecret")
}

func TestLoadInvalidLogLevel(t *testing.T) {
	t.Setenv("PERSONAAI_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("PERSONAAI_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Level")
}

func TestLoadInvalidSeedEmail(t *testing.T) {
	t.Setenv("PERSONAAI_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("PERSONAAI_AUTH_SEED_ADMIN_EMAIL", "not-an-email")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SeedAdminEmail")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")
	t.Setenv("CHAT_CONSULTING_MIN_TURNS", "")
	t.Setenv("CHAT_TRIAL_WINDOW", "")

	cfg := Load()

	assert.Equal(t, "*", cfg.App.CorsAllowedOrigins)
	assert.Equal(t, 3, cfg.Chat.ConsultingMinTurns)
	assert.Equal(t, 10*time.Minute, cfg.Chat.TrialWindow)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("CHAT_CONSULTING_MIN_TURNS", "5")
	t.Setenv("CHAT_TRIAL_WINDOW", "0s")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("LLM_TEMPERATURE", "0.2")

	cfg := Load()

	assert.Equal(t, "gemini", cfg.Ai.LLMProvider)
	assert.Equal(t, 5, cfg.Chat.ConsultingMinTurns)
	assert.Equal(t, time.Duration(0), cfg.Chat.TrialWindow)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
	assert.InDelta(t, 0.2, cfg.Ai.Temperature, 0.0001)
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	t.Setenv("SOME_DURATION", "soon")

	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))
	assert.Equal(t, "x", getEnv("DEFINITELY_UNSET_KEY_FOR_TEST", "x"))
}

package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "prod") // skip .env loading
	for _, k := range []string{
		"SERVER_PORT", "BASE_URL", "DATABASE_DSN",
		"KAFKA_BROKER", "KAFKA_TOPIC", "ACCESS_SECRET",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, ":5000", cfg.ServerPort)
	assert.NotEmpty(t, cfg.AccessSecret)

	// the cors middleware runs with credentials on, so the default
	// origin must never be the wildcard
	assert.NotEqual(t, "*", cfg.BaseURL)
	assert.True(t, strings.HasPrefix(cfg.BaseURL, "http"))
}

func TestLoadConfigReadsEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("BASE_URL", "https://selyo.ustp.edu.ph")
	t.Setenv("ACCESS_SECRET", "configured-secret")

	cfg := LoadConfig()

	assert.Equal(t, ":9000", cfg.ServerPort)
	assert.Equal(t, "https://selyo.ustp.edu.ph", cfg.BaseURL)
	assert.Equal(t, "configured-secret", cfg.AccessSecret)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SOUQ_DATABASE_URL", "postgres://localhost:5432/souq?sslmode=disable")
	t.Setenv("SOUQ_AUTH_JWT_SECRET", testSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/souq?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)

	// Defaults fill in everything not set explicitly.
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 7*24*60, cfg.Auth.RefreshTokenLifetimeMinutes)
	assert.Equal(t, "souq.orders", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SOUQ_SERVER_PORT", "9090")
	t.Setenv("SOUQ_SERVER_LOG_LEVEL", "debug")
	t.Setenv("SOUQ_KAFKA_BROKERS", "broker-1:9092,broker-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("SOUQ_DATABASE_URL", "")
	t.Setenv("SOUQ_AUTH_JWT_SECRET", testSecret)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("SOUQ_DATABASE_URL", "postgres://localhost:5432/souq")
	t.Setenv("SOUQ_AUTH_JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SOUQ_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

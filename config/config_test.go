package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "engagementdb", cfg.MongoDatabase)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSUrl)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.ReconcileInterval)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MONGO_DATABASE", "appdb")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("RECONCILE_INTERVAL_MINUTES", "5")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()

	assert.Equal(t, "appdb", cfg.MongoDatabase)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.ReconcileInterval)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

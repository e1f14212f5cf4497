package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI          string
	MongoDatabase     string
	NATSUrl           string
	ListenAddr        string
	JWTSecret         string
	TokenTTL          time.Duration
	ReconcileInterval time.Duration
	Environment       string
}

// Load reads configuration from environment variables. MONGO_URI and
// JWT_SECRET are required; everything else has a default.
func Load() *Config {
	cfg := &Config{
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     getEnvOrDefault("MONGO_DATABASE", "engagementdb"),
		NATSUrl:           getEnvOrDefault("NATS_URL", "nats://localhost:4222"),
		ListenAddr:        getEnvOrDefault("LISTEN_ADDR", ":8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          time.Duration(getEnvIntOrDefault("TOKEN_TTL_HOURS", 24)) * time.Hour,
		ReconcileInterval: time.Duration(getEnvIntOrDefault("RECONCILE_INTERVAL_MINUTES", 30)) * time.Minute,
		Environment:       getEnvOrDefault("ENVIRONMENT", "development"),
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	log.Printf("Config: database=%s, listen=%s, reconcile=%v, env=%s",
		cfg.MongoDatabase, cfg.ListenAddr, cfg.ReconcileInterval, cfg.Environment)

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerHost string
	ServerPort string

	// WebSocket tuning
	AllowedOrigin   string
	SendBuffer      int
	MaxMessageBytes int

	// Observability
	JaegerEndpoint string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		ServerHost: getEnv("SERVER_HOST", "localhost"),
		ServerPort: getEnv("SERVER_PORT", "3001"),

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		SendBuffer:    getEnvInt("WS_SEND_BUFFER", 256),
		// Whole-canvas snapshots arrive as base64 data URLs; 8 MiB covers a
		// large screen with headroom.
		MaxMessageBytes: getEnvInt("WS_MAX_MESSAGE_BYTES", 8<<20),

		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

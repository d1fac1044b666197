package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultPollInterval = 15 * time.Second
)

var log = InitLogger()

// Load reads the .env file when present. Missing files are not fatal: in
// deployed environments everything comes from real environment variables.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}
}

// HTTPAddr returns the listen address for the API server.
func HTTPAddr() string {
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		return addr
	}
	return defaultHTTPAddr
}

// PollInterval returns how often the notification processors run a pass.
func PollInterval() time.Duration {
	raw := os.Getenv("NOTIFICATION_POLL_INTERVAL")
	if raw == "" {
		return defaultPollInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Errorf("Invalid NOTIFICATION_POLL_INTERVAL %q, using default", raw)
		return defaultPollInterval
	}
	return d
}

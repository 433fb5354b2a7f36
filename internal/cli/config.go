package cli

import "os"

// Config holds CLI configuration
type Config struct {
	Storage  string
	RedisURL string
	Verbose  bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Storage:  getEnvOrDefault("SCOREKEEP_STORAGE", "memory"),
		RedisURL: getEnvOrDefault("SCOREKEEP_REDIS_URL", "redis://localhost:6379"),
		Verbose:  false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

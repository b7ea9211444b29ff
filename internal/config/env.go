package config

import (
	"os"
	"strconv"
)

// LoadFromEnv overlays cfg with any CDCCHUNKER_* environment variables
// present. Environment values always win over whatever was already in cfg
// (loaded from YAML or left at its zero value) — env is applied last.
func LoadFromEnv(cfg *Config) {
	if port := os.Getenv("CDCCHUNKER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	if logLevel := os.Getenv("CDCCHUNKER_LOG_LEVEL"); logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}

	if algo := os.Getenv("CDCCHUNKER_ALGORITHM"); algo != "" {
		cfg.Chunker.Algorithm = algo
	}

	if capOverride := os.Getenv("CDCCHUNKER_BUFFER_CAPACITY"); capOverride != "" {
		if n, err := strconv.Atoi(capOverride); err == nil {
			cfg.Chunker.BufferCapacityOverride = n
		}
	}

	if compress := os.Getenv("CDCCHUNKER_COMPRESS"); compress != "" {
		if b, err := strconv.ParseBool(compress); err == nil {
			cfg.Chunker.Compress = b
		}
	}
}

// GetEnvOrDefault returns the environment variable at key, or defaultValue
// if it is unset or empty.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables consulted after the config file is parsed.
const (
	EnvJava     = "FONTBUILDER_JAVA"
	EnvJar      = "FONTBUILDER_JAR"
	EnvLogLevel = "FONTBUILDER_LOG_LEVEL"
)

// loadEnvFile loads environment variables from .env/.env.local files.
// It attempts each supported filename in order and stops at the first successfully parsed file.
// Existing process environment variables are not overwritten.
func loadEnvFile() error {
	envPaths := []string{".env", ".env.local"}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
		fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
		return nil
	}
	return fmt.Errorf("no .env file found")
}

// applyEnvOverrides lets FONTBUILDER_* variables replace tool and logging settings.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvJava); v != "" {
		cfg.Tool.Java = v
	}
	if v := os.Getenv(EnvJar); v != "" {
		cfg.Tool.Jar = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = NormalizeLogLevel(v)
	}
}

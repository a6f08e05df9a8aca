package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel  string
	LogFormat string

	// Reporting defaults
	ReportPeriod string
	SoftMinAlpha float64

	// Langfuse configuration
	LangfuseBaseURL   string
	LangfusePublicKey string
	LangfuseSecretKey string
	LangfuseEnv       string
}

func Load() *Config {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		ReportPeriod: getEnv("REPORT_PERIOD", "daily"),
		SoftMinAlpha: getEnvFloat("SOFTMIN_ALPHA", 10.0),

		LangfuseBaseURL:   getEnv("LANGFUSE_BASE_URL", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseEnv:       getEnv("LANGFUSE_ENV", "development"),
	}
}

// TracingEnabled reports whether enough Langfuse settings are present to
// export traces.
func (c *Config) TracingEnabled() bool {
	return c.LangfuseBaseURL != "" && c.LangfusePublicKey != "" && c.LangfuseSecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat falls back to the default for unset, unparsable or
// non-positive values.
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || !(f > 0) {
		return defaultValue
	}
	return f
}

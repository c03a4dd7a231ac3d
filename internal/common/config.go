package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Engine names accepted by PDF2CSV_ENGINE and --engine.
const (
	EngineTabulaJava = "tabula-java"
	EngineNative     = "native"
)

// Config holds all application configuration
type Config struct {
	Engine EngineConfig
	Log    LogConfig
}

// EngineConfig holds extraction-engine configuration
type EngineConfig struct {
	Name      string
	JavaBin   string
	TabulaJar string
	JavaOpts  []string
	Timeout   time.Duration // 0 means no bound
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "text" | "json"
}

// LoadConfig loads configuration from environment variables, after merging a .env
// file from the working directory when one exists.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Engine: EngineConfig{
			Name:      getEnv("PDF2CSV_ENGINE", EngineTabulaJava),
			JavaBin:   getEnv("PDF2CSV_JAVA", "java"),
			TabulaJar: getEnv("PDF2CSV_TABULA_JAR", "tabula.jar"),
			JavaOpts:  strings.Fields(getEnv("PDF2CSV_JAVA_OPTS", "-Dfile.encoding=UTF8")),
			Timeout:   getEnvAsDuration("PDF2CSV_ENGINE_TIMEOUT", 0),
		},
		Log: LogConfig{
			Level:  getEnv("PDF2CSV_LOG_LEVEL", "info"),
			Format: getEnv("PDF2CSV_LOG_FORMAT", "text"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("engine", c.Engine.Name, Required, OneOf(EngineTabulaJava, EngineNative)).
		Field("log format", c.Log.Format, OneOf("text", "json")).
		Field("log level", c.Log.Level, OneOf("debug", "info", "warn", "warning", "error"))
	if c.Engine.Name == EngineTabulaJava {
		v.Field("java binary", c.Engine.JavaBin, Required).
			Field("tabula jar", c.Engine.TabulaJar, Required)
	}
	if c.Engine.Timeout < 0 {
		v.Field("engine timeout", c.Engine.Timeout.String(), func(field string, value interface{}) *ValidationError {
			return &ValidationError{Field: field, Value: value, Message: "must not be negative"}
		})
	}
	if err := v.Error(); err != nil {
		return NewAppError(KindMalformedArgument, fmt.Sprintf("configuration: %v", err), nil)
	}
	return nil
}

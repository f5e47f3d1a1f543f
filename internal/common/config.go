package common

import (
	"os"
	"strconv"
	"time"
)

// Config groups the daemon and engine settings read from the environment.
type Config struct {
	Server  ServerConfig
	Extract ExtractConfig
	Match   MatchConfig
}

// ServerConfig holds upload-daemon configuration
type ServerConfig struct {
	HTTPAddr        string
	UploadDir       string
	MaxUploadMB     int
	ShutdownTimeout time.Duration
}

// ExtractConfig holds document-text extraction configuration
type ExtractConfig struct {
	PdftotextBin string
	Timeout      time.Duration
}

// MatchConfig holds the reconciliation engine knobs
type MatchConfig struct {
	Threshold  int // minimum similarity score (0..100) for a fuzzy match
	MinDescLen int // minimum normalized description length kept in the duty table
}

// LoadConfig reads the environment, falling back to defaults that suit a
// local single-instance deployment.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			UploadDir:       getEnv("UPLOAD_DIR", "./tmp"),
			MaxUploadMB:     getEnvAsInt("MAX_UPLOAD_MB", 32),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Extract: ExtractConfig{
			PdftotextBin: getEnv("PDFTOTEXT", "pdftotext"),
			Timeout:      getEnvAsDuration("PDFTOTEXT_TIMEOUT", 30*time.Second),
		},
		Match: MatchConfig{
			Threshold:  getEnvAsInt("MATCH_THRESHOLD", 70),
			MinDescLen: getEnvAsInt("MIN_DESC_LEN", 3),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
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

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrConfig)
	}
	if c.Server.MaxUploadMB <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_MB must be positive", ErrConfig)
	}
	if c.Extract.PdftotextBin == "" {
		return NewAppError("CONFIG_ERROR", "PDFTOTEXT is required", ErrConfig)
	}
	if c.Match.Threshold < 0 || c.Match.Threshold > 100 {
		return NewAppError("CONFIG_ERROR", "MATCH_THRESHOLD must be within 0..100", ErrConfig)
	}
	if c.Match.MinDescLen < 1 || c.Match.MinDescLen > 8 {
		return NewAppError("CONFIG_ERROR", "MIN_DESC_LEN must be within 1..8", ErrConfig)
	}
	return nil
}

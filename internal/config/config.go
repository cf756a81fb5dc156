package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	LLM        LLMConfig
	Upload     UploadConfig
	CORS       CORSConfig
	Confidence ConfidenceConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMProviderConfig holds settings for a single LLM completion provider.
type LLMProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// LLMConfig holds LLM completion settings with multi-provider support.
// Secondary and tertiary providers are optional fallbacks; there is no
// retry of a failed provider within a request.
type LLMConfig struct {
	Primary   LLMProviderConfig `mapstructure:"primary"`
	Secondary LLMProviderConfig `mapstructure:"secondary"`
	Tertiary  LLMProviderConfig `mapstructure:"tertiary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (l *LLMConfig) SecondaryConfig() *LLMProviderConfig {
	if l.Secondary.Provider != "" {
		return &l.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (l *LLMConfig) TertiaryConfig() *LLMProviderConfig {
	if l.Tertiary.Provider != "" {
		return &l.Tertiary
	}
	return nil
}

// UploadConfig holds upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ConfidenceConfig controls AI confidence scoring of comparison results.
type ConfidenceConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from environment variables with the REDLINE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REDLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// LLM provider defaults
	v.SetDefault("llm.primary.provider", "gemini")
	v.SetDefault("llm.primary.api_key", "")
	v.SetDefault("llm.primary.default_model", "gemini-2.0-flash")
	v.SetDefault("llm.primary.timeout_secs", 120)
	v.SetDefault("llm.secondary.provider", "")
	v.SetDefault("llm.secondary.api_key", "")
	v.SetDefault("llm.secondary.default_model", "")
	v.SetDefault("llm.secondary.timeout_secs", 120)
	v.SetDefault("llm.tertiary.provider", "")
	v.SetDefault("llm.tertiary.api_key", "")
	v.SetDefault("llm.tertiary.default_model", "")
	v.SetDefault("llm.tertiary.timeout_secs", 120)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 25)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Confidence scoring defaults
	v.SetDefault("confidence.enabled", true)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "REDLINE_SERVER_PORT",
		"server.read_timeout":           "REDLINE_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "REDLINE_SERVER_WRITE_TIMEOUT",
		"server.environment":            "REDLINE_SERVER_ENVIRONMENT",
		"log.level":                     "REDLINE_LOG_LEVEL",
		"log.format":                    "REDLINE_LOG_FORMAT",
		"llm.primary.provider":          "REDLINE_LLM_PRIMARY_PROVIDER",
		"llm.primary.api_key":           "REDLINE_LLM_PRIMARY_API_KEY",
		"llm.primary.default_model":     "REDLINE_LLM_PRIMARY_DEFAULT_MODEL",
		"llm.primary.timeout_secs":      "REDLINE_LLM_PRIMARY_TIMEOUT_SECS",
		"llm.secondary.provider":        "REDLINE_LLM_SECONDARY_PROVIDER",
		"llm.secondary.api_key":         "REDLINE_LLM_SECONDARY_API_KEY",
		"llm.secondary.default_model":   "REDLINE_LLM_SECONDARY_DEFAULT_MODEL",
		"llm.secondary.timeout_secs":    "REDLINE_LLM_SECONDARY_TIMEOUT_SECS",
		"llm.tertiary.provider":         "REDLINE_LLM_TERTIARY_PROVIDER",
		"llm.tertiary.api_key":          "REDLINE_LLM_TERTIARY_API_KEY",
		"llm.tertiary.default_model":    "REDLINE_LLM_TERTIARY_DEFAULT_MODEL",
		"llm.tertiary.timeout_secs":     "REDLINE_LLM_TERTIARY_TIMEOUT_SECS",
		"upload.max_file_size_mb":       "REDLINE_UPLOAD_MAX_FILE_SIZE_MB",
		"cors.allowed_origins":          "REDLINE_CORS_ALLOWED_ORIGINS",
		"confidence.enabled":            "REDLINE_CONFIDENCE_ENABLED",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if REDLINE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("REDLINE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.LLM = LLMConfig{
		Primary: LLMProviderConfig{
			Provider:     v.GetString("llm.primary.provider"),
			APIKey:       v.GetString("llm.primary.api_key"),
			DefaultModel: v.GetString("llm.primary.default_model"),
			TimeoutSecs:  v.GetInt("llm.primary.timeout_secs"),
		},
		Secondary: LLMProviderConfig{
			Provider:     v.GetString("llm.secondary.provider"),
			APIKey:       v.GetString("llm.secondary.api_key"),
			DefaultModel: v.GetString("llm.secondary.default_model"),
			TimeoutSecs:  v.GetInt("llm.secondary.timeout_secs"),
		},
		Tertiary: LLMProviderConfig{
			Provider:     v.GetString("llm.tertiary.provider"),
			APIKey:       v.GetString("llm.tertiary.api_key"),
			DefaultModel: v.GetString("llm.tertiary.default_model"),
			TimeoutSecs:  v.GetInt("llm.tertiary.timeout_secs"),
		},
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Confidence = ConfidenceConfig{Enabled: v.GetBool("confidence.enabled")}

	return cfg, nil
}

// Validate checks settings that must be present for the process to start.
func (c *Config) Validate() error {
	if c.LLM.Primary.APIKey == "" {
		return fmt.Errorf("llm primary api key is not set (REDLINE_LLM_PRIMARY_API_KEY)")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. Loaded once before the first
// request and immutable afterwards.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Upload    UploadConfig
	Loader    LoaderConfig
	Prompt    PromptConfig
	Extractor ExtractorConfig
	CORS      CORSConfig
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

// UploadConfig holds upload boundary settings.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// LoaderConfig holds document rendering settings.
type LoaderConfig struct {
	MaxPages       int `mapstructure:"max_pages"`
	MaxDimensionPx int `mapstructure:"max_dimension_px"`
	JPEGQuality    int `mapstructure:"jpeg_quality"`
}

// PromptConfig holds the deployment-level prompt policy.
type PromptConfig struct {
	// TargetLanguage is the language all textual fields are rendered in.
	TargetLanguage string `mapstructure:"target_language"`
	// PreserveNumerics leaves numeric values and dates untranslated, only
	// normalized. When false every field is translated, the behavior of
	// earlier deployments.
	PreserveNumerics bool `mapstructure:"preserve_numerics"`
}

// ExtractorConfig holds settings for the external extraction model provider.
type ExtractorConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the INVEX_ prefix.
// The extractor API key is required; its absence is a startup-time fatal error
// for the caller.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 25)

	// Loader defaults
	v.SetDefault("loader.max_pages", 20)
	v.SetDefault("loader.max_dimension_px", 2048)
	v.SetDefault("loader.jpeg_quality", 90)

	// Prompt defaults: translate text only, keep numbers and dates as-is
	v.SetDefault("prompt.target_language", "English")
	v.SetDefault("prompt.preserve_numerics", true)

	// Extractor defaults
	v.SetDefault("extractor.provider", "gemini")
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.default_model", "gemini-1.5-flash")
	v.SetDefault("extractor.timeout_secs", 120)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "INVEX_SERVER_PORT",
		"server.read_timeout":      "INVEX_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "INVEX_SERVER_WRITE_TIMEOUT",
		"server.environment":       "INVEX_SERVER_ENVIRONMENT",
		"log.level":                "INVEX_LOG_LEVEL",
		"log.format":               "INVEX_LOG_FORMAT",
		"upload.max_file_size_mb":  "INVEX_UPLOAD_MAX_FILE_SIZE_MB",
		"loader.max_pages":         "INVEX_LOADER_MAX_PAGES",
		"loader.max_dimension_px":  "INVEX_LOADER_MAX_DIMENSION_PX",
		"loader.jpeg_quality":      "INVEX_LOADER_JPEG_QUALITY",
		"prompt.target_language":   "INVEX_PROMPT_TARGET_LANGUAGE",
		"prompt.preserve_numerics": "INVEX_PROMPT_PRESERVE_NUMERICS",
		"extractor.provider":       "INVEX_EXTRACTOR_PROVIDER",
		"extractor.api_key":        "INVEX_EXTRACTOR_API_KEY",
		"extractor.default_model":  "INVEX_EXTRACTOR_DEFAULT_MODEL",
		"extractor.timeout_secs":   "INVEX_EXTRACTOR_TIMEOUT_SECS",
		"cors.allowed_origins":     "INVEX_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// PaaS platforms set a PORT env var. Use it if INVEX_SERVER_PORT is not
	// explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVEX_SERVER_PORT") == "" {
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

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	cfg.Loader = LoaderConfig{
		MaxPages:       v.GetInt("loader.max_pages"),
		MaxDimensionPx: v.GetInt("loader.max_dimension_px"),
		JPEGQuality:    v.GetInt("loader.jpeg_quality"),
	}

	cfg.Prompt = PromptConfig{
		TargetLanguage:   v.GetString("prompt.target_language"),
		PreserveNumerics: v.GetBool("prompt.preserve_numerics"),
	}

	cfg.Extractor = ExtractorConfig{
		Provider:     v.GetString("extractor.provider"),
		APIKey:       v.GetString("extractor.api_key"),
		DefaultModel: v.GetString("extractor.default_model"),
		TimeoutSecs:  v.GetInt("extractor.timeout_secs"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			corsOrigins = append(corsOrigins, trimmed)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if cfg.Extractor.APIKey == "" {
		return nil, fmt.Errorf("INVEX_EXTRACTOR_API_KEY is required")
	}

	return cfg, nil
}

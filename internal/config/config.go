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
	Server   ServerConfig
	DB       DBConfig
	Log      LogConfig
	OCR      OCRConfig
	Classify ClassifyConfig
	Backfill BackfillConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OCRConfig holds OCR engine settings.
type OCRConfig struct {
	// Engine selects the OCR backend: "typhoon" (remote API) or "tesseract" (local).
	Engine      string `mapstructure:"engine"`
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	Model       string `mapstructure:"model"`
	Language    string `mapstructure:"language"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the OCR time budget as a duration.
func (o *OCRConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSecs) * time.Second
}

// ClassifyConfig holds LLM classification settings.
type ClassifyConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// BackfillConfig holds classification backfill settings.
type BackfillConfig struct {
	BatchSize        int `mapstructure:"batch_size"`
	MinTextLen       int `mapstructure:"min_text_len"`
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the RECEIPTFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RECEIPTFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "receiptflow")
	v.SetDefault("db.password", "receiptflow_secret")
	v.SetDefault("db.name", "receiptflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// OCR defaults
	v.SetDefault("ocr.engine", "typhoon")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.base_url", "")
	v.SetDefault("ocr.model", "typhoon-ocr-preview")
	v.SetDefault("ocr.language", "tha+eng")
	v.SetDefault("ocr.timeout_secs", 180)

	// Classifier defaults
	v.SetDefault("classify.api_key", "")
	v.SetDefault("classify.model", "gemini-1.5-flash")
	v.SetDefault("classify.endpoint", "")
	v.SetDefault("classify.timeout_secs", 60)

	// Backfill defaults
	v.SetDefault("backfill.batch_size", 100)
	v.SetDefault("backfill.min_text_len", 10)
	v.SetDefault("backfill.poll_interval_secs", 0)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "RECEIPTFLOW_SERVER_PORT",
		"server.read_timeout":         "RECEIPTFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "RECEIPTFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":          "RECEIPTFLOW_SERVER_ENVIRONMENT",
		"db.host":                     "RECEIPTFLOW_DB_HOST",
		"db.port":                     "RECEIPTFLOW_DB_PORT",
		"db.user":                     "RECEIPTFLOW_DB_USER",
		"db.password":                 "RECEIPTFLOW_DB_PASSWORD",
		"db.name":                     "RECEIPTFLOW_DB_NAME",
		"db.sslmode":                  "RECEIPTFLOW_DB_SSLMODE",
		"db.max_open":                 "RECEIPTFLOW_DB_MAX_OPEN",
		"db.max_idle":                 "RECEIPTFLOW_DB_MAX_IDLE",
		"log.level":                   "RECEIPTFLOW_LOG_LEVEL",
		"log.format":                  "RECEIPTFLOW_LOG_FORMAT",
		"ocr.engine":                  "RECEIPTFLOW_OCR_ENGINE",
		"ocr.api_key":                 "RECEIPTFLOW_OCR_API_KEY",
		"ocr.base_url":                "RECEIPTFLOW_OCR_BASE_URL",
		"ocr.model":                   "RECEIPTFLOW_OCR_MODEL",
		"ocr.language":                "RECEIPTFLOW_OCR_LANGUAGE",
		"ocr.timeout_secs":            "RECEIPTFLOW_OCR_TIMEOUT_SECS",
		"classify.api_key":            "RECEIPTFLOW_CLASSIFY_API_KEY",
		"classify.model":              "RECEIPTFLOW_CLASSIFY_MODEL",
		"classify.endpoint":           "RECEIPTFLOW_CLASSIFY_ENDPOINT",
		"classify.timeout_secs":       "RECEIPTFLOW_CLASSIFY_TIMEOUT_SECS",
		"backfill.batch_size":         "RECEIPTFLOW_BACKFILL_BATCH_SIZE",
		"backfill.min_text_len":       "RECEIPTFLOW_BACKFILL_MIN_TEXT_LEN",
		"backfill.poll_interval_secs": "RECEIPTFLOW_BACKFILL_POLL_INTERVAL_SECS",
		"cors.allowed_origins":        "RECEIPTFLOW_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if RECEIPTFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RECEIPTFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.OCR = OCRConfig{
		Engine:      v.GetString("ocr.engine"),
		APIKey:      v.GetString("ocr.api_key"),
		BaseURL:     v.GetString("ocr.base_url"),
		Model:       v.GetString("ocr.model"),
		Language:    v.GetString("ocr.language"),
		TimeoutSecs: v.GetInt("ocr.timeout_secs"),
	}
	cfg.Classify = ClassifyConfig{
		APIKey:      v.GetString("classify.api_key"),
		Model:       v.GetString("classify.model"),
		Endpoint:    v.GetString("classify.endpoint"),
		TimeoutSecs: v.GetInt("classify.timeout_secs"),
	}
	cfg.Backfill = BackfillConfig{
		BatchSize:        v.GetInt("backfill.batch_size"),
		MinTextLen:       v.GetInt("backfill.min_text_len"),
		PollIntervalSecs: v.GetInt("backfill.poll_interval_secs"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}

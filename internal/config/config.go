package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string         `json:"env"`
	Http     HttpConfig     `json:"http"`
	Sheets   SheetsConfig   `json:"sheets"`
	File     FileConfig     `json:"file"`
	Geocoder GeocoderConfig `json:"geocoder"`
	Redis    RedisConfig    `json:"redis"`
	APIKey   string         `json:"api_key,omitempty"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// SheetsConfig holds the remote tabular backend settings. The backend is
// selected only when both CredentialsFile and SpreadsheetID are set.
type SheetsConfig struct {
	CredentialsFile string `json:"credentials_file"`
	SpreadsheetID   string `json:"spreadsheet_id"`
	Tab             string `json:"tab"`
}

type FileConfig struct {
	Path string `json:"path"`
}

type GeocoderConfig struct {
	BaseURL   string        `json:"base_url"`
	UserAgent string        `json:"user_agent"`
	Timeout   time.Duration `json:"timeout"`
}

type RedisConfig struct {
	Addr     string        `json:"addr"`
	Password string        `json:"password,omitempty"`
	DB       int           `json:"db"`
	Disabled bool          `json:"disabled"`
	CacheTTL time.Duration `json:"cache_ttl"`
}

func LoadConfig() (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
			SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
			Tab:             getEnv("SHEETS_TAB", "requests"),
		},
		File: FileConfig{
			Path: getEnv("STORE_FILE", "requests.csv"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:   getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent: getEnv("GEOCODER_USER_AGENT", "disaster-relief-hub/1.0"),
			Timeout:   getEnvDuration("GEOCODER_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Disabled: getEnvBool("REDIS_DISABLED", false),
			CacheTTL: getEnvDuration("REDIS_CACHE_TTL", 24*time.Hour),
		},
		APIKey: getEnv("API_KEY", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.Bool("sheets_configured", cfg.Sheets.Configured()),
		slog.String("store_file", cfg.File.Path),
		slog.String("geocoder", cfg.Geocoder.BaseURL))

	return cfg, nil
}

// Configured reports whether the remote tabular backend can be used.
func (s SheetsConfig) Configured() bool {
	return s.CredentialsFile != "" && s.SpreadsheetID != ""
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	if !c.Sheets.Configured() && c.File.Path == "" {
		return errors.New("STORE_FILE required when Sheets credentials are absent")
	}

	if c.Geocoder.BaseURL == "" {
		return errors.New("GEOCODER_BASE_URL required")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

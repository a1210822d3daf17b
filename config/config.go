package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
	log "github.com/sirupsen/logrus"
)

// Config holds every environment-driven setting of the admin console
type Config struct {
	Env      string `env:"ENV,default=development"`
	Port     string `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST"`
	DBPort      string `env:"DB_PORT,default=5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBSSLMode   string `env:"DB_SSLMODE,default=disable"`

	StaticDir           string `env:"STATIC_DIR,default=static"`
	CacheDir            string `env:"CACHE_DIR,default=cache/images"`
	TemplateCatalogPath string `env:"TEMPLATE_CATALOG_PATH"`
	PublicBaseURL       string `env:"PUBLIC_BASE_URL"`
	ChromePath          string `env:"CHROME_PATH"`

	GoogleCredentialsPath string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	DriveArchiveFolderID  string `env:"DRIVE_ARCHIVE_FOLDER_ID"`

	PreviewWidth      int     `env:"PREVIEW_WIDTH,default=600"`
	PreviewHeight     int     `env:"PREVIEW_HEIGHT,default=800"`
	PreviewRatePerSec float64 `env:"PREVIEW_RATE_PER_SEC,default=2"`
	PreviewBurst      int     `env:"PREVIEW_BURST,default=4"`
}

// Load decodes the configuration from the process environment
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	// Remove leading colon if present (some hosts export PORT as ":8080")
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}
	cfg.PublicBaseURL = strings.TrimSuffix(cfg.PublicBaseURL, "/")

	if cfg.PreviewWidth <= 0 || cfg.PreviewHeight <= 0 {
		return nil, fmt.Errorf("preview size must be positive, got %dx%d", cfg.PreviewWidth, cfg.PreviewHeight)
	}
	return &cfg, nil
}

// IsProduction reports whether ENV is "production"
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN returns DATABASE_URL or a connection string assembled from the DB_* variables
func (c *Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode), nil
}

// ConfigureLogging applies LOG_LEVEL and picks a JSON formatter in production
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("⚠️  Unknown LOG_LEVEL %q, falling back to info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

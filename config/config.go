package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// Persistence.
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBName      string `mapstructure:"DB_NAME"`

	// Outbound email.
	SMTPServer         string        `mapstructure:"SMTP_SERVER"`
	SMTPPort           int           `mapstructure:"SMTP_PORT"`
	SMTPUser           string        `mapstructure:"SMTP_USER"`
	SMTPPassword       string        `mapstructure:"SMTP_PASSWORD"`
	SMTPUseSSL         bool          `mapstructure:"SMTP_USE_SSL"`
	SMTPAllowPlaintext bool          `mapstructure:"SMTP_ALLOW_PLAINTEXT"`
	SMTPTimeout        time.Duration `mapstructure:"SMTP_TIMEOUT"`
	BusinessEmail      string        `mapstructure:"BUSINESS_EMAIL"`

	// Redis slot cache. Empty address disables it.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	SlotCacheTTL  time.Duration `mapstructure:"SLOT_CACHE_TTL"`

	// Listing endpoints require an admin token when set.
	AdminJWTSecret string `mapstructure:"ADMIN_JWT_SECRET"`
}

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

var defaults = map[string]any{
	"APP_PORT":             "8080",
	"ENV":                  "development",
	"LOG_LEVEL":            "info",
	"MAX_REQUESTS_PER_MIN": 100,
	"CORS_ORIGINS":         "*",
	"STORE_DRIVER":         StoreMongo,
	"DATABASE_URL":         "mongodb://localhost:27017",
	"DB_NAME":              "ingcap",
	"SMTP_SERVER":          "smtp.gmail.com",
	"SMTP_PORT":            587,
	"SMTP_USER":            "",
	"SMTP_PASSWORD":        "",
	"SMTP_USE_SSL":         false,
	"SMTP_ALLOW_PLAINTEXT": false,
	"SMTP_TIMEOUT":         "10s",
	"BUSINESS_EMAIL":       "appointment@ingcap.co.uk",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_CACHE_DB":       0,
	"SLOT_CACHE_TTL":       "1m",
	"ADMIN_JWT_SECRET":     "",
}

// LoadConfig reads config.yaml (if any) from the current and "config" directory and
// overlays environment variables on top of the defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: expected %q or %q", c.StoreDriver, StoreMongo, StoreMemory)
	}
	if c.SMTPPort <= 0 {
		return fmt.Errorf("invalid SMTP_PORT %d", c.SMTPPort)
	}
	if c.MaxRequestsPerMin <= 0 {
		return fmt.Errorf("invalid MAX_REQUESTS_PER_MIN %d", c.MaxRequestsPerMin)
	}
	if strings.TrimSpace(c.BusinessEmail) == "" {
		return fmt.Errorf("BUSINESS_EMAIL is required")
	}
	return nil
}

// IsProduction checks if the environment is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigins splits CORS_ORIGINS into a list. An empty value allows every origin.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

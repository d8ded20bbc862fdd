package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset. It is refused with a
// persistent store.
const DevJWTSecret = "change-me-in-production"

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	StoreMode      string        `env:"STORE_MODE" envDefault:"memory"`
	MongoURI       string        `env:"MONGO_URI"`
	MongoDB        string        `env:"MONGO_DB" envDefault:"shopframe"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"72h"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SiteCacheTTL   time.Duration `env:"SITE_CACHE_TTL" envDefault:"1m"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"5s"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	Log LogConfig `envPrefix:"LOG_"`
}

// LogConfig is consumed by the logger package.
type LogConfig struct {
	Level        string `env:"LEVEL" envDefault:"info"`
	Format       string `env:"FORMAT" envDefault:"text"`
	Output       string `env:"OUTPUT" envDefault:"stdout"`
	Path         string `env:"PATH" envDefault:"./logs"`
	File         string `env:"FILE" envDefault:"app.log"`
	MaxSize      int    `env:"MAX_SIZE" envDefault:"100"`
	MaxBackups   int    `env:"MAX_BACKUPS" envDefault:"7"`
	MaxAge       int    `env:"MAX_AGE" envDefault:"7"`
	Compress     bool   `env:"COMPRESS" envDefault:"true"`
	ReportCaller bool   `env:"REPORT_CALLER" envDefault:"true"`
}

// LoadConfig reads the environment, with .env values when the file exists.
func LoadConfig() (*Config, error) {
	// .env is only present in local development
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("error loading .env file:", err)
		} else {
			log.Println(".env file loaded")
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes the store mode and checks the settings it depends on.
func (c *Config) Validate() error {
	c.StoreMode = strings.ToLower(strings.TrimSpace(c.StoreMode))
	switch c.StoreMode {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_MODE=%s", StoreMongo)
		}
		if c.JWTSecret == DevJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set when STORE_MODE=%s", StoreMongo)
		}
	default:
		return fmt.Errorf("unknown STORE_MODE %q", c.StoreMode)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

package config

import (
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"marnie-pos/internal/database"
)

const envPrefix = "POS"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPAddr        string          `envconfig:"HTTP_ADDR" default:":8080"`
	GinMode         string          `envconfig:"GIN_MODE" default:"release"`
	LogLevel        string          `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string          `envconfig:"LOG_FORMAT" default:"json"`
	Storage         string          `envconfig:"STORAGE" default:"memory"`
	CORSOrigins     []string        `envconfig:"CORS_ORIGINS" default:"*"`
	StaticDir       string          `envconfig:"STATIC_DIR"`
	TemplateDir     string          `envconfig:"TEMPLATE_DIR"`
	StatsInterval   time.Duration   `envconfig:"STATS_LOG_INTERVAL" default:"0s"`
	ShutdownTimeout time.Duration   `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	DB              database.Config `envconfig:"DB"`
}

// Load reads POS_* variables; a .env file in the working directory is
// applied first.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return errors.Errorf("unknown storage %q, expected %q or %q", c.Storage, StorageMemory, StoragePostgres)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

// ConfigureLogger applies the level and format to the standard logrus logger.
func (c *Config) ConfigureLogger() {
	if c.LogFormat == "text" {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&log.JSONFormatter{})
	}
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort                string
	DBDriver                string
	DatabaseURL             string
	DBMaxOpenConns          int
	DBMaxIdleConns          int
	DBConnMaxIdle           time.Duration
	DBConnMaxLife           time.Duration
	DBAutoMigrate           bool
	JWTSecret               string
	RedisURL                string
	RabbitMQURL             string
	RabbitMQQueue           string
	CloudinaryURL           string
	CloudinaryFolder        string
	RequestTimeout          time.Duration
	SessionCleanupSpec      string
	LogLevel                string
	LogFormat               string
	LoginRateLimitPerMin    int
	RegisterRateLimitPerMin int
}

var defaults = map[string]any{
	"HTTP_PORT":                   "8080",
	"DB_DRIVER":                   "postgres",
	"DB_MAX_OPEN_CONNS":           25,
	"DB_MAX_IDLE_CONNS":           10,
	"DB_CONN_MAX_IDLE":            5 * time.Minute,
	"DB_CONN_MAX_LIFE":            30 * time.Minute,
	"DB_AUTO_MIGRATE":             true,
	"RABBITMQ_QUEUE":              "jobboard.events",
	"CLOUDINARY_FOLDER":           "jobboard/students_cvs",
	"REQUEST_TIMEOUT":             10 * time.Second,
	"SESSION_CLEANUP_SPEC":        "@every 1h",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
	"LOGIN_RATE_LIMIT_PER_MIN":    20,
	"REGISTER_RATE_LIMIT_PER_MIN": 10,
}

// Load reads an optional .env file, an optional config.yaml and the process
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range []string{"DATABASE_URL", "JWT_SECRET", "REDIS_URL", "RABBITMQ_URL", "CLOUDINARY_URL"} {
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTPPort:                v.GetString("HTTP_PORT"),
		DBDriver:                strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DatabaseURL:             v.GetString("DATABASE_URL"),
		DBMaxOpenConns:          v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:          v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxIdle:           v.GetDuration("DB_CONN_MAX_IDLE"),
		DBConnMaxLife:           v.GetDuration("DB_CONN_MAX_LIFE"),
		DBAutoMigrate:           v.GetBool("DB_AUTO_MIGRATE"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		RedisURL:                v.GetString("REDIS_URL"),
		RabbitMQURL:             v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:           v.GetString("RABBITMQ_QUEUE"),
		CloudinaryURL:           v.GetString("CLOUDINARY_URL"),
		CloudinaryFolder:        v.GetString("CLOUDINARY_FOLDER"),
		RequestTimeout:          v.GetDuration("REQUEST_TIMEOUT"),
		SessionCleanupSpec:      v.GetString("SESSION_CLEANUP_SPEC"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		LogFormat:               v.GetString("LOG_FORMAT"),
		LoginRateLimitPerMin:    v.GetInt("LOGIN_RATE_LIMIT_PER_MIN"),
		RegisterRateLimitPerMin: v.GetInt("REGISTER_RATE_LIMIT_PER_MIN"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "postgres", "pgx", "mysql":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres, pgx or mysql, got %q", c.DBDriver)
	}
	return nil
}

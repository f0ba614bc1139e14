package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultEnvFile = ".env"

type Config struct {
	Port        int
	CORSOrigins string
	LogLevel    string
	LogPretty   bool
	Debug       bool
	DB          DBConfig
}

type DBConfig struct {
	// URL, when set, is used as is and the individual parts are ignored.
	URL             string
	Host            string
	Port            string
	Database        string
	Username        string
	Password        string
	Schema          string
	MaxConns        int
	ConnMaxLifetime time.Duration
}

// DSN returns the connection string handed to the pgx driver.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   c.Database,
	}
	q := url.Values{}
	q.Set("sslmode", "disable")
	if c.Schema != "" {
		q.Set("search_path", c.Schema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Load reads envFile into the process environment (a missing default .env is
// not an error) and builds the configuration from NOTEFUL_* variables.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if !(envFile == DefaultEnvFile && errors.Is(err, fs.ErrNotExist)) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	var (
		cfg Config
		err error
	)
	if cfg.Port, err = intEnv("PORT", 8080); err != nil {
		return Config{}, err
	}
	cfg.CORSOrigins = getEnv("NOTEFUL_CORS_ORIGINS", "*")
	cfg.LogLevel = getEnv("NOTEFUL_LOG_LEVEL", "info")
	if cfg.LogPretty, err = boolEnv("NOTEFUL_LOG_PRETTY", false); err != nil {
		return Config{}, err
	}
	if cfg.Debug, err = boolEnv("NOTEFUL_DEBUG", false); err != nil {
		return Config{}, err
	}

	cfg.DB = DBConfig{
		URL:      os.Getenv("NOTEFUL_DB_URL"),
		Host:     getEnv("NOTEFUL_DB_HOST", "localhost"),
		Port:     getEnv("NOTEFUL_DB_PORT", "5432"),
		Database: getEnv("NOTEFUL_DB_DATABASE", "noteful"),
		Username: getEnv("NOTEFUL_DB_USERNAME", "postgres"),
		Password: getEnv("NOTEFUL_DB_PASSWORD", "postgres"),
		Schema:   getEnv("NOTEFUL_DB_SCHEMA", "public"),
	}
	if cfg.DB.MaxConns, err = intEnv("NOTEFUL_DB_MAX_CONNS", 10); err != nil {
		return Config{}, err
	}
	if cfg.DB.ConnMaxLifetime, err = durationEnv("NOTEFUL_DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the complete application configuration.
type Config struct {
	Port       string
	MySQLUser  string
	MySQLPwd   string
	MySQLHost  string
	MySQLDB    string
	JWTSecret  string
	SessionTTL time.Duration
	UploadDir  string
	PageSize   int
}

// Load reads a .env file if present, then environment variables,
// falling back to development defaults.
func Load() *Config {
	// Silent failure if no .env exists, which is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Port:       "8080",
		MySQLUser:  "user",
		MySQLPwd:   "password",
		MySQLHost:  "tcp(127.0.0.1:3306)",
		MySQLDB:    "marketplace_db",
		JWTSecret:  "dev-secret-change-me",
		SessionTTL: 24 * time.Hour,
		UploadDir:  "static/images",
		PageSize:   12,
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("MYSQL_USER"); v != "" {
		cfg.MySQLUser = v
	}
	if v := os.Getenv("MYSQL_PWD"); v != "" {
		cfg.MySQLPwd = v
	}
	if v := os.Getenv("MYSQL_HOST"); v != "" {
		cfg.MySQLHost = v
	}
	if v := os.Getenv("MYSQL_DATABASE"); v != "" {
		cfg.MySQLDB = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.SessionTTL = time.Duration(hours) * time.Hour
		}
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}

	return cfg
}

// DSN builds the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@%s/%s?parseTime=true&loc=Local", c.MySQLUser, c.MySQLPwd, c.MySQLHost, c.MySQLDB)
}

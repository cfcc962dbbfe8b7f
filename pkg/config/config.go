package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anonto42/inkpost/backend/pkg/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// development-only signing key, rejected in any other environment
const devJWTSecret = "supersecretjwtkey"

type Config struct {
	Port                    string        `yaml:"port"`
	Env                     string        `yaml:"env"`
	PostgresConnStr         string        `yaml:"postgres_conn_str"`
	JWTSecret               string        `yaml:"jwt_secret"`
	JWTTTL                  time.Duration `yaml:"jwt_ttl"`
	FirebaseCredentialsPath string        `yaml:"firebase_credentials_path"`
	CORSAllowedOrigins      []string      `yaml:"cors_allowed_origins"`
}

// Load builds the configuration from defaults, an optional YAML file and
// finally the environment (including a .env file), in increasing priority.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:               "8080",
		Env:                "development",
		JWTTTL:             72 * time.Hour,
		CORSAllowedOrigins: []string{"*"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil {
		logger.Info.Println("No .env file found, assuming environment variables are set.")
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.PostgresConnStr = getEnv("POSTGRES_CONN_STR", cfg.PostgresConnStr)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.FirebaseCredentialsPath = getEnv("FIREBASE_CREDENTIALS_PATH", cfg.FirebaseCredentialsPath)

	if ttl := os.Getenv("JWT_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL %q: %w", ttl, err)
		}
		cfg.JWTTTL = d
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = splitList(origins)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET environment variable not set")
		}
		logger.Warn.Println("JWT_SECRET not set, using the development signing key")
		c.JWTSecret = devJWTSecret
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %s", c.JWTTTL)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

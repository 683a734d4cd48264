package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Afrawles/taskdash/internal/tasks"
	"github.com/joho/godotenv"
)

type Config struct {
	API    APIConfig
	Output OutputConfig
	Log    LogConfig
}

type APIConfig struct {
	BaseURL       string
	Token         string
	TokenFile     string
	UserID        string
	Timeout       time.Duration
	RatePerSecond float64
	Retries       int
}

type OutputConfig struct {
	Directory string
	Format    []string // json, html, csv, xlsx
}

type LogConfig struct {
	Level string
	JSON  bool
}

// LoadFromEnv reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it.
func LoadFromEnv(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	timeout, err := time.ParseDuration(getEnvOrDefault("TASKDASH_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TASKDASH_TIMEOUT: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnvOrDefault("TASKDASH_RATE", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TASKDASH_RATE: %w", err)
	}
	retries, err := strconv.Atoi(getEnvOrDefault("TASKDASH_RETRIES", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid TASKDASH_RETRIES: %w", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:       getEnvOrDefault("TASKDASH_API_URL", "http://localhost:8080"),
			Token:         os.Getenv("TASKDASH_TOKEN"),
			TokenFile:     os.Getenv("TASKDASH_TOKEN_FILE"),
			UserID:        os.Getenv("TASKDASH_USER_ID"),
			Timeout:       timeout,
			RatePerSecond: rps,
			Retries:       retries,
		},
		Output: OutputConfig{
			Directory: getEnvOrDefault("TASKDASH_OUTPUT_DIR", "reports"),
			Format:    ParseList(getEnvOrDefault("TASKDASH_OUTPUT_FORMAT", "json,html")),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("TASKDASH_LOG_LEVEL", "info"),
			JSON:  getEnvOrDefault("TASKDASH_LOG_JSON", "false") == "true",
		},
	}

	return cfg, nil
}

// Session resolves the bearer token, reading the token file when no token
// was given directly.
func (c *Config) Session() (tasks.Session, error) {
	token := strings.TrimSpace(c.API.Token)
	if token == "" && c.API.TokenFile != "" {
		data, err := os.ReadFile(c.API.TokenFile)
		if err != nil {
			return tasks.Session{}, fmt.Errorf("failed to read token file: %w", err)
		}
		token = strings.TrimSpace(string(data))
	}
	return tasks.Session{UserID: c.API.UserID, Token: token}, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("TASKDASH_API_URL is required")
	}
	if c.API.UserID == "" {
		return fmt.Errorf("user id missing (set TASKDASH_USER_ID or --user-id)")
	}
	if c.API.Token == "" && c.API.TokenFile == "" {
		return fmt.Errorf("no token configured (set TASKDASH_TOKEN or TASKDASH_TOKEN_FILE)")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	for _, f := range c.Output.Format {
		switch f {
		case "json", "html", "csv", "xlsx":
		default:
			return fmt.Errorf("unknown output format %q", f)
		}
	}
	return nil
}

// ParseList splits a comma-separated value and drops empty entries.
func ParseList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

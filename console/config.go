package console

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the default console configuration location.
const DefaultConfigPath = "posadmin.yml"

// Config is the console configuration.
type Config struct {
	// APIBaseURL is the backend base URL.
	APIBaseURL string `yaml:"api_base_url"`

	// CompanyID is the tenant scope; zero enables the superadmin view
	// across all companies (supplier management then stays disabled).
	CompanyID int64 `yaml:"company_id"`

	// Token is the bearer token attached to every request.
	Token string `yaml:"token"`

	// PageSize is the requested collection page size.
	// Default: 10
	PageSize int `yaml:"page_size"`

	// LogFile is where structured logs are written; the TUI owns the
	// terminal, so logs never go to stdout.
	// Default: posadmin.log
	LogFile string `yaml:"log_file"`
}

// LoadConfig reads the YAML configuration from path, overlays values
// from a .env file (if present) and the environment, validates, and
// applies defaults.
//
// Environment overrides: POSADMIN_API_URL, POSADMIN_COMPANY_ID,
// POSADMIN_TOKEN.
func LoadConfig(path string) (*Config, error) {
	// Best effort: a missing .env is not an error.
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file: configuration comes entirely from the environment.
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if v := os.Getenv("POSADMIN_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("POSADMIN_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("POSADMIN_COMPANY_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("POSADMIN_COMPANY_ID is not a number: %w", err)
		}
		cfg.CompanyID = id
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration and applies defaults.
func (c *Config) Validate() error {
	url := strings.TrimSpace(c.APIBaseURL)
	if url == "" {
		return fmt.Errorf("api_base_url cannot be empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("api_base_url must start with http:// or https://")
	}
	c.APIBaseURL = strings.TrimSuffix(url, "/")

	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if c.CompanyID < 0 {
		return fmt.Errorf("company_id cannot be negative")
	}

	if c.PageSize == 0 {
		c.PageSize = 10
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100, got %d", c.PageSize)
	}

	if c.LogFile == "" {
		c.LogFile = "posadmin.log"
	}

	return nil
}

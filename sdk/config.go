package sdk

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ClientConfig contains the configuration for creating a new SDK client.
// The company scope and token are passed in explicitly at construction;
// the client never reads ambient global state.
type ClientConfig struct {
	// BaseURL is the backend base URL (e.g., "https://api.example.com").
	BaseURL string

	// CompanyID is the tenant scope for all scoped operations.
	// Zero means unscoped (superadmin view across all companies);
	// supplier operations require a nonzero scope.
	CompanyID int64

	// Token is the bearer token attached to every request.
	Token string

	// HTTPClient is the HTTP client to use for requests.
	// Optional: if nil, a default client with reasonable timeouts is created.
	HTTPClient *http.Client

	// Timeout is the HTTP request timeout.
	// Default: 30 seconds
	Timeout time.Duration
}

// Validate checks if the client configuration is valid and sets defaults.
func (c *ClientConfig) Validate() error {
	url := strings.TrimSpace(c.BaseURL)
	if url == "" {
		return fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	url = strings.TrimSuffix(url, "/")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%w: base URL must start with http:// or https://", ErrInvalidConfig)
	}
	c.BaseURL = url

	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidConfig)
	}

	if c.CompanyID < 0 {
		return fmt.Errorf("%w: company ID cannot be negative", ErrInvalidConfig)
	}

	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return nil
}

// Scoped returns true if the client is bound to a single company.
func (c *ClientConfig) Scoped() bool {
	return c.CompanyID != 0
}

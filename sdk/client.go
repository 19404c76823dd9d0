package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Client is the SDK client for the back-office admin API. It maps domain
// operations (users, roles, suppliers) onto REST calls and translates HTTP
// failures into the sentinel errors defined in errors.go. It holds no
// collection state; callers own pagination and refresh logic.
type Client struct {
	// BaseURL is the backend base URL without a trailing slash.
	BaseURL string

	// CompanyID is the tenant scope; zero means unscoped (superadmin).
	CompanyID int64

	// Token is the bearer token attached to every request.
	Token string

	// HTTPClient is the HTTP client used for requests.
	HTTPClient *http.Client
}

// NewClient creates a new SDK client with the given configuration.
func NewClient(config ClientConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		BaseURL:    config.BaseURL,
		CompanyID:  config.CompanyID,
		Token:      config.Token,
		HTTPClient: config.HTTPClient,
	}, nil
}

// Scoped returns true if the client is bound to a single company.
func (c *Client) Scoped() bool {
	return c.CompanyID != 0
}

// requireScope returns ErrMissingScope when the client is unscoped.
// Supplier endpoints are nested under /empresas/{id} and cannot be
// called without a company.
func (c *Client) requireScope() error {
	if !c.Scoped() {
		return ErrMissingScope
	}
	return nil
}

// doRequest performs an HTTP request against the backend.
// Query parameters with empty values must be filtered by the caller;
// the method sends exactly what it is given.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	fullURL := c.BaseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	return resp, nil
}

// doJSONRequest performs a request with an optional JSON body, classifies
// the response status, and parses the JSON response into respBody when a
// destination is provided.
func (c *Client) doJSONRequest(ctx context.Context, method, path string, query url.Values, reqBody, respBody interface{}) error {
	var body io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	resp, err := c.doRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classifyError(resp)
	}

	if respBody != nil {
		return c.parseJSONResponse(resp, respBody)
	}

	drainAndCloseBody(resp)
	return nil
}

// classifyError maps a non-2xx response to the SDK error taxonomy.
// 400 -> ErrValidation, 401/403 -> ErrAuth, 404 -> ErrNotFound,
// 409 -> ErrConflict; anything else becomes an *APIError carrying the
// server-supplied message.
func (c *Client) classifyError(resp *http.Response) error {
	message := c.parseErrorMessage(resp)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrValidation, message)
		}
		return ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrConflict, message)
		}
		return ErrConflict
	default:
		return &APIError{Status: resp.StatusCode, Message: message}
	}
}

// parseErrorMessage extracts the server-supplied error message, if any.
// The backend uses either {"error": "..."} or {"message": "..."}.
func (c *Client) parseErrorMessage(resp *http.Response) string {
	defer drainAndCloseBody(resp)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}

	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// parseJSONResponse parses a JSON response body into the provided destination.
func (c *Client) parseJSONResponse(resp *http.Response, dest interface{}) error {
	defer drainAndCloseBody(resp)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}

// drainAndCloseBody reads and closes the response body to ensure connection reuse.
func drainAndCloseBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}

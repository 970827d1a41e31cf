// Package backend is the HTTP/JSON client for the external store backend.
// Every cart, order, product, and credential operation the gateway performs
// ends up here; callers pass the session's bearer token explicitly.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ev-storefront/internal/shared/logger"

	"github.com/caarlos0/env/v6"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	contentTypeJSON     = "application/json"
)

// Config holds the backend connection settings.
type Config struct {
	BaseURL string        `env:"BACKEND_BASE_URL" envDefault:"http://localhost:8000/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads backend connection settings from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load backend configuration: %w", err)
	}
	return cfg, nil
}

// Client talks to the store backend. It is stateless and safe for concurrent
// use; authentication rides on the per-call bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a backend client from config.
func NewClient(cfg *Config, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: log.WithComponent("backend"),
	}
}

// envelope is the backend's standard JSON wrapper.
type envelope struct {
	Success      *bool           `json:"success,omitempty"`
	Message      string          `json:"message,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
	DeletedItems int             `json:"deleted_items,omitempty"`
}

// doRequest performs an HTTP request and decodes the response. The backend
// wraps most payloads in {success, message?, data?}; some listing endpoints
// return the payload bare, so decoding falls back to the whole body.
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result interface{}) (*envelope, error) {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}
	if strings.Contains(path, "?") {
		reqURL = c.baseURL + path
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headerAccept, contentTypeJSON)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	if len(respBody) == 0 {
		return &envelope{}, nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		// Bare payload without the wrapper.
		if result != nil {
			if err := json.Unmarshal(respBody, result); err != nil {
				return nil, fmt.Errorf("failed to parse response: %w", err)
			}
		}
		return &envelope{}, nil
	}

	if env.Success != nil && !*env.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(env.Message),
		}
	}

	if result != nil {
		payload := respBody
		if len(env.Data) > 0 {
			payload = env.Data
		}
		if err := json.Unmarshal(payload, result); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return &env, nil
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path, token string, result interface{}) (*envelope, error) {
	return c.doRequest(ctx, http.MethodGet, path, token, nil, result)
}

// post performs a POST request.
func (c *Client) post(ctx context.Context, path, token string, body, result interface{}) (*envelope, error) {
	return c.doRequest(ctx, http.MethodPost, path, token, body, result)
}

// put performs a PUT request.
func (c *Client) put(ctx context.Context, path, token string, body, result interface{}) (*envelope, error) {
	return c.doRequest(ctx, http.MethodPut, path, token, body, result)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path, token string, result interface{}) (*envelope, error) {
	return c.doRequest(ctx, http.MethodDelete, path, token, nil, result)
}

// Ping performs an unauthenticated reachability probe for health checks.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/products?per_page=1", "", nil)
	return err
}

package connection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/simple-redis/internal/infra/buildinfo"
	"github.com/yndnr/simple-redis/internal/server/httpserver/handler"
)

// DefaultAdminServer is the default admin endpoint address.
const DefaultAdminServer = "127.0.0.1:7891"

// AdminClient talks to the server's HTTP admin endpoint.
type AdminClient struct {
	baseURL string
	client  *http.Client
}

// NewAdminClient creates an admin client. server may omit the scheme.
func NewAdminClient(server string, timeout time.Duration) *AdminClient {
	baseURL := server
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &AdminClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the base URL of the client.
func (c *AdminClient) BaseURL() string {
	return c.baseURL
}

// Health fetches GET /healthz.
func (c *AdminClient) Health(ctx context.Context) (*handler.HealthResponse, error) {
	var out handler.HealthResponse
	if err := c.get(ctx, "/healthz", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Version fetches GET /version.
func (c *AdminClient) Version(ctx context.Context) (*buildinfo.Info, error) {
	var out buildinfo.Info
	if err := c.get(ctx, "/version", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get performs a GET request and decodes the envelope's data into target.
func (c *AdminClient) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "simple-redis-cli/"+buildinfo.Version)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		return fmt.Errorf("parse response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("[%s] %s", env.Code, env.Message)
	}
	if target != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return fmt.Errorf("parse response data: %w", err)
		}
	}
	return nil
}

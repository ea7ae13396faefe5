package connection

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/simple-redis/internal/server/httpserver"
	"github.com/yndnr/simple-redis/internal/telemetry/logger"
)

type staticCount int

func (n staticCount) Len() int               { return int(n) }
func (n staticCount) ActiveConnections() int { return int(n) }

func startAdmin(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(httpserver.NewRouter(&httpserver.RouterConfig{
		Keyspace:    staticCount(3),
		Connections: staticCount(1),
		Logger:      logger.Discard(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewAdminClient_BaseURL(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"127.0.0.1:7891", "http://127.0.0.1:7891"},
		{"http://localhost:7891/", "http://localhost:7891"},
		{"https://admin.example.com", "https://admin.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.server, func(t *testing.T) {
			if got := NewAdminClient(tt.server, 0).BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAdminClient_Health(t *testing.T) {
	srv := startAdmin(t)
	c := NewAdminClient(srv.URL, time.Second)

	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if h.Status != "healthy" || h.Keys != 3 || h.Connections != 1 {
		t.Errorf("Health() = %+v", h)
	}
}

func TestAdminClient_Version(t *testing.T) {
	srv := startAdmin(t)
	c := NewAdminClient(srv.URL, time.Second)

	v, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if v.Version == "" || v.GoVersion == "" {
		t.Errorf("Version() = %+v", v)
	}
}

func TestAdminClient_NotFound(t *testing.T) {
	srv := startAdmin(t)
	c := NewAdminClient(srv.URL, time.Second)

	err := c.get(context.Background(), "/nope", nil)
	if err == nil || !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("get(/nope) error = %v, want NOT_FOUND", err)
	}
}

func TestAdminClient_Unreachable(t *testing.T) {
	srv := startAdmin(t)
	url := srv.URL
	srv.Close()

	if _, err := NewAdminClient(url, time.Second).Health(context.Background()); err == nil {
		t.Error("Health() should fail when the server is down")
	}
}

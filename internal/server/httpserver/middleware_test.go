package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yndnr/simple-redis/internal/telemetry/logger"
)

func bufferLogger(t *testing.T) (logger.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := logger.New(logger.Config{Level: "debug", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}
	return l, &buf
}

// TestRequestID tests the RequestID middleware.
func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
		if seen == "" {
			t.Error("expected request ID in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("generates request ID when not provided", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		requestID := rec.Header().Get("X-Request-ID")
		if !strings.HasPrefix(requestID, "req-") {
			t.Errorf("expected request ID to start with 'req-', got %s", requestID)
		}
		if len(requestID) != len("req-")+26 {
			t.Errorf("expected a ULID suffix, got %s", requestID)
		}
		if seen != requestID {
			t.Errorf("context ID %q != header ID %q", seen, requestID)
		}
	})

	t.Run("preserves existing request ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Request-ID", "existing-id-123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != "existing-id-123" {
			t.Errorf("expected 'existing-id-123', got %s", got)
		}
	})

	t.Run("IDs are unique", func(t *testing.T) {
		ids := make(map[string]bool)
		for i := 0; i < 100; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))
			id := rec.Header().Get("X-Request-ID")
			if ids[id] {
				t.Fatalf("duplicate request ID %s", id)
			}
			ids[id] = true
		}
	})
}

// TestChain tests middleware chaining.
func TestChain(t *testing.T) {
	var order []int

	mark := func(n int) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, n)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, 4)
			w.WriteHeader(http.StatusOK)
		}),
		mark(1), mark(2), mark(3),
	)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/test", nil))

	expected := []int{1, 2, 3, 4}
	if len(order) != len(expected) {
		t.Fatalf("expected %d calls, got %d", len(expected), len(order))
	}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d] = %d, got %d", i, v, order[i])
		}
	}
}

// TestRecover tests the Recover middleware.
func TestRecover(t *testing.T) {
	l, buf := bufferLogger(t)

	t.Run("recovers from panic", func(t *testing.T) {
		handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			panic("test panic")
		}), WithLogger(l), Recover())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
		if rec.Header().Get("X-Error-Code") != "INTERNAL" {
			t.Errorf("X-Error-Code = %q", rec.Header().Get("X-Error-Code"))
		}
		if !strings.Contains(buf.String(), "panic recovered") {
			t.Errorf("expected panic log, got: %s", buf.String())
		}
	})

	t.Run("passes through normal requests", func(t *testing.T) {
		handler := Recover()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})
}

// TestAccessLog tests request logging by status class.
func TestAccessLog(t *testing.T) {
	l, buf := bufferLogger(t)

	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"success", http.StatusOK, "request completed"},
		{"client error", http.StatusBadRequest, "request completed with client error"},
		{"server error", http.StatusInternalServerError, "request completed with error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}), WithLogger(l), RequestID(), AccessLog())

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("X-Request-ID", "test-req-123")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in log, got: %s", tt.want, out)
			}
			if !strings.Contains(out, "request_id=test-req-123") {
				t.Errorf("expected request_id in log, got: %s", out)
			}
		})
	}
}

// TestGetClientIP tests client IP extraction.
func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"X-Forwarded-For", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "192.168.1.1:12345", "10.0.0.1"},
		{"X-Real-IP", map[string]string{"X-Real-IP": "10.0.0.1"}, "192.168.1.1:12345", "10.0.0.1"},
		{"RemoteAddr", nil, "192.168.1.1:12345", "192.168.1.1"},
		{"IPv6 RemoteAddr", nil, "[::1]:8080", "::1"},
		{"RemoteAddr without port", nil, "192.168.1.1", "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			req.RemoteAddr = tt.remote

			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestResponseWriter tests the responseWriter wrapper.
func TestResponseWriter(t *testing.T) {
	t.Run("captures status code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		wrapped := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

		wrapped.WriteHeader(http.StatusCreated)

		if wrapped.statusCode != http.StatusCreated {
			t.Errorf("expected status 201, got %d", wrapped.statusCode)
		}
		if rec.Code != http.StatusCreated {
			t.Errorf("underlying recorder got %d", rec.Code)
		}
	})

	t.Run("unwraps", func(t *testing.T) {
		rec := httptest.NewRecorder()
		wrapped := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}
		if wrapped.Unwrap() != rec {
			t.Error("Unwrap() did not return the wrapped writer")
		}
	})
}

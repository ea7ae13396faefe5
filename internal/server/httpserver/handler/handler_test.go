package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yndnr/simple-redis/internal/infra/buildinfo"
	"github.com/yndnr/simple-redis/internal/telemetry/logger"
)

type fakeKeyspace int

func (k fakeKeyspace) Len() int { return int(k) }

type fakeConns int

func (c fakeConns) ActiveConnections() int { return int(c) }

func testHandler() *Handler {
	return New(fakeKeyspace(42), fakeConns(3), logger.Discard())
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHandler_Health(t *testing.T) {
	h := testHandler()

	t.Run("GET /healthz returns healthy status", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/healthz", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		resp := decodeResponse(t, rec)
		if resp.Code != "OK" {
			t.Errorf("expected code 'OK', got '%s'", resp.Code)
		}

		data, ok := resp.Data.(map[string]any)
		if !ok {
			t.Fatal("expected data to be a map")
		}
		if data["status"] != "healthy" {
			t.Errorf("expected status 'healthy', got '%v'", data["status"])
		}
		if data["keys"] != float64(42) {
			t.Errorf("keys = %v, want 42", data["keys"])
		}
		if data["connections"] != float64(3) {
			t.Errorf("connections = %v, want 3", data["connections"])
		}
	})

	t.Run("nil sources report zero", func(t *testing.T) {
		h := New(nil, nil, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

		data := decodeResponse(t, rec).Data.(map[string]any)
		if data["keys"] != float64(0) || data["connections"] != float64(0) {
			t.Errorf("data = %v, want zero counts", data)
		}
	})

	t.Run("POST /healthz is not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("POST", "/healthz", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status 405, got %d", rec.Code)
		}
	})
}

func TestHandler_Version(t *testing.T) {
	h := testHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	data, ok := decodeResponse(t, rec).Data.(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}
	if data["version"] != buildinfo.Version {
		t.Errorf("version = %v, want %q", data["version"], buildinfo.Version)
	}
	if data["commit"] != buildinfo.Commit {
		t.Errorf("commit = %v, want %q", data["commit"], buildinfo.Commit)
	}
}

func TestHandler_NotFound(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest("GET", "/nope", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	rec := httptest.NewRecorder()
	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if rec.Header().Get("X-Error-Code") != "NOT_FOUND" {
		t.Errorf("X-Error-Code = %q", rec.Header().Get("X-Error-Code"))
	}
	resp := decodeResponse(t, rec)
	if resp.RequestID != "req-abc" {
		t.Errorf("request_id = %q, want header value", resp.RequestID)
	}
}

func TestHandler_RequestIDFromContext(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-ID", "from-header")
	req = req.WithContext(logger.WithRequestID(req.Context(), "from-context"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := decodeResponse(t, rec).RequestID; got != "from-context" {
		t.Errorf("request_id = %q, want %q", got, "from-context")
	}
}

func TestResponse_Envelope(t *testing.T) {
	t.Run("success response has correct structure", func(t *testing.T) {
		data := map[string]string{"key": "value"}
		resp := NewResponse("req-123", data)

		if resp.Code != "OK" {
			t.Errorf("expected code 'OK', got '%s'", resp.Code)
		}
		if resp.Message != "Success" {
			t.Errorf("expected message 'Success', got '%s'", resp.Message)
		}
		if resp.RequestID != "req-123" {
			t.Errorf("expected request_id 'req-123', got '%s'", resp.RequestID)
		}
		if resp.Timestamp == 0 {
			t.Error("expected timestamp to be set")
		}
		if resp.Data == nil {
			t.Error("expected data to be set")
		}
	})

	t.Run("error response has correct structure", func(t *testing.T) {
		resp := NewErrorResponse("req-456", "NOT_FOUND", "error message", nil)

		if resp.Code != "NOT_FOUND" {
			t.Errorf("expected code 'NOT_FOUND', got '%s'", resp.Code)
		}
		if resp.Message != "error message" {
			t.Errorf("expected message 'error message', got '%s'", resp.Message)
		}
		if resp.RequestID != "req-456" {
			t.Errorf("expected request_id 'req-456', got '%s'", resp.RequestID)
		}
		if resp.Data != nil {
			t.Error("expected data to be nil for error response")
		}
	})
}

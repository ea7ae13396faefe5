package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yndnr/simple-redis/internal/telemetry/logger"
)

// Keyspace reports the number of keys held by the store.
type Keyspace interface {
	Len() int
}

// Connections reports the number of open client connections.
type Connections interface {
	ActiveConnections() int
}

// Handler serves the JSON admin routes.
type Handler struct {
	keys   Keyspace
	conns  Connections
	logger logger.Logger
	mux    *http.ServeMux
}

// New creates a Handler. Either source may be nil, in which case the
// corresponding count is reported as zero.
func New(keys Keyspace, conns Connections, l logger.Logger) *Handler {
	if l == nil {
		l = logger.Default()
	}
	h := &Handler{
		keys:   keys,
		conns:  conns,
		logger: l,
		mux:    http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /healthz", h.handleHealth)
	h.mux.HandleFunc("GET /version", h.handleVersion)
}

// NotFound replies with the standard error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.L(r.Context()).Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, nil)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}

// getRequestID prefers the ID stored by the RequestID middleware and falls
// back to the inbound header.
func getRequestID(r *http.Request) string {
	if id := logger.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}

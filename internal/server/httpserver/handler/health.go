package handler

import (
	"net/http"
	"time"
)

// handleHealth handles GET /healthz.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}
	if h.keys != nil {
		resp.Keys = h.keys.Len()
	}
	if h.conns != nil {
		resp.Connections = h.conns.ActiveConnections()
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

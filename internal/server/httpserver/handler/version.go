package handler

import (
	"net/http"

	"github.com/yndnr/simple-redis/internal/infra/buildinfo"
)

// handleVersion handles GET /version.
func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, buildinfo.Get())
}

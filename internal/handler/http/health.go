package http

import (
	"net/http"

	"github.com/MKhiriev/go-pos-sync/internal/utils"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.Ping(r.Context()), http.StatusOK)
}

// health answers 503 while the database is unreachable so load balancers can
// take the instance out of rotation.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response := h.services.AppInfoService.Health(r.Context())

	status := http.StatusOK
	if !response.Success {
		status = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, response, status)
}

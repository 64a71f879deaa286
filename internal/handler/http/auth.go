package http

import (
	"net"
	"net/http"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
)

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.AuthRequest
	if err := utils.DecodeJSON(r.Body, &request); err != nil {
		log.Err(err).Str("func", "*Handler.authenticate").Msg("invalid JSON was passed")
		writeServiceError(w, ErrInvalidBody)
		return
	}

	if request.IP == "" {
		request.IP = remoteIP(r)
	}

	response, err := h.services.AuthService.Authenticate(ctx, request)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusUnauthorized {
			// unauthorized terminals get the full body with authorized=false
			utils.WriteJSON(w, response, status)
			return
		}
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

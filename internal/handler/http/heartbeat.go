package http

import (
	"net/http"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
)

func (h *Handler) heartbeat(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.HeartbeatRequest
	if err := utils.DecodeJSON(r.Body, &request); err != nil {
		log.Err(err).Str("func", "*Handler.heartbeat").Msg("invalid JSON was passed")
		writeServiceError(w, ErrInvalidBody)
		return
	}
	if err := bindTerminal(r, &request.TerminalID); err != nil {
		writeServiceError(w, err)
		return
	}

	response, err := h.services.HeartbeatService.Beat(r.Context(), request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
)

// getChanges serves POST /api/sync/cambios.
func (h *Handler) getChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ChangeRequest
	if err := utils.DecodeJSON(r.Body, &request); err != nil {
		log.Err(err).Str("func", "*Handler.getChanges").Msg("invalid JSON was passed")
		writeServiceError(w, ErrInvalidBody)
		return
	}
	if err := bindTerminal(r, &request.TerminalID); err != nil {
		writeServiceError(w, err)
		return
	}

	batch, err := h.services.ChangeFeedService.GetChanges(ctx, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getChanges").Msg("error reading change feed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, batch, http.StatusOK)
}

// receiveChanges serves POST /api/sync/recibir-cambios. A batch is either
// stored whole or rejected whole.
func (h *Handler) receiveChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.PushRequest
	if err := utils.DecodeJSON(r.Body, &request); err != nil {
		log.Err(err).Str("func", "*Handler.receiveChanges").Msg("invalid JSON was passed")
		writeServiceError(w, ErrInvalidBody)
		return
	}
	if err := bindTerminal(r, &request.TerminalID); err != nil {
		writeServiceError(w, err)
		return
	}

	response, err := h.services.IngestService.Ingest(ctx, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.receiveChanges").Int("entities", request.Len()).Msg("push batch failed")
		writeServiceError(w, err)
		return
	}

	log.Info().
		Int("processed", response.ProcessedCount).
		Int("duplicates", response.Duplicates).
		Msg("push batch stored")

	utils.WriteJSON(w, response, http.StatusOK)
}

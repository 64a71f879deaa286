// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

// ingestService is the concrete implementation of IngestService.
// It stamps the authenticated terminal onto every sale and delegates the
// transactional write to an IngestRepository.
type ingestService struct {
	ingestRepository store.IngestRepository
	logger           *logger.Logger
}

// NewIngestService constructs an IngestService backed by the given repository.
func NewIngestService(ingestRepository store.IngestRepository, logger *logger.Logger) IngestService {
	return &ingestService{
		ingestRepository: ingestRepository,
		logger:           logger,
	}
}

// Ingest stores the push batch in a single transaction.
//
// Entities already stored by an earlier push (or, for sales, by another
// terminal using the same ticket number) are skipped and reported as
// duplicates. Any storage failure rolls the whole batch back and is returned
// wrapped; store.ErrConcurrentIngest and store.ErrRetryable stay matchable
// with errors.Is.
func (s *ingestService) Ingest(ctx context.Context, request models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	for i := range request.Sales {
		if request.Sales[i].TerminalID == "" {
			request.Sales[i].TerminalID = request.TerminalID
		}
	}

	result, err := s.ingestRepository.Ingest(ctx, request)
	if err != nil {
		log.Err(err).Str("terminal_id", request.TerminalID).Int("entities", request.Len()).Msg("push batch rejected")
		return models.PushResponse{}, fmt.Errorf("push ingestion failed: %w", err)
	}

	for _, ticket := range result.DuplicateTickets {
		log.Info().Str("terminal_id", request.TerminalID).Str("ticket_number", ticket).Msg("duplicate ticket skipped")
	}

	duplicateTickets := result.DuplicateTickets
	if duplicateTickets == nil {
		duplicateTickets = []string{}
	}

	return models.PushResponse{
		Result:           models.OK(fmt.Sprintf("%d processed, %d duplicates", result.Processed(), result.Duplicates())),
		ProcessedCount:   result.Processed(),
		ErrorCount:       0,
		Errors:           []string{},
		Duplicates:       result.Duplicates(),
		DuplicateTickets: duplicateTickets,
	}, nil
}

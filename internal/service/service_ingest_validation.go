package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/validators"
	"github.com/MKhiriev/go-pos-sync/models"
)

type IngestValidationService struct {
	inner     IngestService
	validator validators.Validator
}

func NewIngestValidationService() IngestServiceWrapper {
	return &IngestValidationService{
		validator: validators.NewSyncValidator(),
	}
}

// Ingest rejects the whole batch when any entity in it is malformed, so that
// nothing from a bad batch is ever written.
func (v *IngestValidationService) Ingest(ctx context.Context, request models.PushRequest) (models.PushResponse, error) {
	// batch must contain:
	//  - the terminal id taken from the session token
	//  - at most MaxPushBatch entities
	//  - only well-formed sales, movements and events
	err := v.validator.Validate(ctx, request,
		validators.FieldTerminalID,
		validators.FieldBatchSize,
		validators.FieldSales,
		validators.FieldStockMovements,
		validators.FieldEvents,
	)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: push batch: %w", ErrValidation, err)
	}

	return v.inner.Ingest(ctx, request)
}

func (v *IngestValidationService) Wrap(wrapped IngestService) IngestService {
	v.inner = wrapped
	return v
}

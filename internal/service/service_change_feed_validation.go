package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/validators"
	"github.com/MKhiriev/go-pos-sync/models"
)

type ChangeFeedValidationService struct {
	inner     ChangeFeedService
	validator validators.Validator
}

func NewChangeFeedValidationService() ChangeFeedServiceWrapper {
	return &ChangeFeedValidationService{
		validator: validators.NewSyncValidator(),
	}
}

func (v *ChangeFeedValidationService) GetChanges(ctx context.Context, request models.ChangeRequest) (models.ChangeBatch, error) {
	if err := v.validator.Validate(ctx, request, validators.FieldTerminalID, validators.FieldWatermarks); err != nil {
		return models.ChangeBatch{}, fmt.Errorf("%w: change request: %w", ErrValidation, err)
	}

	return v.inner.GetChanges(ctx, request)
}

func (v *ChangeFeedValidationService) Wrap(wrapped ChangeFeedService) ChangeFeedService {
	v.inner = wrapped
	return v
}

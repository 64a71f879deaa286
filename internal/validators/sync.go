package validators

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/models"
)

// Field name constants used to scope validation to a subset of fields.
const (
	// FieldTerminalID targets the terminal identifier of a request.
	FieldTerminalID = "terminal_id"

	// FieldSharedKey targets the shared secret of an authentication request.
	FieldSharedKey = "shared_key"

	// FieldWatermarks targets lastSync and the per-type watermarks of a pull.
	FieldWatermarks = "watermarks"

	// FieldSales targets the sales of a push batch.
	FieldSales = "sales"

	// FieldStockMovements targets the stock movements of a push batch.
	FieldStockMovements = "stock_movements"

	// FieldEvents targets the terminal events of a push batch.
	FieldEvents = "events"

	// FieldBatchSize limits the number of entities in a push batch.
	FieldBatchSize = "batch_size"

	// FieldCounters targets the daily counters of a heartbeat.
	FieldCounters = "counters"
)

// MaxPushBatch is the largest number of entities accepted in one push.
const MaxPushBatch = 5000

// clockSkew is the tolerated difference between terminal and server clocks.
const clockSkew = 5 * time.Minute

var allowedMovementKinds = []string{
	models.MovementSale,
	models.MovementReturn,
	models.MovementAdjustment,
}

// SyncValidator implements [Validator] for the sync protocol requests:
// AuthRequest, ChangeRequest, PushRequest, HeartbeatRequest and the
// entities carried by a push (Sale, StockMovement, TerminalEvent).
type SyncValidator struct {
	now func() time.Time
}

// NewSyncValidator constructs a new SyncValidator and returns it as the
// Validator interface.
func NewSyncValidator() Validator {
	return &SyncValidator{now: time.Now}
}

// Validate dispatches validation to the type-specific method. Value and
// pointer forms are accepted for every supported type.
func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AuthRequest:
		return v.validateAuthRequest(ctx, value, fields...)
	case *models.AuthRequest:
		return v.validateAuthRequest(ctx, *value, fields...)

	case models.ChangeRequest:
		return v.validateChangeRequest(ctx, value, fields...)
	case *models.ChangeRequest:
		return v.validateChangeRequest(ctx, *value, fields...)

	case models.PushRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	case models.HeartbeatRequest:
		return v.validateHeartbeat(ctx, value, fields...)
	case *models.HeartbeatRequest:
		return v.validateHeartbeat(ctx, *value, fields...)

	case models.Sale:
		return v.validateSale(value)
	case *models.Sale:
		return v.validateSale(*value)

	case models.StockMovement:
		return v.validateMovement(value)
	case *models.StockMovement:
		return v.validateMovement(*value)

	case models.TerminalEvent:
		return v.validateEvent(value)
	case *models.TerminalEvent:
		return v.validateEvent(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncValidator) validateAuthRequest(_ context.Context, request models.AuthRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTerminalID, FieldSharedKey}
	}

	for _, f := range fields {
		switch f {
		case FieldTerminalID:
			if request.TerminalID == "" {
				return ErrInvalidTerminalID
			}
		case FieldSharedKey:
			if request.SharedKey == "" {
				return ErrEmptySharedKey
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateChangeRequest(_ context.Context, request models.ChangeRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldWatermarks}
	}

	for _, f := range fields {
		switch f {
		case FieldTerminalID:
			if request.TerminalID == "" {
				return ErrInvalidTerminalID
			}
		case FieldWatermarks:
			limit := v.now().Add(clockSkew)
			if request.LastSync.After(limit) {
				return ErrWatermarkInFuture
			}
			for entityType, mark := range request.Watermarks {
				if mark.After(limit) {
					return fmt.Errorf("%s: %w", entityType, ErrWatermarkInFuture)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validatePushRequest(_ context.Context, request models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBatchSize, FieldSales, FieldStockMovements, FieldEvents}
	}

	for _, f := range fields {
		switch f {
		case FieldTerminalID:
			if request.TerminalID == "" {
				return ErrInvalidTerminalID
			}
		case FieldBatchSize:
			if request.Len() > MaxPushBatch {
				return fmt.Errorf("%w: %d entities, limit %d", ErrBatchTooLarge, request.Len(), MaxPushBatch)
			}
		case FieldSales:
			for i, sale := range request.Sales {
				if err := v.validateSale(sale); err != nil {
					return fmt.Errorf("validation error at sales[%d]: %w", i, err)
				}
				if request.TerminalID != "" && sale.TerminalID != "" && sale.TerminalID != request.TerminalID {
					return fmt.Errorf("validation error at sales[%d]: %w", i, ErrTerminalIDMismatch)
				}
			}
		case FieldStockMovements:
			for i, movement := range request.StockMovements {
				if err := v.validateMovement(movement); err != nil {
					return fmt.Errorf("validation error at stockMovements[%d]: %w", i, err)
				}
			}
		case FieldEvents:
			for i, event := range request.Events {
				if err := v.validateEvent(event); err != nil {
					return fmt.Errorf("validation error at events[%d]: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateHeartbeat(_ context.Context, request models.HeartbeatRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCounters}
	}

	for _, f := range fields {
		switch f {
		case FieldTerminalID:
			if request.TerminalID == "" {
				return ErrInvalidTerminalID
			}
		case FieldCounters:
			if request.DailySalesCount < 0 || request.DailySalesTotal < 0 || request.PendingOutbox < 0 {
				return ErrNegativeCounter
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateSale(sale models.Sale) error {
	if sale.TicketNumber == "" {
		return ErrEmptyTicketNumber
	}
	if sale.SoldAt.IsZero() {
		return ErrEmptyTimestamp
	}
	if sale.Total < 0 || sale.Discount < 0 {
		return ErrInvalidAmount
	}
	if len(sale.Lines) == 0 {
		return ErrEmptySaleLines
	}

	for i, line := range sale.Lines {
		if (line.ProductID == nil) == (line.ServiceID == nil) {
			return fmt.Errorf("line %d: %w", i, ErrInvalidSaleLineItem)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("line %d: %w", i, ErrInvalidQuantity)
		}
		if line.UnitPrice < 0 || line.Subtotal < 0 {
			return fmt.Errorf("line %d: %w", i, ErrInvalidAmount)
		}
	}

	return nil
}

func (v *SyncValidator) validateMovement(movement models.StockMovement) error {
	if movement.IdempotencyKey == "" {
		return ErrEmptyIdempotencyKey
	}
	if movement.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if movement.Quantity == 0 {
		return ErrInvalidQuantity
	}
	if !isAllowedMovementKind(movement.Kind) {
		return ErrInvalidMovementKind
	}
	if movement.OccurredAt.IsZero() {
		return ErrEmptyTimestamp
	}
	return nil
}

func (v *SyncValidator) validateEvent(event models.TerminalEvent) error {
	if event.EventID == "" {
		return ErrEmptyEventID
	}
	if event.Kind == "" {
		return ErrEmptyEventKind
	}
	if event.OccurredAt.IsZero() {
		return ErrEmptyTimestamp
	}
	return nil
}

func isAllowedMovementKind(kind string) bool {
	for _, k := range allowedMovementKinds {
		if kind == k {
			return true
		}
	}
	return false
}

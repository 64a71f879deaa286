package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidTerminalID   = errors.New("invalid terminal id")
	ErrEmptySharedKey      = errors.New("shared key is required")
	ErrWatermarkInFuture   = errors.New("watermark is in the future")
	ErrBatchTooLarge       = errors.New("batch is too large")
	ErrEmptyTicketNumber   = errors.New("ticket number is required")
	ErrEmptySaleLines      = errors.New("sale must have at least one line")
	ErrInvalidSaleLineItem = errors.New("sale line must reference exactly one product or service")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyTimestamp      = errors.New("timestamp is required")
	ErrEmptyIdempotencyKey = errors.New("idempotency key is required")
	ErrInvalidProductID    = errors.New("invalid product id")
	ErrInvalidMovementKind = errors.New("invalid stock movement kind")
	ErrEmptyEventID        = errors.New("event id is required")
	ErrEmptyEventKind      = errors.New("event kind is required")
	ErrNegativeCounter     = errors.New("counter cannot be negative")
	ErrTerminalIDMismatch  = errors.New("terminal id does not match the batch")
)

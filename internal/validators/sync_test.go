// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-pos-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator() *SyncValidator {
	return &SyncValidator{now: func() time.Time { return fixedNow }}
}

func ptr(v int64) *int64 { return &v }

func validSale() models.Sale {
	return models.Sale{
		TicketNumber: "T-01-1001",
		TerminalID:   "T-01",
		Lines: []models.SaleLine{
			{ProductID: ptr(1), Quantity: 2, UnitPrice: 100, Subtotal: 200},
			{ServiceID: ptr(4), Quantity: 1, UnitPrice: 50, Subtotal: 50},
		},
		Total:  250,
		SoldAt: fixedNow,
	}
}

func validMovement() models.StockMovement {
	return models.StockMovement{
		IdempotencyKey: "mv-1",
		ProductID:      1,
		Quantity:       -2,
		Kind:           models.MovementSale,
		OccurredAt:     fixedNow,
	}
}

func validEvent() models.TerminalEvent {
	return models.TerminalEvent{EventID: "ev-1", Kind: models.EventShiftOpened, OccurredAt: fixedNow}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestNewSyncValidator(t *testing.T) {
	require.NotNil(t, NewSyncValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	sale := validSale()
	auth := models.AuthRequest{TerminalID: "T-01", SharedKey: "k"}

	assert.NoError(t, v.Validate(ctx, sale))
	assert.NoError(t, v.Validate(ctx, &sale))
	assert.NoError(t, v.Validate(ctx, auth))
	assert.NoError(t, v.Validate(ctx, &auth))
	assert.NoError(t, v.Validate(ctx, validMovement()))
	assert.NoError(t, v.Validate(ctx, validEvent()))
	assert.NoError(t, v.Validate(ctx, models.ChangeRequest{}))
	assert.NoError(t, v.Validate(ctx, models.HeartbeatRequest{}))
	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, auth, "nope"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// AuthRequest
// ---------------------------------------------------------------------------

func TestValidateAuthRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.AuthRequest
		fields  []string
		wantErr error
	}{
		{name: "valid", req: models.AuthRequest{TerminalID: "T-01", SharedKey: "k"}},
		{name: "missing terminal", req: models.AuthRequest{SharedKey: "k"}, wantErr: ErrInvalidTerminalID},
		{name: "missing key", req: models.AuthRequest{TerminalID: "T-01"}, wantErr: ErrEmptySharedKey},
		{name: "scoped to terminal", req: models.AuthRequest{TerminalID: "T-01"}, fields: []string{FieldTerminalID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestValidator().Validate(context.Background(), tt.req, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// ChangeRequest
// ---------------------------------------------------------------------------

func TestValidateChangeRequest(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ChangeRequest{LastSync: fixedNow.Add(time.Minute)}))
	assert.ErrorIs(t, v.Validate(ctx, models.ChangeRequest{LastSync: fixedNow.Add(time.Hour)}), ErrWatermarkInFuture)

	req := models.ChangeRequest{Watermarks: map[models.EntityType]time.Time{
		models.EntityProducts: fixedNow.Add(24 * time.Hour),
	}}
	assert.ErrorIs(t, v.Validate(ctx, req), ErrWatermarkInFuture)
	assert.ErrorIs(t, v.Validate(ctx, models.ChangeRequest{}, FieldTerminalID), ErrInvalidTerminalID)
}

// ---------------------------------------------------------------------------
// PushRequest
// ---------------------------------------------------------------------------

func TestValidatePushRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.PushRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(r *models.PushRequest) {}},
		{name: "empty batch", mutate: func(r *models.PushRequest) {
			r.Sales, r.StockMovements, r.Events = nil, nil, nil
		}},
		{name: "sale without ticket", mutate: func(r *models.PushRequest) {
			r.Sales[0].TicketNumber = ""
		}, wantErr: ErrEmptyTicketNumber},
		{name: "sale without lines", mutate: func(r *models.PushRequest) {
			r.Sales[0].Lines = nil
		}, wantErr: ErrEmptySaleLines},
		{name: "line with product and service", mutate: func(r *models.PushRequest) {
			r.Sales[0].Lines[0].ServiceID = ptr(2)
		}, wantErr: ErrInvalidSaleLineItem},
		{name: "line without item", mutate: func(r *models.PushRequest) {
			r.Sales[0].Lines[1].ServiceID = nil
		}, wantErr: ErrInvalidSaleLineItem},
		{name: "zero quantity line", mutate: func(r *models.PushRequest) {
			r.Sales[0].Lines[0].Quantity = 0
		}, wantErr: ErrInvalidQuantity},
		{name: "negative total", mutate: func(r *models.PushRequest) {
			r.Sales[0].Total = -1
		}, wantErr: ErrInvalidAmount},
		{name: "sale of another terminal", mutate: func(r *models.PushRequest) {
			r.Sales[0].TerminalID = "T-02"
		}, wantErr: ErrTerminalIDMismatch},
		{name: "movement without key", mutate: func(r *models.PushRequest) {
			r.StockMovements[0].IdempotencyKey = ""
		}, wantErr: ErrEmptyIdempotencyKey},
		{name: "movement with unknown kind", mutate: func(r *models.PushRequest) {
			r.StockMovements[0].Kind = "theft"
		}, wantErr: ErrInvalidMovementKind},
		{name: "movement without product", mutate: func(r *models.PushRequest) {
			r.StockMovements[0].ProductID = 0
		}, wantErr: ErrInvalidProductID},
		{name: "event without id", mutate: func(r *models.PushRequest) {
			r.Events[0].EventID = ""
		}, wantErr: ErrEmptyEventID},
		{name: "event without time", mutate: func(r *models.PushRequest) {
			r.Events[0].OccurredAt = time.Time{}
		}, wantErr: ErrEmptyTimestamp},
		{name: "too large", mutate: func(r *models.PushRequest) {
			r.Events = make([]models.TerminalEvent, MaxPushBatch+1)
		}, wantErr: ErrBatchTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.PushRequest{
				TerminalID:     "T-01",
				Sales:          []models.Sale{validSale()},
				StockMovements: []models.StockMovement{validMovement()},
				Events:         []models.TerminalEvent{validEvent()},
			}
			tt.mutate(&req)

			err := newTestValidator().Validate(context.Background(), &req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePushRequest_ReportsIndex(t *testing.T) {
	bad := validSale()
	bad.TicketNumber = ""

	err := newTestValidator().Validate(context.Background(), models.PushRequest{
		Sales: []models.Sale{validSale(), bad},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sales[1]")
}

// ---------------------------------------------------------------------------
// HeartbeatRequest
// ---------------------------------------------------------------------------

func TestValidateHeartbeat(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.HeartbeatRequest{DailySalesCount: 3, DailySalesTotal: 900}))
	assert.ErrorIs(t, v.Validate(ctx, models.HeartbeatRequest{DailySalesCount: -1}), ErrNegativeCounter)
	assert.ErrorIs(t, v.Validate(ctx, models.HeartbeatRequest{PendingOutbox: -3}), ErrNegativeCounter)
}

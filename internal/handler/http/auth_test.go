package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-pos-sync/internal/service"
	"github.com/MKhiriev/go-pos-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate_Success(t *testing.T) {
	services := newFakeServices()
	services.auth.authenticateFn = func(_ context.Context, request models.AuthRequest) (models.AuthResponse, error) {
		return models.AuthResponse{
			Result:         models.OK("authenticated"),
			Authorized:     true,
			Token:          "signed-token",
			ServerID:       "central-1",
			TerminalConfig: &models.TerminalConfig{MaxDiscountPercent: 10},
		}, nil
	}

	rr := doJSON(t, services.handler().Init(), http.MethodPost, pathAuth, "", models.AuthRequest{
		TerminalID: "T-01",
		SharedKey:  "s3cret",
		Version:    "1.0.0",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody[models.AuthResponse](t, rr)
	assert.True(t, body.Success)
	assert.True(t, body.Authorized)
	assert.Equal(t, "signed-token", body.Token)
	require.NotNil(t, body.TerminalConfig)
	assert.InDelta(t, 10.0, body.TerminalConfig.MaxDiscountPercent, 0.001)

	// httptest requests come from 192.0.2.1
	assert.Equal(t, "192.0.2.1", services.auth.lastRequest.IP)
}

func TestAuthenticate_KeepsReportedIP(t *testing.T) {
	services := newFakeServices()

	doJSON(t, services.handler().Init(), http.MethodPost, pathAuth, "", models.AuthRequest{
		TerminalID: "T-01",
		SharedKey:  "s3cret",
		IP:         "10.0.0.21",
	})

	assert.Equal(t, "10.0.0.21", services.auth.lastRequest.IP)
}

func TestAuthenticate_Failures(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		serviceErr     error
		wantStatus     int
		wantAuthorized bool
	}{
		{name: "malformed json", body: `{"terminalId": 5`, wantStatus: http.StatusBadRequest},
		{name: "missing key", body: models.AuthRequest{TerminalID: "T-01"}, serviceErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "wrong key", body: models.AuthRequest{TerminalID: "T-01", SharedKey: "x"}, serviceErr: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "inactive", body: models.AuthRequest{TerminalID: "T-01", SharedKey: "x"}, serviceErr: service.ErrTerminalInactive, wantStatus: http.StatusUnauthorized},
		{name: "token signing", body: models.AuthRequest{TerminalID: "T-01", SharedKey: "x"}, serviceErr: service.ErrTokenCreationFailed, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newFakeServices()
			services.auth.authenticateFn = func(context.Context, models.AuthRequest) (models.AuthResponse, error) {
				return models.AuthResponse{Result: models.Fail("invalid credentials")}, tt.serviceErr
			}

			rr := doJSON(t, services.handler().Init(), http.MethodPost, pathAuth, "", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			body := decodeBody[models.AuthResponse](t, rr)
			assert.False(t, body.Success)
			assert.False(t, body.Authorized)
			assert.Empty(t, body.Token)
		})
	}
}

func TestRemoteIP(t *testing.T) {
	r := &http.Request{RemoteAddr: "10.1.2.3:51000"}
	assert.Equal(t, "10.1.2.3", remoteIP(r))

	r.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", remoteIP(r))
}

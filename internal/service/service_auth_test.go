package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			ServerID:           "central-1",
			TokenSignKey:       "test-sign-key",
			TokenDuration:      time.Hour,
			Version:            "1.2.0",
			MaxDiscountPercent: 15,
			FeatureFlags:       map[string]bool{"returns": true},
		},
		Server: config.Server{FeedPageSize: 100},
		Workers: config.Workers{
			SyncInterval:      30 * time.Second,
			HeartbeatInterval: time.Minute,
		},
	}
}

func hashKey(t *testing.T, key string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestAuthService(t *testing.T) (AuthService, *fakeTerminalRepository) {
	t.Helper()
	repo := &fakeTerminalRepository{terminals: map[string]models.Terminal{
		"T-01": {TerminalID: "T-01", SharedKeyHash: hashKey(t, "s3cret"), Active: true},
		"T-02": {TerminalID: "T-02", SharedKeyHash: hashKey(t, "other"), Active: false},
	}}
	return NewAuthService(repo, testConfig(), logger.Nop()), repo
}

// ─────────────────────────────────────────────
// Authenticate
// ─────────────────────────────────────────────

func TestAuthenticate_Success(t *testing.T) {
	svc, repo := newTestAuthService(t)

	resp, err := svc.Authenticate(context.Background(), models.AuthRequest{
		TerminalID: "T-01",
		SharedKey:  "s3cret",
		Version:    "1.0.0",
		IP:         "10.0.0.21",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.Authorized)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "central-1", resp.ServerID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)
	require.NotNil(t, resp.TerminalConfig)
	assert.Equal(t, 30*time.Second, resp.TerminalConfig.PollInterval.Std())
	assert.Equal(t, time.Minute, resp.TerminalConfig.HeartbeatInterval.Std())
	assert.InDelta(t, 15.0, resp.TerminalConfig.MaxDiscountPercent, 0.001)
	assert.True(t, resp.TerminalConfig.FeatureFlags["returns"])
	assert.Equal(t, []string{"T-01"}, repo.touched)

	// the issued token must be accepted by ParseToken
	token, err := svc.ParseToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "T-01", token.TerminalID)
}

func TestAuthenticate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		request models.AuthRequest
		wantErr error
	}{
		{
			name:    "empty terminal id",
			request: models.AuthRequest{SharedKey: "s3cret"},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "empty shared key",
			request: models.AuthRequest{TerminalID: "T-01"},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "unknown terminal",
			request: models.AuthRequest{TerminalID: "T-99", SharedKey: "s3cret"},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "wrong shared key",
			request: models.AuthRequest{TerminalID: "T-01", SharedKey: "wrong"},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "inactive terminal",
			request: models.AuthRequest{TerminalID: "T-02", SharedKey: "other"},
			wantErr: ErrTerminalInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestAuthService(t)

			resp, err := svc.Authenticate(context.Background(), tt.request)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, resp.Authorized)
			assert.False(t, resp.Success)
			assert.Empty(t, resp.Token)
			assert.Nil(t, resp.TerminalConfig)
			assert.Empty(t, repo.touched)
		})
	}
}

func TestAuthenticate_RepositoryError(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.findErr = errors.New("connection refused")

	_, err := svc.Authenticate(context.Background(), models.AuthRequest{TerminalID: "T-01", SharedKey: "s3cret"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAuthenticate_TouchFailureDoesNotFailAuth(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.touchErr = errors.New("row lock timeout")

	resp, err := svc.Authenticate(context.Background(), models.AuthRequest{TerminalID: "T-01", SharedKey: "s3cret"})

	require.NoError(t, err)
	assert.True(t, resp.Authorized)
}

func TestAuthenticate_TokenCreationFails(t *testing.T) {
	cfg := testConfig()
	cfg.App.TokenSignKey = ""
	repo := &fakeTerminalRepository{terminals: map[string]models.Terminal{
		"T-01": {TerminalID: "T-01", SharedKeyHash: hashKey(t, "s3cret"), Active: true},
	}}
	svc := NewAuthService(repo, cfg, logger.Nop())

	_, err := svc.Authenticate(context.Background(), models.AuthRequest{TerminalID: "T-01", SharedKey: "s3cret"})

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

// ─────────────────────────────────────────────
// ParseToken
// ─────────────────────────────────────────────

func TestParseToken_Invalid(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ParseToken(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_ForeignIssuer(t *testing.T) {
	svc, _ := newTestAuthService(t)

	otherCfg := testConfig()
	otherCfg.App.ServerID = "central-2"
	repo := &fakeTerminalRepository{terminals: map[string]models.Terminal{
		"T-01": {TerminalID: "T-01", SharedKeyHash: hashKey(t, "s3cret"), Active: true},
	}}
	other := NewAuthService(repo, otherCfg, logger.Nop())
	resp, err := other.Authenticate(context.Background(), models.AuthRequest{TerminalID: "T-01", SharedKey: "s3cret"})
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), resp.Token)

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It verifies terminal shared keys against bcrypt hashes stored in the
// terminals table and issues HS256 session tokens.
type authService struct {
	// terminalRepository is used to look up registrations and record the
	// last authentication.
	terminalRepository store.TerminalRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// serverID is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	serverID string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// terminalConfig is handed to every terminal that authenticates.
	terminalConfig models.TerminalConfig

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// TerminalRepository. Token parameters and the handed-out terminal
// configuration are taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(terminalRepository store.TerminalRepository, cfg *config.StructuredConfig, logger *logger.Logger) AuthService {
	return &authService{
		terminalRepository: terminalRepository,
		tokenSignKey:       cfg.App.TokenSignKey,
		serverID:           cfg.App.ServerID,
		tokenDuration:      cfg.App.TokenDuration,
		terminalConfig:     terminalConfigFrom(cfg),
		now:                time.Now,
		logger:             logger,
	}
}

func terminalConfigFrom(cfg *config.StructuredConfig) models.TerminalConfig {
	flags := make(map[string]bool, len(cfg.App.FeatureFlags))
	for name, enabled := range cfg.App.FeatureFlags {
		flags[name] = enabled
	}

	return models.TerminalConfig{
		PollInterval:       models.Duration(cfg.Workers.SyncInterval),
		HeartbeatInterval:  models.Duration(cfg.Workers.HeartbeatInterval),
		MaxDiscountPercent: cfg.App.MaxDiscountPercent,
		FeatureFlags:       flags,
	}
}

// Authenticate verifies the terminal credentials and issues a session token.
//
// Returns a successful AuthResponse carrying the token, its expiry, the server
// id and the terminal configuration, or:
//   - ErrInvalidDataProvided if the terminal id or shared key is empty.
//   - ErrInvalidCredentials if the terminal is unknown or the key does not match.
//   - ErrTerminalInactive if the terminal registration is disabled.
//   - ErrTokenCreationFailed or a wrapped storage error otherwise.
//
// On credential failures the returned response is the unauthorized body the
// handler sends back.
func (a *authService) Authenticate(ctx context.Context, request models.AuthRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if request.TerminalID == "" || request.SharedKey == "" {
		log.Error().Str("terminal_id", request.TerminalID).Msg("invalid auth data provided")
		return unauthorized("terminal id and shared key are required"), ErrInvalidDataProvided
	}

	terminal, err := a.terminalRepository.FindTerminal(ctx, request.TerminalID)
	if errors.Is(err, store.ErrTerminalNotFound) {
		log.Warn().Str("terminal_id", request.TerminalID).Msg("unknown terminal tried to authenticate")
		return unauthorized("invalid credentials"), ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("terminal_id", request.TerminalID).Msg("terminal lookup failed")
		return models.AuthResponse{}, fmt.Errorf("terminal lookup failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(terminal.SharedKeyHash), []byte(request.SharedKey)); err != nil {
		log.Warn().Str("terminal_id", request.TerminalID).Msg("wrong shared key")
		return unauthorized("invalid credentials"), ErrInvalidCredentials
	}

	if !terminal.Active {
		log.Warn().Str("terminal_id", request.TerminalID).Msg("inactive terminal tried to authenticate")
		return unauthorized("terminal is inactive"), ErrTerminalInactive
	}

	token, err := a.createToken(terminal.TerminalID)
	if err != nil {
		log.Err(err).Str("terminal_id", request.TerminalID).Msg("token creation failed")
		return models.AuthResponse{}, err
	}

	now := a.now()
	if err = a.terminalRepository.TouchAuth(ctx, terminal.TerminalID, request.Version, request.IP, now); err != nil {
		log.Err(err).Str("terminal_id", request.TerminalID).Msg("failed to record authentication time")
	}

	terminalConfig := a.terminalConfig
	log.Info().
		Str("terminal_id", terminal.TerminalID).
		Str("version", request.Version).
		Str("ip", request.IP).
		Msg("terminal authenticated")

	return models.AuthResponse{
		Result:         models.OK("authenticated"),
		Authorized:     true,
		Token:          token.SignedString,
		ExpiresAt:      token.ExpiresAt.Time,
		ServerID:       a.serverID,
		TerminalConfig: &terminalConfig,
	}, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed, empty subject) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.serverID)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) createToken(terminalID string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.serverID, terminalID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func unauthorized(message string) models.AuthResponse {
	return models.AuthResponse{Result: models.Fail(message)}
}

package http

import (
	"net/http"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, validates it via
// [service.AuthService.ParseToken] and, on success, stores the terminal id
// from the token subject in the request context (see
// [utils.WithTerminalID]). The request logger is tagged with the terminal id.
//
// Requests without a header, with a malformed header or with an expired or
// invalid token are rejected with 401 and the bare failed envelope.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			writeServiceError(w, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			writeServiceError(w, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("token rejected")
			writeServiceError(w, err)
			return
		}

		terminalLog := log.With().Str("terminal_id", token.TerminalID).Logger()
		ctx = utils.WithTerminalID(terminalLog.WithContext(ctx), token.TerminalID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// terminalFromRequest returns the authenticated terminal id. It is only
// called behind [Handler.auth].
func terminalFromRequest(r *http.Request) string {
	terminalID, _ := utils.GetTerminalIDFromContext(r.Context())
	return terminalID
}

// bindTerminal reconciles the terminal id carried in a request body with the
// authenticated one. An empty body id is filled in.
func bindTerminal(r *http.Request, bodyTerminalID *string) error {
	terminalID := terminalFromRequest(r)
	if *bodyTerminalID != "" && *bodyTerminalID != terminalID {
		logger.FromRequest(r).Warn().
			Str("body_terminal_id", *bodyTerminalID).
			Msg("request body names another terminal")
		return ErrTerminalMismatch
	}
	*bodyTerminalID = terminalID
	return nil
}

package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a terminal session JWT.
//
// It embeds [jwt.Token] for signing and parsing and [jwt.RegisteredClaims]
// for standard claim access. The "sub" claim carries the terminal id and the
// "iss" claim carries the id of the server that issued the token.
type Token struct {
	// Token is the underlying JWT token. Only the compact string form is
	// meaningful outside the server process.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// TerminalID is a cached copy of the "sub" claim.
	TerminalID string `json:"-"`
}

// GetTerminalID returns the terminal identifier stored in the "sub" claim.
func (t *Token) GetTerminalID() (string, error) {
	terminalID, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if terminalID == "" {
		return "", errors.New("empty terminal id in token subject")
	}

	return terminalID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

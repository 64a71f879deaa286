package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "central-1"
	terminalID := "T-01"
	duration := time.Hour
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, terminalID, duration, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.TerminalID != terminalID {
		t.Errorf("expected terminal id %s, got %s", terminalID, token.TerminalID)
	}

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != terminalID {
		t.Errorf("expected subject %s, got %s", terminalID, claims.Subject)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Sub(claims.IssuedAt.Time) != duration {
		t.Errorf("expected expiry one hour after issue, got %v", claims.ExpiresAt)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name       string
		issuer     string
		terminalID string
		duration   time.Duration
		key        string
	}{
		{"empty issuer", "", "T-01", time.Hour, "key"},
		{"empty terminal", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "T-01", 0, "key"},
		{"negative duration", "iss", "T-01", -time.Second, "key"},
		{"empty key", "iss", "T-01", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.terminalID, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuer := "central-1"
	key := "secret-key"

	genToken, err := GenerateJWTToken(issuer, "T-02", 5*time.Minute, key)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsedToken, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer)
	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsedToken.TerminalID != "T-02" {
		t.Errorf("expected terminal id T-02, got %s", parsedToken.TerminalID)
	}
	if parsedToken.SignedString != genToken.SignedString {
		t.Error("expected signed string to be preserved")
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	genToken, _ := GenerateJWTToken("central-1", "T-01", time.Hour, "correct-key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", "central-1")
	if err == nil {
		t.Error("expected error due to signature mismatch, got nil")
	}
}

func signRaw(t *testing.T, method jwt.SigningMethod, claims jwt.RegisteredClaims, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	now := time.Now()
	raw := signRaw(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "central-1",
		Subject:   "T-01",
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}, []byte("key"))

	_, err := ValidateAndParseJWTToken(raw, "key", "central-1")
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateAndParseJWTToken_MissingExpiry(t *testing.T) {
	raw := signRaw(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  "central-1",
		Subject: "T-01",
	}, []byte("key"))

	if _, err := ValidateAndParseJWTToken(raw, "key", "central-1"); err == nil {
		t.Error("expected error for token without exp claim, got nil")
	}
}

func TestValidateAndParseJWTToken_EmptySubject(t *testing.T) {
	raw := signRaw(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "central-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, []byte("key"))

	if _, err := ValidateAndParseJWTToken(raw, "key", "central-1"); err == nil {
		t.Error("expected error for token without subject, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongAlgorithm(t *testing.T) {
	raw := signRaw(t, jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Issuer:    "central-1",
		Subject:   "T-01",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, []byte("key"))

	if _, err := ValidateAndParseJWTToken(raw, "key", "central-1"); err == nil {
		t.Error("expected error for HS512 token, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	genToken, _ := GenerateJWTToken("real-issuer", "T-01", time.Hour, "key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "fake-issuer")
	if err == nil {
		t.Error("expected error for issuer mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "iss")
	if err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lower case scheme", header: "bearer abc", want: "abc"},
		{name: "empty", header: "", wantErr: true},
		{name: "no token", header: "Bearer", wantErr: true},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "extra parts", header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.header)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

package auth

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	tokenIssuer   = "ds-survey"
	tokenAudience = "ds-survey-admin"

	// PASETO v4 symmetric key requirements.
	keyBytesSize = 32 // 256 bits
	keyHexSize   = 64 // 32 bytes as hex string

	// SessionTTL is how long an issued admin session stays valid.
	SessionTTL = time.Hour
)

// TokenService issues and verifies the admin session tokens that gate
// moderation and the dashboard. There are no multi-user accounts; a token
// is a time-limited capability, not an identity.
type TokenService struct {
	symmetricKey  paseto.V4SymmetricKey
	adminPassword string
}

// NewTokenService builds the token service from the hex-encoded symmetric
// key and the shared admin secret.
func NewTokenService(keyHex, adminPassword string) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("admin token key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for admin token key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("create PASETO symmetric key: %w", err)
	}

	if adminPassword == "" {
		return nil, fmt.Errorf("admin password is not configured")
	}

	return &TokenService{symmetricKey: key, adminPassword: adminPassword}, nil
}

// CheckPassword compares the supplied secret against the configured admin
// password in constant time.
func (s *TokenService) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
}

// IssueSession creates a new expiring v4.local session token.
func (s *TokenService) IssueSession() (string, time.Time) {
	now := time.Now()
	expiresAt := now.Add(SessionTTL)

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetAudience(tokenAudience)
	token.SetSubject("admin")
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expiresAt)

	return token.V4Encrypt(s.symmetricKey, nil), expiresAt
}

// VerifySession checks a session token's signature, issuer, audience, and
// expiry. Returns an error for anything invalid or expired.
func (s *TokenService) VerifySession(tokenString string) error {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	if _, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil); err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}
	return nil
}

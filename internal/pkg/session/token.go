// internal/pkg/session/token.go
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/your-org/storefront/internal/config"
)

// Claims represents the signed guest-session claims
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager issues and validates guest-session tokens. Sessions are anonymous:
// the token proves nothing about identity, only that the session id was
// minted here and not forged to read someone else's cart.
type Manager struct {
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

// NewManager creates a new session token manager
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret:   []byte(cfg.Session.Secret),
		issuer:   cfg.App.Name,
		tokenTTL: cfg.Session.TokenTTL,
	}
}

// Issue mints a fresh session id and its signed token
func (m *Manager) Issue() (string, string, error) {
	sessionID := uuid.New().String()
	token, err := m.Token(sessionID)
	if err != nil {
		return "", "", err
	}
	return sessionID, token, nil
}

// Token signs a token carrying the given session id
func (m *Manager) Token(sessionID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns the session id it carries
func (m *Manager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session token claims")
	}
	return claims.SessionID, nil
}

// TTL returns the configured token lifetime
func (m *Manager) TTL() time.Duration {
	return m.tokenTTL
}

package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims binds a builder session token to its session and store
type SessionClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	StoreID   string    `json:"store_id"`
	jwt.RegisteredClaims
}

// SessionTokenManager signs and validates builder session tokens. Tokens are
// minted when a session opens and accompany every mutation on it.
type SessionTokenManager struct {
	secretKey []byte
	expiry    time.Duration
}

// NewSessionTokenManager creates a new session token manager
func NewSessionTokenManager(secret string, expiry time.Duration) *SessionTokenManager {
	return &SessionTokenManager{
		secretKey: []byte(secret),
		expiry:    expiry,
	}
}

// GenerateToken mints a token for a freshly opened builder session
func (m *SessionTokenManager) GenerateToken(sessionID uuid.UUID, storeID string) (string, error) {
	claims := &SessionClaims{
		SessionID: sessionID,
		StoreID:   storeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "maitripos-gateway",
			Subject:   sessionID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateToken validates a session token and returns its claims
func (m *SessionTokenManager) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

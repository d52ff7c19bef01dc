package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

type TokenServiceInterface interface {
	GenerateSessionID() (string, error)
}

// TokenService issues opaque session identifiers. Sessions are stored server
// side so that logout and account deactivation revoke them immediately.
type TokenService struct{}

func (s *TokenService) GenerateSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("can't generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

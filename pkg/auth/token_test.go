package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSessionID(t *testing.T) {
	tokenService := &TokenService{}

	first, err := tokenService.GenerateSessionID()
	assert.NoError(t, err)
	assert.Len(t, first, 64)

	decoded, err := hex.DecodeString(first)
	assert.NoError(t, err)
	assert.Len(t, decoded, 32)

	second, err := tokenService.GenerateSessionID()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("secreto", "u-1", "caja@koaj.co", "sales", "alegra-reports-api", 10)
	require.NoError(t, err)

	id, err := Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, "caja@koaj.co", id.Email)
	assert.Equal(t, "sales", id.Role)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), id.ExpiresAt, time.Minute)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("secreto", "u-1", "a@b.co", "admin", "x", 10)
	require.NoError(t, err)

	_, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate("secreto", "u-1", "a@b.co", "admin", "x", -1)
	require.NoError(t, err)

	_, err = Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u", "e", "admin", "x", 1)
	assert.Error(t, err)
}

package config_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"forum/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "Failed to generate RSA key")
	return key
}

func TestGenerateAndValidateJWT(t *testing.T) {
	t.Parallel()

	j := config.NewJWTFromKeys(generateKey(t), time.Hour)

	token, err := j.GenerateJWT("64f0c9e2a1b2c3d4e5f60718")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := j.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c9e2a1b2c3d4e5f60718", claims.UserID())
	assert.NotEmpty(t, claims.ID)
}

func TestTokensOfDifferentUsersDecodeToDifferentIDs(t *testing.T) {
	t.Parallel()

	j := config.NewJWTFromKeys(generateKey(t), time.Hour)

	tokenA, err := j.GenerateJWT("64f0c9e2a1b2c3d4e5f60718")
	require.NoError(t, err)
	tokenB, err := j.GenerateJWT("64f0c9e2a1b2c3d4e5f60719")
	require.NoError(t, err)

	claimsA, err := j.ValidateJWT(tokenA)
	require.NoError(t, err)
	claimsB, err := j.ValidateJWT(tokenB)
	require.NoError(t, err)

	assert.NotEqual(t, claimsA.UserID(), claimsB.UserID())
}

func TestValidateJWTRejections(t *testing.T) {
	t.Parallel()

	key := generateKey(t)
	j := config.NewJWTFromKeys(key, time.Hour)

	validToken, err := j.GenerateJWT("64f0c9e2a1b2c3d4e5f60718")
	require.NoError(t, err)

	expired := config.NewJWTFromKeys(key, -time.Minute)
	expiredToken, err := expired.GenerateJWT("64f0c9e2a1b2c3d4e5f60718")
	require.NoError(t, err)

	foreign := config.NewJWTFromKeys(generateKey(t), time.Hour)
	foreignToken, err := foreign.GenerateJWT("64f0c9e2a1b2c3d4e5f60718")
	require.NoError(t, err)

	testCases := []struct {
		name          string
		token         string
		expectedError error
	}{
		{
			name:          "Expired token",
			token:         expiredToken,
			expectedError: jwt.ErrTokenExpired,
		},
		{
			name:          "Token signed with a foreign key",
			token:         foreignToken,
			expectedError: jwt.ErrSignatureInvalid,
		},
		{
			name:          "Corrupted token",
			token:         validToken + "tampered",
			expectedError: jwt.ErrSignatureInvalid,
		},
		{
			name:          "Malformed token",
			token:         "not-a-token",
			expectedError: jwt.ErrTokenMalformed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			claims, err := j.ValidateJWT(tc.token)

			assert.Nil(t, claims)
			assert.Equal(t, tc.expectedError, err)
		})
	}
}

func TestNewJWTFromFiles(t *testing.T) {
	t.Parallel()

	key := generateKey(t)
	dir := t.TempDir()

	privPem := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPem := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})

	privFile := filepath.Join(dir, "private.pem")
	pubFile := filepath.Join(dir, "public.pem")
	require.NoError(t, os.WriteFile(privFile, privPem, 0o600))
	require.NoError(t, os.WriteFile(pubFile, pubPem, 0o644))

	j, err := config.NewJWTFromFiles(privFile, pubFile, time.Hour)
	require.NoError(t, err)

	token, err := j.GenerateJWT("64f0c9e2a1b2c3d4e5f60718")
	require.NoError(t, err)

	claims, err := j.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c9e2a1b2c3d4e5f60718", claims.UserID())
}

func TestNewJWTFromFilesMissingKey(t *testing.T) {
	t.Parallel()

	_, err := config.NewJWTFromFiles("no-such-private.pem", "no-such-public.pem", time.Hour)

	assert.Error(t, err)
}

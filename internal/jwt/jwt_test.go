package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shed-server/internal/config"
	"shed-server/internal/util"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKeys(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	UseKeys(&priv.PublicKey, priv)
	return priv
}

func signClaims(t *testing.T, priv *rsa.PrivateKey, claims jwtgo.RegisteredClaims) string {
	t.Helper()

	signed, err := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims).SignedString(priv)
	require.NoError(t, err)
	return signed
}

func TestSignAndValidateUserID(t *testing.T) {
	setupKeys(t)

	sign, err := Sign("user-18")
	assert.NoError(t, err)

	id, err := ValidUserID(sign)
	assert.NoError(t, err)
	assert.Equal(t, "user-18", id)
}

func TestValidUserID_InvalidAudience(t *testing.T) {
	priv := setupKeys(t)

	signedToken := signClaims(t, priv, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "15",
	})

	id, err := ValidUserID(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, "", id)
}

func TestValidUserID_InvalidIssuer(t *testing.T) {
	priv := setupKeys(t)

	signedToken := signClaims(t, priv, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "15",
	})

	id, err := ValidUserID(signedToken)
	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, "", id)
}

func TestValidUserID_NoSubject(t *testing.T) {
	priv := setupKeys(t)

	signedToken := signClaims(t, priv, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		Issuer:   Issuer,
	})

	_, err := ValidUserID(signedToken)
	assert.Equal(t, ErrNoSubject, err)
}

func TestValidUserID_Expired(t *testing.T) {
	priv := setupKeys(t)

	signedToken := signClaims(t, priv, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now()),
		Issuer:    Issuer,
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(time.Hour * -1)),
		Subject:   "15",
	})

	id, err := ValidUserID(signedToken)
	assert.True(t, errors.Is(err, jwtgo.ErrTokenExpired))
	assert.Equal(t, "", id)
}

func TestValidUserID_WrongKey(t *testing.T) {
	setupKeys(t)
	signed, err := Sign("u1")
	require.NoError(t, err)

	setupKeys(t)
	_, err = ValidUserID(signed)
	assert.Error(t, err)
}

func TestLoadKeys(t *testing.T) {
	a := assert.New(t)

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.key")
	pubPath := filepath.Join(dir, "public.pem")

	require.NoError(t, os.WriteFile(privPath, pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	}), 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(pubPath, pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	}), 0644))

	defer util.SetEnv("SHED_CONFIG_FILE", filepath.Join(dir, "missing.yaml"))()
	defer util.SetEnv("SHED_JWT_PUBLIC_KEY", pubPath)()
	defer util.SetEnv("SHED_JWT_PRIVATE_KEY", privPath)()
	require.NoError(t, config.Load())

	a.NoError(LoadKeys())

	signed, err := Sign("u1")
	a.NoError(err)
	id, err := ValidUserID(signed)
	a.NoError(err)
	a.Equal("u1", id)

	defer util.SetEnv("SHED_JWT_PUBLIC_KEY", filepath.Join(dir, "nope.pem"))()
	require.NoError(t, config.Load())
	a.Error(LoadKeys())
}

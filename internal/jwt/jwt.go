package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"shed-server/internal/config"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "shed-server"

// Audience is the intended JWT audience
const Audience = "shed-server"

// tokenLifetime is how long a signed token is valid
const tokenLifetime = time.Hour * 24

// ErrNoSubject happens when a valid token does not name a user
var ErrNoSubject = errors.New("token has no subject")

var (
	lock       sync.RWMutex
	publicKey  *rsa.PublicKey
	privateKey *rsa.PrivateKey
)

// LoadKeys will load the public and private keys named in the configuration
// The private key is optional; without it the server can only validate tokens.
func LoadKeys() error {
	cfg := config.Instance().JWT

	pub, err := loadPublicKey(cfg.PublicKey)
	if err != nil {
		return err
	}

	var priv *rsa.PrivateKey
	if cfg.PrivateKey != "" {
		if priv, err = loadPrivateKey(cfg.PrivateKey); err != nil {
			return err
		}
	}

	UseKeys(pub, priv)
	return nil
}

// UseKeys sets the keys directly
func UseKeys(pub *rsa.PublicKey, priv *rsa.PrivateKey) {
	lock.Lock()
	defer lock.Unlock()

	publicKey = pub
	privateKey = priv
}

func keys() (*rsa.PublicKey, *rsa.PrivateKey) {
	lock.RLock()
	defer lock.RUnlock()

	return publicKey, privateKey
}

// Sign will sign a JWT for the user ID
func Sign(userID string) (string, error) {
	_, priv := keys()
	if priv == nil {
		panic("LoadKeys() not called")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(now),
		ExpiresAt: jwtgo.NewNumericDate(now.Add(tokenLifetime)),
		Issuer:    Issuer,
		Subject:   userID,
	})

	return token.SignedString(priv)
}

// ValidUserID will validate a signed JWT and return its subject
func ValidUserID(signedString string) (string, error) {
	pub, _ := keys()
	if pub == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return pub, nil
	})

	if err != nil {
		return "", err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.RegisteredClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return "", errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return "", errors.New("invalid issuer")
			}

			if claims.Subject == "" {
				return "", ErrNoSubject
			}

			return claims.Subject, nil
		}

		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return "", errors.New("claims were not valid")
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read public key: %w", err)
	}

	pem, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return pem, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read private key: %w", err)
	}

	pem, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}

	return pem, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}

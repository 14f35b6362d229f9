package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidLength is returned for a non-positive length
var ErrInvalidLength = errors.New("token length must be positive")

// Generate returns a crypto-secure random string of length n
// The random string is contains the following characters:
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidLength
	}

	// base64 encodes 3 bytes into 4 characters
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}

// InviteCode returns an upper-case code of length n that is easy to read out loud
func InviteCode(n int) (string, error) {
	code, err := Generate(n)
	if err != nil {
		return "", err
	}

	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_':
			return 'X'
		}

		return r
	}, strings.ToUpper(code)), nil
}

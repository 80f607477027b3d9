package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// ErrInvalidLength is returned when a token of zero or negative length is requested
var ErrInvalidLength = errors.New("token length must be greater than zero")

// Generate returns a crypto-secure random string of length n
// The random string contains the following characters:
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidLength
	}

	// every 3 bytes encode to 4 characters
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}

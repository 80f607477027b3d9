package jwt

import (
	"errors"
	"fmt"
	"seotda-server/internal/config"
	"sync"
	"time"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "seotda-server"

// Audience is the intended JWT audience
const Audience = "seotda-players"

// TTL is how long a signed token remains valid
const TTL = 24 * time.Hour

// ErrNotConfigured is returned when no secret has been loaded
var ErrNotConfigured = errors.New("jwt secret is not configured")

var (
	secret []byte
	lock   sync.RWMutex
)

// LoadSecret will load the signing secret from the configuration
func LoadSecret() {
	SetSecret(config.Instance().JWT.Secret)
}

// SetSecret sets the HMAC secret. An empty secret disables token auth
func SetSecret(s string) {
	lock.Lock()
	defer lock.Unlock()

	if s == "" {
		secret = nil
		return
	}

	secret = []byte(s)
}

// Enabled returns true if a secret has been loaded
func Enabled() bool {
	lock.RLock()
	defer lock.RUnlock()

	return len(secret) > 0
}

func key() ([]byte, error) {
	lock.RLock()
	defer lock.RUnlock()

	if len(secret) == 0 {
		return nil, ErrNotConfigured
	}

	return secret, nil
}

// Sign will sign a JWT for the player ID
func Sign(playerID string) (string, error) {
	k, err := key()
	if err != nil {
		return "", err
	}

	if playerID == "" {
		return "", errors.New("player id is required")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.StandardClaims{
		Audience:  Audience,
		ExpiresAt: now.Add(TTL).Unix(),
		Id:        uuid.New().String(),
		IssuedAt:  now.Unix(),
		Issuer:    Issuer,
		Subject:   playerID,
	})

	return token.SignedString(k)
}

// ValidPlayerID will validate a signed JWT and return its subject
func ValidPlayerID(signedString string) (string, error) {
	k, err := key()
	if err != nil {
		return "", err
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.StandardClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return k, nil
	})

	if err != nil {
		return "", err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.StandardClaims); ok {
			if !claims.VerifyAudience(Audience, true) {
				return "", errors.New("invalid audience")
			}

			if !claims.VerifyIssuer(Issuer, true) {
				return "", errors.New("invalid issuer")
			}

			if claims.Subject == "" {
				return "", errors.New("missing subject")
			}

			return claims.Subject, nil
		}

		return "", fmt.Errorf("expected jwt.StandardClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return "", errors.New("claims were not valid")
}

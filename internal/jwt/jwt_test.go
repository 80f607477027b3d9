package jwt

import (
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signClaims(t *testing.T, claims jwtgo.StandardClaims, k string) string {
	t.Helper()

	signed, err := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString([]byte(k))
	if err != nil {
		t.Fatal(err)
	}

	return signed
}

func TestSignAndValidatePlayerID(t *testing.T) {
	SetSecret(testSecret)
	defer SetSecret("")

	assert.True(t, Enabled())

	sign, err := Sign("player-18")
	assert.NoError(t, err)

	id, err := ValidPlayerID(sign)
	assert.NoError(t, err)
	assert.Equal(t, "player-18", id)

	_, err = Sign("")
	assert.Error(t, err)
}

func TestNotConfigured(t *testing.T) {
	SetSecret("")

	assert.False(t, Enabled())

	_, err := Sign("player-1")
	assert.Equal(t, ErrNotConfigured, err)

	_, err = ValidPlayerID("abc")
	assert.Equal(t, ErrNotConfigured, err)
}

func TestValidPlayerID_WrongSecret(t *testing.T) {
	SetSecret(testSecret)
	defer SetSecret("")

	token := signClaims(t, jwtgo.StandardClaims{
		Audience: Audience,
		Issuer:   Issuer,
		Subject:  "player-1",
	}, "another-secret")

	id, err := ValidPlayerID(token)
	assert.Error(t, err)
	assert.Equal(t, "", id)
}

func TestValidPlayerID_InvalidAudience(t *testing.T) {
	SetSecret(testSecret)
	defer SetSecret("")

	token := signClaims(t, jwtgo.StandardClaims{
		Audience: "different-audience",
		Id:       uuid.New().String(),
		IssuedAt: time.Now().Unix(),
		Issuer:   Issuer,
		Subject:  "15",
	}, testSecret)

	id, err := ValidPlayerID(token)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, "", id)
}

func TestValidPlayerID_InvalidIssuer(t *testing.T) {
	SetSecret(testSecret)
	defer SetSecret("")

	token := signClaims(t, jwtgo.StandardClaims{
		Audience: Audience,
		Id:       uuid.New().String(),
		IssuedAt: time.Now().Unix(),
		Issuer:   "invalid-issuer",
		Subject:  "15",
	}, testSecret)

	id, err := ValidPlayerID(token)
	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, "", id)
}

func TestValidPlayerID_Expired(t *testing.T) {
	SetSecret(testSecret)
	defer SetSecret("")

	token := signClaims(t, jwtgo.StandardClaims{
		Audience:  Audience,
		Id:        uuid.New().String(),
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		Issuer:    Issuer,
		ExpiresAt: time.Now().Add(time.Hour * -1).Unix(),
		Subject:   "15",
	}, testSecret)

	id, err := ValidPlayerID(token)
	if err != nil {
		assert.Regexp(t, "^token is expired", err.Error())
	} else {
		t.Error("expected an error")
	}
	assert.Equal(t, "", id)
}

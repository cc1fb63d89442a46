package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestTokenManager_Generate(t *testing.T) {
	tm := NewTokenManager("secret", 24*time.Hour)

	token, exp, err := tm.Generate("12345678")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := tm.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "12345678", claims.Subject)
}

func TestTokenManager_Validate(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, _, _ := tm.Generate("12345678")

	assert.True(t, tm.Validate(token))
	assert.False(t, tm.Validate("not.a.token"))
	assert.False(t, tm.Validate(""))
}

func TestTokenManager_Validate_Expired(t *testing.T) {
	// Negative TTL yields a token whose expiry is already in the past.
	tm := NewTokenManager("secret", -time.Second)
	token, _, err := tm.Generate("12345678")
	assert.NoError(t, err)

	assert.False(t, tm.Validate(token))
	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_ExpiryBoundary(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	mk := func(exp time.Time) string {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "12345678",
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(exp),
		}}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.Secret)
		assert.NoError(t, err)
		return s
	}

	// Still inside the window one minute before expiry, rejected after it.
	assert.True(t, tm.Validate(mk(time.Now().Add(time.Minute))))
	assert.False(t, tm.Validate(mk(time.Now().Add(-time.Minute))))
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm1 := NewTokenManager("secret1", time.Hour)
	tm2 := NewTokenManager("secret2", time.Hour)

	token, _, _ := tm1.Generate("12345678")

	assert.False(t, tm2.Validate(token))
	_, err := tm2.Subject(token)
	assert.Error(t, err)
}

func TestTokenManager_Subject(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, _, _ := tm.Generate("87654321")

	sub, err := tm.Subject(token)
	assert.NoError(t, err)
	assert.Equal(t, "87654321", sub)

	_, err = tm.Subject("garbage")
	assert.Error(t, err)
}

func TestTokenManager_RejectsNonHMAC(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "12345678",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	assert.False(t, tm.Validate(s))
}

package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "test-issuer"
	testKey    = "secret-key"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 123, time.Hour, testKey)
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, token.SignedString, token.String())
	assert.Equal(t, int64(123), token.UserID)
	assert.Equal(t, testIssuer, token.Issuer)
	assert.Equal(t, "123", token.Subject)
	require.NotNil(t, token.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt.Time, 5*time.Second)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	_, err := GenerateJWTToken("", 1, time.Hour, testKey)
	assert.Error(t, err)

	_, err = GenerateJWTToken(testIssuer, 1, 0, testKey)
	assert.Error(t, err)

	_, err = GenerateJWTToken(testIssuer, 1, time.Hour, "")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 77, time.Hour, testKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testKey, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, int64(77), parsed.UserID)
	require.NotNil(t, parsed.IssuedAt)
	assert.Equal(t, token.IssuedAt.Unix(), parsed.IssuedAt.Unix())
}

func TestValidateAndParseJWTToken_Rejected(t *testing.T) {
	valid, err := GenerateJWTToken(testIssuer, 1, time.Hour, testKey)
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(valid.SignedString, "other-key", testIssuer)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(valid.SignedString, testKey, "someone-else")
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(valid.SignedString+"x", testKey, testIssuer)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
		require.NoError(t, err)

		_, err = ValidateAndParseJWTToken(signed, testKey, testIssuer)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("non numeric subject", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "abc",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
		require.NoError(t, err)

		_, err = ValidateAndParseJWTToken(signed, testKey, testIssuer)
		assert.Error(t, err)
	})
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "abc.def.ghi"} {
		_, err := ParseBearerToken(header)
		assert.Error(t, err, header)
	}
}

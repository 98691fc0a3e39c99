package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Minute, time.Hour)

	access, err := ti.NewAccessToken(42)
	require.NoError(t, err)

	claims, err := ti.ParseAuthToken(access, constants.TokenTypeAccess)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.Id)
}

func TestTokenTypeMismatch(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Minute, time.Hour)

	refresh, err := ti.NewRefreshToken(1)
	require.NoError(t, err)

	_, err = ti.ParseAuthToken(refresh, constants.TokenTypeAccess)
	assert.ErrorIs(t, err, constants.ErrUnauthorized)

	_, err = ti.ParseAuthToken(refresh, constants.TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestTokenExpired(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Minute, time.Hour)
	ti.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	access, err := ti.NewAccessToken(1)
	require.NoError(t, err)

	_, err = ti.ParseAuthToken(access, constants.TokenTypeAccess)
	assert.ErrorIs(t, err, constants.ErrUnauthorized)
}

func TestTokenWrongSecret(t *testing.T) {
	access, err := NewTokenIssuer("one", time.Minute, time.Hour).NewAccessToken(1)
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Minute, time.Hour).ParseAuthToken(access, constants.TokenTypeAccess)
	assert.ErrorIs(t, err, constants.ErrUnauthorized)
}

func TestTokenRejectsNoneAlg(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, AuthToken{UserID: 1, TokenType: constants.TokenTypeAccess})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Minute, time.Hour).ParseAuthToken(raw, constants.TokenTypeAccess)
	assert.ErrorIs(t, err, constants.ErrUnauthorized)
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokenIssuer("secret", time.Minute, time.Hour).ParseAuthToken("not-a-token", constants.TokenTypeAccess)
	assert.ErrorIs(t, err, constants.ErrUnauthorized)
}

package pkg

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParsePair(t *testing.T) {
	pair, err := GeneratePair(42, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	pair, err := GeneratePair(1, "a@b.com")
	require.NoError(t, err)

	// refresh 是另一把密钥签的，access 解析必须失败
	_, err = ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestParseAccessExpired(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		Email:  "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * AccessTTL)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-AccessTTL)),
			Subject:   "access",
		},
	})
	signed, err := token.SignedString(AccessSecret)
	require.NoError(t, err)

	_, err = ParseAccess(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshRotatesPair(t *testing.T) {
	pair, err := GeneratePair(7, "a@b.com")
	require.NoError(t, err)

	next, err := Refresh(pair.RefreshToken)
	require.NoError(t, err)
	claims, err := ParseAccess(next.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)

	// access token 不能当 refresh 用
	_, err = Refresh(pair.AccessToken)
	assert.Error(t, err)
}

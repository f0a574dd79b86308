package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// TestGenerateAndParse Token往返:生成后能解析出原始Claims
func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 168*time.Hour)

	pair, err := m.GenerateToken(7, "a@x.com", "MANAGER")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(7200), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "MANAGER", claims.Role)
	assert.Equal(t, "bookshop", claims.Issuer)
}

// TestParseToken_Expired 过期Token返回专门的错误码
func TestParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 168*time.Hour)

	pair, err := m.GenerateToken(7, "a@x.com", "USER")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

// TestParseToken_WrongSecret 密钥不匹配的Token不可信
func TestParseToken_WrongSecret(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 168*time.Hour)
	other := NewManager("another-secret", 2*time.Hour, 168*time.Hour)

	pair, err := other.GenerateToken(7, "a@x.com", "USER")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

// TestParseToken_Garbage 畸形Token
func TestParseToken_Garbage(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 168*time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.ParseToken(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	}
}

// TestRefreshAccessToken 用Refresh Token换取新的Access Token
func TestRefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 168*time.Hour)

	pair, err := m.GenerateToken(7, "a@x.com", "USER")
	require.NoError(t, err)

	newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := m.ParseToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

// TestRefreshAccessToken_ExpiredRefresh 过期的Refresh Token不能续期
func TestRefreshAccessToken_ExpiredRefresh(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, -time.Minute)

	pair, err := m.GenerateToken(7, "a@x.com", "USER")
	require.NoError(t, err)

	_, err = m.RefreshAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

// TestExpireAccessors 有效期访问器回传配置值
// 登出黑名单与会话的TTL均取自这里,与Token生命周期保持一致
func TestExpireAccessors(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 168*time.Hour)

	assert.Equal(t, 2*time.Hour, m.AccessTokenExpire())
	assert.Equal(t, 168*time.Hour, m.RefreshTokenExpire())
}

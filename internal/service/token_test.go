package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-board/internal/service"
)

func TestTokenCodec_IssueAndVerify(t *testing.T) {
	// Arrange
	codec, err := service.NewTokenCodec("test-secret", 60)
	require.NoError(t, err, "创建 TokenCodec 不应失败")

	// Act: 签发后立即验证
	token, err := codec.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := codec.Verify(token)

	// Assert: subject 声明应等于签发时的用户名
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenCodec_EmptySecret(t *testing.T) {
	_, err := service.NewTokenCodec("", 60)
	assert.Error(t, err, "空密钥应导致构造失败")
}

func TestTokenCodec_VerifyExpired(t *testing.T) {
	// Arrange: 用相同密钥手工构造一个已过期的 token
	secret := "test-secret"
	codec, err := service.NewTokenCodec(secret, 60)
	require.NoError(t, err)

	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
	})
	tokenStr, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)

	// Act
	subject, err := codec.Verify(tokenStr)

	// Assert: 过期与签名无效对调用者表现一致
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	assert.Empty(t, subject)
}

func TestTokenCodec_VerifyWrongSecret(t *testing.T) {
	// Arrange: 用一个密钥签发，用另一个密钥验证
	issuer, err := service.NewTokenCodec("secret-one", 60)
	require.NoError(t, err)
	verifier, err := service.NewTokenCodec("secret-two", 60)
	require.NoError(t, err)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	// Act
	subject, err := verifier.Verify(token)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	assert.Empty(t, subject)
}

func TestTokenCodec_VerifyGarbage(t *testing.T) {
	codec, err := service.NewTokenCodec("test-secret", 60)
	require.NoError(t, err)

	_, err = codec.Verify("not-a-jwt-at-all")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

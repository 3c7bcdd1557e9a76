package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// TokenCodec 负责签发和验证携带用户名主体的 JWT (HS256)。
// Token 本身不持久化；一个有效且未过期的 token 即授权其主体用户的操作。
type TokenCodec struct {
	secret []byte
	expiry time.Duration
}

// NewTokenCodec 创建 TokenCodec 实例。
// secret 应从安全配置中获取。expiryMinutes 定义 token 的有效期分钟数。
func NewTokenCodec(secret string, expiryMinutes int) (*TokenCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	if expiryMinutes <= 0 {
		expiryMinutes = 60 // 默认 60 分钟
	}
	return &TokenCodec{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}, nil
}

// Issue 为指定用户名签发 token，subject 声明即用户名。
func (c *TokenCodec) Issue(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
	})
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify 解析并验证 token 字符串，成功时返回 subject 声明（用户名）。
// 签名无效、格式错误和已过期统一返回 ErrInvalidToken，具体原因只记录日志。
func (c *TokenCodec) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法是否为 HMAC (HS256)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})

	if err != nil {
		logCtx := logrus.WithError(err)
		// 根据 JWT 错误类型提供更具体的日志，但对客户端返回统一错误
		var validationError *jwt.ValidationError
		if errors.As(err, &validationError) {
			if validationError.Errors&jwt.ValidationErrorExpired != 0 {
				logCtx.Warn("TokenCodec.Verify: Token is expired")
			}
			if validationError.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
				logCtx.Warn("TokenCodec.Verify: Token signature is invalid")
			}
		} else {
			logCtx.Warn("TokenCodec.Verify: Token validation failed")
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		logrus.Warn("TokenCodec.Verify: Token is valid but subject claim is missing")
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

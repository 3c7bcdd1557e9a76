package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderAuthorization 是承载 token 的请求/响应头名称。
// 登录时签发的 token 写入此响应头，后续请求从同名请求头读取。
const HeaderAuthorization = "Authorization"

// BearerPrefix 是 Authorization 头中 token 的约定前缀。
const BearerPrefix = "Bearer "

// token 在 Gin 上下文中的存储键
const tokenContextKey = "auth_token"

// BearerToken 返回一个 Gin 中间件，从 Authorization 头提取 Bearer token
// 并存入上下文。这里只做提取不做校验：token 是否缺失/有效由服务层判定，
// 以保证修改/删除操作先做帖子存在性检查。
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(tokenContextKey, extractToken(c))
		c.Next()
	}
}

// TokenFromContext 返回中间件提取到的 token，缺失时为空字符串。
func TokenFromContext(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}

// extractToken 从 Authorization 头提取 token 字符串。
// 头缺失或前缀不符时返回空字符串（对服务层表现为 token 缺失）。
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader(HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	// 使用 EqualFold 忽略 "Bearer" 的大小写
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

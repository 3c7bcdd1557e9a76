package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"post-board/internal/middleware"
	"post-board/internal/service"
)

// AuthHandler 封装了与用户注册/登录相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest 定义注册请求的结构体。
// 具体的格式规则（长度、字符集）由服务层校验，这里只要求字段存在。
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup 处理用户注册请求
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Signup: Invalid input format")
		ErrorResponse(c, 400, "Invalid input: username and password required")
		return
	}

	if err := h.authService.Signup(c.Request.Context(), req.Username, req.Password); err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, "signup complete", nil)
}

// LoginRequest 定义登录请求的结构体
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求。
// 签发的 token 通过 Authorization 响应头返回，响应体只携带成功信封。
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: Invalid input format")
		ErrorResponse(c, 400, "Invalid input: username and password required")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.Header(middleware.HeaderAuthorization, middleware.BearerPrefix+token)
	SuccessResponse(c, "login success", nil)
}

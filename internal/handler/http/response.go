package http

import "github.com/gin-gonic/gin"

// Response 是所有接口统一的响应信封。
// Data 为帖子、帖子列表或 null；StatusCode 与 HTTP 状态码保持一致。
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

// SuccessResponse 以 200 返回成功信封
func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(200, Response{StatusCode: 200, Message: message, Data: data})
}

// ErrorResponse 以指定状态码返回失败信封
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, Response{StatusCode: code, Message: message, Data: nil})
}

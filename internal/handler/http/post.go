package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"post-board/internal/middleware"
	"post-board/internal/service"
)

// PostHandler 封装了与帖子相关的 HTTP 处理逻辑
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler 创建 PostHandler 实例
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest 定义创建/修改帖子请求的结构体。
// Username 字段为兼容旧客户端保留，但帖子归属只取自 token 主体，
// 该字段不参与任何判断。
type PostRequest struct {
	Username string `json:"username"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
}

// List 处理帖子列表查询，不需要认证
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, "post list retrieved", posts)
}

// Get 处理帖子详情查询，不需要认证
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, fmt.Sprintf("post %d retrieved", id), post)
}

// Create 处理创建帖子请求
func (h *PostHandler) Create(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Create: Invalid input format")
		ErrorResponse(c, 400, "Invalid input: title is required")
		return
	}

	token := middleware.TokenFromContext(c)
	post, err := h.postService.CreatePost(c.Request.Context(), token, req.Title, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, "post created", post)
}

// Update 处理修改帖子请求
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Update: Invalid input format")
		ErrorResponse(c, 400, "Invalid input: title is required")
		return
	}

	token := middleware.TokenFromContext(c)
	post, err := h.postService.UpdatePost(c.Request.Context(), id, token, req.Title, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, fmt.Sprintf("post %d updated", id), post)
}

// Delete 处理删除帖子请求
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	token := middleware.TokenFromContext(c)
	if err := h.postService.DeletePost(c.Request.Context(), id, token); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, fmt.Sprintf("post %d deleted", id), nil)
}

// parsePostID 解析路径参数中的帖子 ID，非法时直接写出 400 响应。
func parsePostID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		logrus.WithField("id", idStr).Warn("Invalid post id in path")
		ErrorResponse(c, 400, "Invalid post id")
		return 0, false
	}
	return uint(id), true
}

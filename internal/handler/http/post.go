package http

import (
	"net/http"

	"microblog/internal/domain"
	"microblog/internal/middleware"
	"microblog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PostHandler 封装了与文章管理相关的 HTTP 处理逻辑
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler 创建 PostHandler 实例
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// List 处理获取所有文章的请求 (公开)
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Handler.List: Failed to list posts")
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, posts)
}

// Get 处理获取单篇文章的请求 (公开)
func (h *PostHandler) Get(c *gin.Context) {
	postID := c.Param("id")
	post, err := h.postService.Get(c.Request.Context(), postID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, post)
}

// CreatePostRequest 定义创建文章请求的结构体。
// 客户端提交的 id/user_id/date 不在结构体内，服务端的值总是生效，防止伪造归属。
type CreatePostRequest struct {
	Body string `json:"body" binding:"required"`
}

// Create 处理创建文章的请求 (需认证)
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	logCtx := logrus.WithField("user_id", user.ID)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logCtx.WithError(err).Warn("Handler.Create: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: body is required")
		return
	}

	post, err := h.postService.Create(c.Request.Context(), user.ID, req.Body)
	if err != nil {
		logCtx.WithError(err).Error("Handler.Create: Failed to create post via service")
		HandleServiceError(c, err)
		return
	}

	logCtx.WithField("post_id", post.ID).Info("Handler.Create: Post created successfully")
	SuccessResponse(c, http.StatusOK, post)
}

// UpdatePostRequest 定义部分更新文章请求的结构体。
// 指针字段区分 "未携带" 和 "携带空值"；user_id 这类字段不在结构体内，
// 请求里即使出现也会被静默忽略 (保持原有行为)。
type UpdatePostRequest struct {
	Body *string `json:"body"`
}

// Update 处理编辑文章的请求 (需认证，仅限作者)
func (h *PostHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	postID := c.Param("id")
	logCtx := logrus.WithFields(logrus.Fields{"user_id": user.ID, "post_id": postID})

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logCtx.WithError(err).Warn("Handler.Update: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input format")
		return
	}

	post, err := h.postService.Update(c.Request.Context(), postID, user.ID, service.PostUpdate{
		Body: req.Body,
	})
	if err != nil {
		logCtx.WithError(err).Warn("Handler.Update: Failed to update post via service")
		HandleServiceError(c, err)
		return
	}

	logCtx.Info("Handler.Update: Post updated successfully")
	SuccessResponse(c, http.StatusOK, post)
}

// Delete 处理删除文章的请求 (需认证，仅限作者)
// 成功时返回被删除的记录。
func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	postID := c.Param("id")
	logCtx := logrus.WithFields(logrus.Fields{"user_id": user.ID, "post_id": postID})

	post, err := h.postService.Delete(c.Request.Context(), postID, user.ID)
	if err != nil {
		logCtx.WithError(err).Warn("Handler.Delete: Failed to delete post via service")
		HandleServiceError(c, err)
		return
	}

	logCtx.Info("Handler.Delete: Post deleted successfully")
	SuccessResponse(c, http.StatusOK, post)
}

// currentUser 从 Gin 上下文中取出 Auth 中间件解析好的用户。
// 取不到说明中间件缺失或失败，直接写响应并返回 false。
func currentUser(c *gin.Context) (*domain.User, bool) {
	userAny, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		logrus.Warn("Handler: User not found in context, middleware missing or failed?")
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return nil, false
	}
	user, ok := userAny.(*domain.User)
	if !ok {
		logrus.Error("Handler: User in context is not *domain.User")
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error processing user")
		return nil, false
	}
	return user, true
}

// Package middleware 提供 Gin 中间件。
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"microblog/internal/service"
)

// ContextUserKey 是认证用户在 Gin 上下文中的键。
const ContextUserKey = "current_user"

// Auth 返回一个 Gin 中间件，用于验证 bearer token 并解析当前用户。
// token 的验证和 subject 解析委托给 AuthService.ResolveToken，
// 任何一步失败都以 401 终止请求链，绝不落到 handler。
func Auth(authService *service.AuthService) gin.HandlerFunc {
	// 在创建中间件时就进行检查，避免运行时 panic
	if authService == nil {
		panic("AuthService cannot be nil for Auth middleware")
	}

	return func(c *gin.Context) {
		// 1. 从请求头提取 Token
		tokenStr, err := extractToken(c)
		if err != nil {
			if errors.Is(err, ErrMissingAuthHeader) {
				logrus.Warn("Auth middleware: Missing Authorization header")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			} else {
				logrus.Warnf("Auth middleware: Malformed token format: %v", err)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			}
			c.Abort() // 终止请求处理链
			return
		}

		// 2. 验证 Token 并解析回用户记录
		user, err := authService.ResolveToken(c.Request.Context(), tokenStr)
		if err != nil {
			logCtx := logrus.WithError(err)
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				logCtx.Warn("Auth middleware: Token is expired")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			case errors.Is(err, service.ErrUnknownSubject):
				logCtx.Warn("Auth middleware: Token subject unknown")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			case errors.Is(err, service.ErrInvalidToken):
				logCtx.Warn("Auth middleware: Invalid token")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			default:
				// 仓库层故障，不属于认证失败
				logCtx.Error("Auth middleware: Internal error resolving token")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process token"})
			}
			c.Abort()
			return
		}

		// 3. 将当前用户存储在 Gin 上下文中，供后续处理程序使用
		c.Set(ContextUserKey, user)
		logrus.WithField("user_id", user.ID).Debug("Auth middleware: User authenticated via JWT")

		c.Next() // 继续处理请求链
	}
}

// ErrMissingAuthHeader 定义一个自定义错误，用于表示缺少 Authorization 头
var ErrMissingAuthHeader = errors.New("missing Authorization header")

// extractToken 从 Gin 上下文中提取 Bearer Token
func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	// Authorization header 格式应为 "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	// 使用 EqualFold 忽略 "Bearer" 的大小写
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", jwt.ErrTokenMalformed
	}
	return parts[1], nil
}

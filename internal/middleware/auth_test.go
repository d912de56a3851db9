package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"microblog/internal/domain"
	"microblog/internal/middleware"
	"microblog/internal/repository"
	"microblog/internal/repository/mocks"
	"microblog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

// newProtectedRouter 构造一个带 Auth 中间件的测试路由，
// 受保护的 handler 会把解析出的用户名写回响应。
func newProtectedRouter(t *testing.T, mockUserRepo *mocks.UserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService, err := service.NewAuthService(mockUserRepo, testSecret, 30)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", middleware.Auth(authService), func(c *gin.Context) {
		userAny, _ := c.Get(middleware.ContextUserKey)
		user := userAny.(*domain.User)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return router
}

// signToken 用测试密钥签发一个 token
func signToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	tokenStr, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tokenStr
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	router := newProtectedRouter(t, mockUserRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
	// 未认证的请求不应触及用户存储
	mockUserRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_MalformedScheme(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	router := newProtectedRouter(t, mockUserRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token format")
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	router := newProtectedRouter(t, mockUserRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	router := newProtectedRouter(t, mockUserRepo)

	tokenStr := signToken(t, "alice", time.Now().Add(-1*time.Minute))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestAuthMiddleware_UnknownSubject(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	router := newProtectedRouter(t, mockUserRepo)

	mockUserRepo.On("FindByUsername", mock.Anything, "ghost").
		Return(nil, repository.ErrUserNotFound).Once()

	tokenStr := signToken(t, "ghost", time.Now().Add(30*time.Minute))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	router := newProtectedRouter(t, mockUserRepo)

	userInDb := &domain.User{ID: "u-1", Username: "alice"}
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").Return(userInDb, nil).Once()

	tokenStr := signToken(t, "alice", time.Now().Add(30*time.Minute))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice", "handler 应能读到解析出的用户")
	mockUserRepo.AssertExpectations(t)
}

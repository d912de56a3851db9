package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"microblog/internal/domain"
	"microblog/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 负责用户认证相关的业务逻辑：
// 注册、登录、token 签发与逐请求的身份解析。
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte        // 存储密钥的字节形式
	jwtExpiry time.Duration // JWT 过期时间
}

// NewAuthService 创建 AuthService 实例。
// jwtSecretKey 应从安全配置中获取。
// jwtExpiryMinutes 定义 token 过期的分钟数。
func NewAuthService(userRepo repository.UserRepository, jwtSecretKey string, jwtExpiryMinutes int) (*AuthService, error) {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if jwtSecretKey == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	if jwtExpiryMinutes <= 0 {
		jwtExpiryMinutes = 30 // 默认 30 分钟
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecretKey),
		jwtExpiry: time.Duration(jwtExpiryMinutes) * time.Minute,
	}, nil
}

// Register 处理用户注册。
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	logCtx := logrus.WithField("username", username)

	// 1. 基本验证
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	// 2. 预检查用户名是否已被占用
	// 检查和写入不是原子的，并发注册同名用户的竞态由存储层唯一索引关闭 (见 Save 的错误处理)
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		logCtx.WithError(err).Error("Database error checking username availability")
		return nil, ErrInternalServer
	}
	if existing != nil {
		logCtx.Warn("Registration failed: Username already exists")
		return nil, ErrDuplicateUsername
	}

	// 3. 哈希密码
	hashedPassword, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	// 4. 创建用户对象
	user := &domain.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: hashedPassword,
	}

	// 5. 保存用户 (调用 Repository 接口)
	err = s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			// 两个并发注册都通过了预检查时，唯一索引保证至少一方走到这里
			logCtx.WithError(err).Warn("Registration failed: Username already exists (unique index)")
			return nil, ErrDuplicateUsername
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	user.Password = "" // 清除密码哈希再返回
	return user, nil
}

// Login 处理用户登录。
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	// 1. 查找用户
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: User not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: Error finding user")
		}
		// 对客户端统一返回认证失败，避免泄露用户是否存在
		return "", ErrAuthenticationFailed
	}
	// 防御性检查，以防仓库实现返回 nil, nil
	if user == nil {
		logCtx.Warn("Login attempt failed: User not found (repo returned nil user without error)")
		return "", ErrAuthenticationFailed
	}

	// 2. 验证密码
	if !checkPassword(password, user.Password) {
		logCtx.Warn("Login attempt failed: Invalid password")
		return "", ErrAuthenticationFailed
	}

	// 3. 生成 JWT Token (subject 为用户名)
	token, err := s.generateJWT(user.Username)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate JWT token during login")
		return "", ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	return token, nil
}

// ResolveToken 验证 bearer token 并解析回对应的用户记录。
// 任何一步失败都映射为认证错误，不会以服务端故障的形式暴露：
//  1. 签名无效或无法解码 -> ErrInvalidToken
//  2. 已过期            -> ErrTokenExpired
//  3. subject 不存在    -> ErrUnknownSubject
func (s *AuthService) ResolveToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法是否为 HMAC (HS256)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		// 区分过期和其他验证失败；jwt 库将具体原因编码在 ValidationError 的位标志里
		var validationError *jwt.ValidationError
		if errors.As(err, &validationError) && validationError.Errors&jwt.ValidationErrorExpired != 0 {
			logrus.Debug("ResolveToken: Token is expired")
			return nil, ErrTokenExpired
		}
		logrus.WithError(err).Warn("ResolveToken: Token validation failed")
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		logrus.Warn("ResolveToken: Invalid token or claims type")
		return nil, ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		logrus.Warn("ResolveToken: 'sub' claim missing or not a string")
		return nil, ErrInvalidToken
	}

	// 将 subject 解析回存储中的用户记录
	user, err := s.userRepo.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logrus.WithField("subject", subject).Warn("ResolveToken: Token subject no longer exists")
			return nil, ErrUnknownSubject
		}
		logrus.WithError(err).Error("ResolveToken: Database error resolving token subject")
		return nil, ErrInternalServer
	}
	if user == nil { // 防御
		return nil, ErrUnknownSubject
	}
	return user, nil
}

// --- 私有辅助函数 ---

// hashPassword 使用 bcrypt 对密码进行哈希处理
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// checkPassword 验证提供的密码是否与存储的哈希匹配。
// 哈希格式损坏时 CompareHashAndPassword 返回错误，这里一律视为不匹配 (fail closed)。
func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// generateJWT 为指定用户名生成 JWT Token
func (s *AuthService) generateJWT(username string) (string, error) {
	// 签名覆盖全部 claims，过期时间无法在不持有密钥的情况下被延长
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(s.jwtExpiry).Unix(),
		"iat": time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

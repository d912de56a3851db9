// Package mocks 提供 repository 接口的 testify mock 实现，供 Service 层测试使用。
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"microblog/internal/domain"
)

// UserRepository 是 repository.UserRepository 的 mock 实现
type UserRepository struct {
	mock.Mock
}

// FindByUsername 按设置的预期返回用户或错误
func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// Create 按设置的预期返回错误
func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

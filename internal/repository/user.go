package repository

import (
	"context"

	"microblog/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// FindByUsername 根据用户名查找用户。
	// 如果用户不存在，应返回明确的错误 repository.ErrUserNotFound。
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create 创建新用户记录 (本系统中用户创建后不再更新)。
	// 如果违反唯一约束 (用户名已存在)，应返回 repository.ErrDuplicateEntry。
	Create(ctx context.Context, user *domain.User) error
}

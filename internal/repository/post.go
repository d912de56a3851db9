package repository

import (
	"context"

	"microblog/internal/domain"
)

// PostRepository 定义了文章数据的存储和检索操作。
type PostRepository interface {
	// FindByID 根据文章 ID 查找文章。
	// 如果文章不存在，应返回明确的错误 repository.ErrPostNotFound。
	FindByID(ctx context.Context, id string) (*domain.Post, error)

	// FindAll 返回所有文章 (本项目规模下不做分页)。
	FindAll(ctx context.Context) ([]domain.Post, error)

	// Create 创建新文章记录。
	// 主键由调用方预先生成 (UUID)，因此创建和更新必须走不同方法：
	// GORM 的 Save 对已设置主键的新记录不会走干净的 INSERT 路径。
	Create(ctx context.Context, post *domain.Post) error

	// Save 更新已存在的文章信息。
	Save(ctx context.Context, post *domain.Post) error

	// Delete 删除指定的文章记录。
	Delete(ctx context.Context, post *domain.Post) error
}

package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"microblog/internal/domain"
	"microblog/internal/repository"
)

// GormPostRepository 是 PostRepository 接口的 GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository 创建 GormPostRepository 实例
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

// FindByID 实现根据文章 ID 查找文章
func (r *GormPostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id '%s': %w", id, err)
	}
	return &post, nil
}

// FindAll 实现查询所有文章
func (r *GormPostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).Find(&posts).Error
	if err != nil {
		// 批量查询不会返回 ErrRecordNotFound，空结果是合法的
		return nil, fmt.Errorf("gorm: find all posts: %w", err)
	}
	return posts, nil
}

// Create 实现创建新文章记录 (主键为预生成的 UUID，走 Create 而不是 Save)
func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	result := r.db.WithContext(ctx).Create(post)
	err := result.Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create post (id: %s, user_id: %s): %w", post.ID, post.UserID, err)
	}
	return nil
}

// Save 实现更新已存在的文章信息
func (r *GormPostRepository) Save(ctx context.Context, post *domain.Post) error {
	result := r.db.WithContext(ctx).Save(post)
	err := result.Error
	if err != nil {
		return fmt.Errorf("gorm: save post (id: %s, user_id: %s): %w", post.ID, post.UserID, err)
	}
	return nil
}

// Delete 实现删除文章记录
func (r *GormPostRepository) Delete(ctx context.Context, post *domain.Post) error {
	result := r.db.WithContext(ctx).Delete(post)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete post (id: %s): %w", post.ID, result.Error)
	}
	return nil
}

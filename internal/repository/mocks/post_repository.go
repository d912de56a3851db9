package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"microblog/internal/domain"
)

// PostRepository 是 repository.PostRepository 的 mock 实现
type PostRepository struct {
	mock.Mock
}

// FindByID 按设置的预期返回文章或错误
func (m *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	var post *domain.Post
	if args.Get(0) != nil {
		post = args.Get(0).(*domain.Post)
	}
	return post, args.Error(1)
}

// FindAll 按设置的预期返回文章列表或错误
func (m *PostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	var posts []domain.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.Post)
	}
	return posts, args.Error(1)
}

// Create 按设置的预期返回错误
func (m *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// Save 按设置的预期返回错误
func (m *PostRepository) Save(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// Delete 按设置的预期返回错误
func (m *PostRepository) Delete(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

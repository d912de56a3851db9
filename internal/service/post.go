package service

import (
	"context"
	"errors"
	"time"

	"microblog/internal/domain"
	"microblog/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// dateLayout 是文章发布时间的存储格式。
const dateLayout = "2006-01-02 15:04:05"

// PostService 负责文章管理相关的业务逻辑。
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService 创建 PostService 实例。
func NewPostService(postRepo repository.PostRepository) *PostService {
	if postRepo == nil {
		panic("PostRepository cannot be nil for PostService")
	}
	return &PostService{postRepo: postRepo}
}

// PostUpdate 描述一次部分更新中显式出现的字段。
// 指针为 nil 表示请求中未携带该字段；所有者字段不在掩码内，
// 客户端携带的 user_id 在绑定阶段就被丢弃 (保持原有的静默忽略行为)。
type PostUpdate struct {
	Body *string
}

// List 返回所有文章。
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list posts")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// Get 根据 ID 返回单篇文章。
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.findPost(ctx, id)
}

// Create 创建一篇新文章。
// ID、所有者和发布时间一律由服务端生成，客户端提交的同名字段不参与。
func (s *PostService) Create(ctx context.Context, authorID, body string) (*domain.Post, error) {
	logCtx := logrus.WithField("user_id", authorID)

	post := &domain.Post{
		ID:     uuid.NewString(),
		UserID: authorID,
		Body:   body,
		Date:   time.Now().Format(dateLayout),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		logCtx.WithError(err).Error("Failed to save new post to database")
		return nil, ErrInternalServer
	}

	logCtx.WithField("post_id", post.ID).Info("Post created successfully")
	return post, nil
}

// Update 对指定文章应用部分更新。
// 检查顺序：先存在性 (ErrPostNotFound)，后所有权 (ErrForbidden)，
// 因此任何已认证调用者都能得知文章是否存在——这是刻意保留的简单性取舍。
func (s *PostService) Update(ctx context.Context, id, callerID string, upd PostUpdate) (*domain.Post, error) {
	logCtx := logrus.WithFields(logrus.Fields{"post_id": id, "user_id": callerID})

	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if !post.IsOwnedBy(callerID) {
		logCtx.Warn("Update rejected: Caller is not the post owner")
		return nil, ErrForbidden
	}

	// 只应用请求中显式出现的字段
	if upd.Body != nil {
		post.Body = *upd.Body
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("Failed to save updated post to database")
		return nil, ErrInternalServer
	}

	logCtx.Info("Post updated successfully")
	return post, nil
}

// Delete 删除指定文章并返回被删除的记录。
// 检查顺序与 Update 一致：先存在性，后所有权。
func (s *PostService) Delete(ctx context.Context, id, callerID string) (*domain.Post, error) {
	logCtx := logrus.WithFields(logrus.Fields{"post_id": id, "user_id": callerID})

	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if !post.IsOwnedBy(callerID) {
		logCtx.Warn("Delete rejected: Caller is not the post owner")
		return nil, ErrForbidden
	}

	if err := s.postRepo.Delete(ctx, post); err != nil {
		logCtx.WithError(err).Error("Failed to delete post from database")
		return nil, ErrInternalServer
	}

	logCtx.Info("Post deleted successfully")
	return post, nil
}

// findPost 查找文章并把仓库层错误映射为业务错误。
func (s *PostService) findPost(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			logrus.WithField("post_id", id).Warn("Post not found")
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", id).Error("Repository error finding post")
		return nil, ErrInternalServer
	}
	if post == nil { // 防御
		return nil, ErrPostNotFound
	}
	return post, nil
}

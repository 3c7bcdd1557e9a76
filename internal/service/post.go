package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"post-board/internal/domain"
	"post-board/internal/repository"
)

// PostService 负责帖子的查询和授权门控的增删改。
// 三个变更操作遵循同一套授权协议：先定位目标帖子（修改/删除），
// 再检查 token 是否存在、是否有效，最后比较 token 主体与帖子所有者。
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	codec    *TokenCodec
}

// NewPostService 创建 PostService 实例。
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, codec *TokenCodec) *PostService {
	if postRepo == nil {
		panic("PostRepository cannot be nil for PostService")
	}
	if userRepo == nil {
		panic("UserRepository cannot be nil for PostService")
	}
	if codec == nil {
		panic("TokenCodec cannot be nil for PostService")
	}
	return &PostService{postRepo: postRepo, userRepo: userRepo, codec: codec}
}

// ListPosts 返回全部帖子，按创建时间倒序。不需要认证。
func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.FindAllByCreatedAtDesc(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list posts")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// GetPost 根据 ID 返回单个帖子。不需要认证。
func (s *PostService) GetPost(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			logrus.WithField("post_id", id).Warn("GetPost: Post not found")
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", id).Error("GetPost: Repository error")
		return nil, ErrInternalServer
	}
	return post, nil
}

// CreatePost 创建帖子。所有者严格取自已验证 token 的 subject，
// 请求体里声明的用户名不参与归属判断。
func (s *PostService) CreatePost(ctx context.Context, token, title, content string) (*domain.Post, error) {
	// 1. Token 检查
	username, err := s.verifyToken(token)
	if err != nil {
		return nil, err
	}
	logCtx := logrus.WithField("username", username)

	// 2. 确认操作用户仍然存在（token 本身不能证明这一点）
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("CreatePost: Token subject no longer exists")
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("CreatePost: Database error resolving user")
		return nil, ErrInternalServer
	}

	// 3. 保存帖子
	post := &domain.Post{
		Username: user.Username,
		Title:    title,
		Content:  content,
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("CreatePost: Failed to save post")
		return nil, ErrInternalServer
	}

	logCtx.WithField("post_id", post.ID).Info("Post created successfully")
	return post, nil
}

// UpdatePost 修改帖子的标题和内容。所有者和 ID 不可变更。
func (s *PostService) UpdatePost(ctx context.Context, id uint, token, title, content string) (*domain.Post, error) {
	logCtx := logrus.WithField("post_id", id)

	// 1. 先定位目标帖子（存在性检查先于 token 检查）
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. Token 检查
	username, err := s.verifyToken(token)
	if err != nil {
		return nil, err
	}

	// 3. 所有权比较
	if post.Username != username {
		logCtx.WithField("username", username).Warn("UpdatePost: Ownership mismatch")
		return nil, fmt.Errorf("cannot edit post %d: %w", id, ErrForbidden)
	}

	// 4. 执行修改
	post.Title = title
	post.Content = content
	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("UpdatePost: Failed to save post")
		return nil, ErrInternalServer
	}

	logCtx.WithField("username", username).Info("Post updated successfully")
	return post, nil
}

// DeletePost 删除帖子，授权协议与 UpdatePost 相同。
func (s *PostService) DeletePost(ctx context.Context, id uint, token string) error {
	logCtx := logrus.WithField("post_id", id)

	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}

	username, err := s.verifyToken(token)
	if err != nil {
		return err
	}

	if post.Username != username {
		logCtx.WithField("username", username).Warn("DeletePost: Ownership mismatch")
		return fmt.Errorf("cannot delete post %d: %w", id, ErrForbidden)
	}

	if err := s.postRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		logCtx.WithError(err).Error("DeletePost: Failed to delete post")
		return ErrInternalServer
	}

	logCtx.WithField("username", username).Info("Post deleted successfully")
	return nil
}

// findPost 定位目标帖子并映射仓库错误。
func (s *PostService) findPost(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			logrus.WithField("post_id", id).Warn("Post not found")
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", id).Error("Repository error finding post")
		return nil, ErrInternalServer
	}
	return post, nil
}

// verifyToken 统一处理 token 缺失与无效两种失败。
func (s *PostService) verifyToken(token string) (string, error) {
	if token == "" {
		logrus.Warn("Mutation rejected: Token is missing")
		return "", ErrMissingToken
	}
	username, err := s.codec.Verify(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return username, nil
}

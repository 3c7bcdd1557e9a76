package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"post-board/internal/domain"
	"post-board/internal/repository"
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

// FindByID 实现根据 ID 查找帖子
func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).First(&post, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d: %w", id, err)
	}
	return &post, nil
}

// FindAllByCreatedAtDesc 实现按创建时间倒序列出全部帖子
func (r *GormPostRepository) FindAllByCreatedAtDesc(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list posts: %w", err)
	}
	return posts, nil
}

// Save 实现保存帖子（创建或更新）
// GORM 的 Save 方法会根据主键是否为零值决定是 INSERT 还是 UPDATE。
func (r *GormPostRepository) Save(ctx context.Context, post *domain.Post) error {
	err := r.db.WithContext(ctx).Save(post).Error
	if err != nil {
		return fmt.Errorf("gorm: save post (id: %d, username: %s): %w", post.ID, post.Username, err)
	}
	return nil
}

// DeleteByID 实现根据 ID 删除帖子
func (r *GormPostRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Post{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete post %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		// 删除前服务层已做存在性检查，这里仍然兜底
		return repository.ErrPostNotFound
	}
	return nil
}

package repository

import (
	"context"

	"post-board/internal/domain"
)

// PostRepository 定义了帖子数据的存储和检索操作。
type PostRepository interface {
	// FindByID 根据帖子 ID 查找帖子。
	// 如果帖子不存在，返回 ErrPostNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// FindAllByCreatedAtDesc 返回全部帖子，按创建时间倒序排列。
	FindAllByCreatedAtDesc(ctx context.Context) ([]domain.Post, error)

	// Save 保存帖子（ID 为零值时创建，否则更新）。
	Save(ctx context.Context, post *domain.Post) error

	// DeleteByID 根据 ID 删除帖子。
	// 如果帖子不存在，返回 ErrPostNotFound。
	DeleteByID(ctx context.Context, id uint) error
}

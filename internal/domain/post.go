package domain

import "time"

// Post 表示一篇帖子。Username 指向帖子所有者，创建后不可变更；
// 只有 Title 和 Content 允许修改。
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(191);index:idx_post_username;not null" json:"username"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"` // 列表按此字段倒序排列
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

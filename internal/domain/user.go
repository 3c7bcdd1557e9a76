// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import "time"

// User 表示一个注册用户。用户名即主键，注册后不可变更。
type User struct {
	Username  string    `gorm:"primaryKey;type:varchar(191)" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"` // 存储的是 bcrypt 哈希，序列化时隐藏
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

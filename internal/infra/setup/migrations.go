package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"post-board/internal/domain"
)

// MigrateDB 执行全部数据库迁移。
// users 表用原生 SQL 创建以控制主键列的长度（MySQL 对 TEXT 主键/索引有限制），
// posts 表交给 AutoMigrate。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	if err := migrateUsersTable(db); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}

	if err := db.AutoMigrate(&domain.Post{}); err != nil {
		logrus.Errorf("Failed to auto-migrate posts table: %v", err)
		return fmt.Errorf("failed to auto-migrate posts table: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

// migrateUsersTable 创建或更新 users 表
func migrateUsersTable(db *gorm.DB) error {
	var count int64
	db.Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'users'").Count(&count)

	if count == 0 {
		return createUsersTable(db)
	}
	// 已存在时让 AutoMigrate 补齐缺失的列
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		logrus.Errorf("Failed to auto-migrate users table: %v", err)
		return fmt.Errorf("failed to migrate users table schema: %w", err)
	}
	logrus.Info("Users table schema checked/updated successfully")
	return nil
}

// createUsersTable 使用原生 SQL 创建 users 表
func createUsersTable(db *gorm.DB) error {
	sql := `
	CREATE TABLE users (
		username VARCHAR(191) NOT NULL PRIMARY KEY,
		password TEXT NOT NULL,
		created_at DATETIME(3),
		updated_at DATETIME(3)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
	`
	if err := db.Exec(sql).Error; err != nil {
		logrus.Errorf("Failed to create users table: %v", err)
		return fmt.Errorf("failed to create users table: %w", err)
	}
	logrus.Info("Users table created successfully")
	return nil
}

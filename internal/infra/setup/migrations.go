package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"microblog/internal/domain"
)

// MigrateDB handles all database migrations using the provided GORM DB instance.
// 返回错误以便调用者知道迁移是否成功。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	// 迁移 Users 表
	if err := migrateUsersTable(db); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}

	// 迁移 Posts 表
	if err := migratePostsTable(db); err != nil {
		return fmt.Errorf("failed to migrate posts table: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

// migrateUsersTable 处理 Users 表迁移，并返回错误
func migrateUsersTable(db *gorm.DB) error {
	var count int64
	db.Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'users'").Count(&count)

	if count == 0 {
		return createUsersTable(db)
	}
	// 表已存在时让 AutoMigrate 补齐新列或索引
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		logrus.Errorf("Failed to auto-migrate User table: %v", err)
		return fmt.Errorf("failed to auto-migrate users table: %w", err)
	}
	logrus.Info("Users table schema checked/updated successfully")
	return nil
}

// createUsersTable 创建 users 表，并返回错误
func createUsersTable(db *gorm.DB) error {
	sql := `
	CREATE TABLE users (
		id CHAR(36) PRIMARY KEY,
		username VARCHAR(191) NOT NULL, -- 限制长度以匹配索引
		password TEXT NOT NULL,
		created_at DATETIME(3),
		updated_at DATETIME(3),
		UNIQUE INDEX idx_username (username) -- 唯一索引负责关闭并发注册竞态
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
	`
	if err := db.Exec(sql).Error; err != nil {
		logrus.Errorf("Failed to create users table: %v", err)
		return fmt.Errorf("failed to create users table: %w", err)
	}
	logrus.Info("Users table created successfully")
	return nil
}

// migratePostsTable 处理 Posts 表迁移，并返回错误
func migratePostsTable(db *gorm.DB) error {
	var count int64
	db.Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'posts'").Count(&count)

	if count == 0 {
		return createPostsTable(db)
	}
	if err := db.AutoMigrate(&domain.Post{}); err != nil {
		logrus.Errorf("Failed to auto-migrate Post table: %v", err)
		return fmt.Errorf("failed to auto-migrate posts table: %w", err)
	}
	logrus.Info("Posts table schema checked/updated successfully")
	return nil
}

// createPostsTable 创建 posts 表，并返回错误
func createPostsTable(db *gorm.DB) error {
	sql := `
	CREATE TABLE posts (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		body TEXT,
		date VARCHAR(19),
		INDEX idx_user_id (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
	`
	if err := db.Exec(sql).Error; err != nil {
		logrus.Errorf("Failed to create posts table: %v", err)
		return fmt.Errorf("failed to create posts table: %w", err)
	}
	logrus.Info("Posts table created successfully")
	return nil
}

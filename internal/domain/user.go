// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import "time"

// User 表示应用程序中的用户。
type User struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"` // 用户唯一标识符 (UUID 字符串主键, 创建时生成, 不可变)
	Username  string    `gorm:"type:varchar(191);uniqueIndex:idx_username;not null" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"` // 存储的是 bcrypt 哈希后的密码，绝不返回给客户端
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`     // 用户记录创建时间 (GORM 自动填充)
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`     // 用户记录最后更新时间 (GORM 自动填充)
}

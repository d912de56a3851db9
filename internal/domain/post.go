package domain

// Post 表示一篇由某个用户发布的文章。
type Post struct {
	ID     string `gorm:"type:char(36);primaryKey" json:"id"`        // 文章唯一标识符 (UUID 字符串主键, 创建时生成)
	UserID string `gorm:"type:char(36);index:idx_user_id;not null" json:"user_id"` // 发布该文章的用户 ID (外键关联到 User.ID, 创建后不再变更)
	Body   string `gorm:"type:text" json:"body"`
	Date   string `gorm:"type:varchar(19)" json:"date"` // 发布时间字符串 ("2006-01-02 15:04:05"), 服务端在创建时写入, 编辑不更新
}

// IsOwnedBy 判断文章是否属于指定用户。
// 作为纯谓词提供，更新/删除前的所有权检查都走这里。
func (p *Post) IsOwnedBy(userID string) bool {
	return p.UserID == userID
}

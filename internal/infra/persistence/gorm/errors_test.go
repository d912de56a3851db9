package gormpersistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateEntryError(t *testing.T) {
	// MySQL 驱动的类型化错误 (1062)
	mysqlErr := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'idx_username'"}
	assert.True(t, isDuplicateEntryError(mysqlErr))
	assert.True(t, isDuplicateEntryError(fmt.Errorf("gorm: save user: %w", mysqlErr)), "包装后的驱动错误也应被识别")

	// 其他 MySQL 错误号不应误判
	otherErr := &mysql.MySQLError{Number: 1146, Message: "Table 'microblog_db.users' doesn't exist"}
	assert.False(t, isDuplicateEntryError(otherErr))

	// 字符串后备检查 (SQLite / PostgreSQL)
	assert.True(t, isDuplicateEntryError(errors.New("UNIQUE constraint failed: users.username")))
	assert.True(t, isDuplicateEntryError(errors.New(`pq: duplicate key value violates unique constraint "idx_username"`)))

	assert.False(t, isDuplicateEntryError(nil))
	assert.False(t, isDuplicateEntryError(errors.New("connection refused")))
}

package models

// User 表示登录用户的凭证记录。
// user_name列在MySQL上由迁移改为utf8mb4_bin collation，保证比较和唯一索引区分大小写。
type User struct {
	BaseModel
	UserName string `gorm:"type:varchar(50);unique;not null" json:"user_name"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
}

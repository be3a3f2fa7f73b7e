package model

import "time"

// User 钱包用户，以公钥作为唯一标识，创建后不更新不删除
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PublicKey string    `gorm:"column:public_key;not null;uniqueIndex:uq_users_public_key" json:"public_key"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

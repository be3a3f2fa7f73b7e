package model

import "time"

// FavoriteToken 用户收藏的代币地址
//
// public_key 按值引用 users.public_key，不建外键约束。
type FavoriteToken struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PublicKey    string    `gorm:"column:public_key;not null;uniqueIndex:uq_favorite_tokens_key_address,priority:1;index:idx_favorite_tokens_public_key" json:"public_key"`
	TokenAddress string    `gorm:"column:token_address;not null;uniqueIndex:uq_favorite_tokens_key_address,priority:2" json:"token_address"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_favorite_tokens_created_at" json:"created_at"`
}

func (FavoriteToken) TableName() string {
	return "favorite_tokens"
}

// AllModels 需要自动迁移的表
func AllModels() []interface{} {
	return []interface{}{&User{}, &FavoriteToken{}}
}

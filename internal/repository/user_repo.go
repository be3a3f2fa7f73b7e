package repository

import (
	"context"

	"orbittrack/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户，公钥重复时返回唯一约束错误
func (r *UserRepository) Create(ctx context.Context, publicKey string) (*model.User, error) {
	user := &model.User{PublicKey: publicKey}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByPublicKey 根据公钥查询用户
func (r *UserRepository) GetByPublicKey(ctx context.Context, publicKey string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("public_key = ?", publicKey).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

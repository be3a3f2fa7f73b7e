package repository

import (
	"context"

	"orbittrack/internal/model"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create 新增收藏，(public_key, token_address) 重复时返回唯一约束错误
func (r *FavoriteRepository) Create(ctx context.Context, publicKey, tokenAddress string) (*model.FavoriteToken, error) {
	fav := &model.FavoriteToken{PublicKey: publicKey, TokenAddress: tokenAddress}
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		return nil, err
	}
	return fav, nil
}

// Delete 删除收藏，返回是否有记录被删除
func (r *FavoriteRepository) Delete(ctx context.Context, publicKey, tokenAddress string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("public_key = ? AND token_address = ?", publicKey, tokenAddress).
		Delete(&model.FavoriteToken{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, publicKey, tokenAddress string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FavoriteToken{}).
		Where("public_key = ? AND token_address = ?", publicKey, tokenAddress).
		Count(&count).Error
	return count > 0, err
}

// ListByPublicKey 获取用户的全部收藏，最新的在前
func (r *FavoriteRepository) ListByPublicKey(ctx context.Context, publicKey string) ([]model.FavoriteToken, error) {
	favorites := make([]model.FavoriteToken, 0)
	err := r.db.WithContext(ctx).
		Where("public_key = ?", publicKey).
		Order("created_at DESC").Order("id DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

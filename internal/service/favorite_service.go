package service

import (
	"context"
	"errors"
	"strings"
	"time"

	infraKafka "orbittrack/internal/infra/kafka"
	"orbittrack/internal/model"
	"orbittrack/internal/repository"
	"orbittrack/pkg/logger"

	"go.uber.org/zap"
)

var (
	ErrAlreadyFavorited    = errors.New("token is already favorited")
	ErrInvalidTokenAddress = errors.New("token address is required")
)

// FavoriteEventPublisher 收藏事件发布者，nil 表示不发布
type FavoriteEventPublisher interface {
	PublishFavoriteEvent(ctx context.Context, event *infraKafka.FavoriteEvent) error
}

type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	events       FavoriteEventPublisher
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, events FavoriteEventPublisher) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, events: events}
}

// AddFavorite 收藏代币，重复收藏返回 ErrAlreadyFavorited
func (s *FavoriteService) AddFavorite(ctx context.Context, publicKey, tokenAddress string) (*model.FavoriteToken, error) {
	if err := validateFavoriteArgs(publicKey, tokenAddress); err != nil {
		return nil, err
	}

	fav, err := s.favoriteRepo.Create(ctx, publicKey, tokenAddress)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}

	s.publish(ctx, infraKafka.ActionFavoriteAdded, publicKey, tokenAddress)
	return fav, nil
}

// RemoveFavorite 取消收藏，返回是否删除了记录；记录不存在不视为错误
func (s *FavoriteService) RemoveFavorite(ctx context.Context, publicKey, tokenAddress string) (bool, error) {
	if err := validateFavoriteArgs(publicKey, tokenAddress); err != nil {
		return false, err
	}

	deleted, err := s.favoriteRepo.Delete(ctx, publicKey, tokenAddress)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publish(ctx, infraKafka.ActionFavoriteRemoved, publicKey, tokenAddress)
	}
	return deleted, nil
}

// ListFavorites 获取用户收藏列表，按创建时间倒序
func (s *FavoriteService) ListFavorites(ctx context.Context, publicKey string) ([]model.FavoriteToken, error) {
	return s.favoriteRepo.ListByPublicKey(ctx, publicKey)
}

// IsFavorited 查询收藏状态；匿名调用方（公钥为空）直接返回 false，不查库
func (s *FavoriteService) IsFavorited(ctx context.Context, publicKey *string, tokenAddress string) (bool, error) {
	if publicKey == nil || *publicKey == "" {
		return false, nil
	}
	return s.favoriteRepo.Exists(ctx, *publicKey, tokenAddress)
}

func (s *FavoriteService) publish(ctx context.Context, action, publicKey, tokenAddress string) {
	if s.events == nil {
		return
	}
	event := &infraKafka.FavoriteEvent{
		Action:       action,
		PublicKey:    publicKey,
		TokenAddress: tokenAddress,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.events.PublishFavoriteEvent(ctx, event); err != nil {
		logger.Warn("Publish favorite event failed",
			zap.String("action", action),
			zap.String("public_key", publicKey),
			zap.Error(err),
		)
	}
}

func validateFavoriteArgs(publicKey, tokenAddress string) error {
	if strings.TrimSpace(publicKey) == "" {
		return ErrInvalidPublicKey
	}
	if strings.TrimSpace(tokenAddress) == "" {
		return ErrInvalidTokenAddress
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"orbittrack/internal/model"
	"orbittrack/internal/repository"
	"orbittrack/pkg/logger"

	"go.uber.org/zap"
)

var ErrInvalidPublicKey = errors.New("public key is required")

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser 以公钥创建用户；公钥已存在时返回已有用户而不是报错
func (s *UserService) CreateUser(ctx context.Context, publicKey string) (*model.User, error) {
	if strings.TrimSpace(publicKey) == "" {
		return nil, ErrInvalidPublicKey
	}

	user, err := s.userRepo.Create(ctx, publicKey)
	if err == nil {
		logger.Info("User created", zap.Int64("user_id", user.ID), zap.String("public_key", publicKey))
		return user, nil
	}
	if !repository.IsUniqueViolation(err) {
		return nil, err
	}

	return s.userRepo.GetByPublicKey(ctx, publicKey)
}

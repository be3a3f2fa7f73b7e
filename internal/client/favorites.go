package client

import (
	"context"
	"errors"
	"sync"

	"orbittrack/internal/api/dto"
	"orbittrack/pkg/logger"

	"go.uber.org/zap"
)

// MaxFavorites 客户端收藏上限，服务端不做限制
const MaxFavorites = 30

var (
	ErrFavoriteLimitReached = errors.New("you can only have 30 favorites, please remove some favorites to add a new one")
	ErrNoWallet             = errors.New("wallet public key is required")
)

// FavoriteAPI 收藏相关的远端操作，*Client 实现
type FavoriteAPI interface {
	FavoritesByUser(ctx context.Context, publicKey string) ([]dto.FavoriteToken, error)
	AddFavoriteToken(ctx context.Context, publicKey, tokenAddress string) (*dto.FavoriteToken, error)
	RemoveFavoriteToken(ctx context.Context, publicKey, tokenAddress string) (bool, error)
}

// ToggleResult 一次收藏切换的结果
type ToggleResult struct {
	Address   string
	Favorited bool
	// Reverted 远端调用失败，本地状态已回滚
	Reverted bool
	Err      error
}

// FavoriteToggler 维护本地收藏状态，切换时先改本地再调远端，失败则回滚
type FavoriteToggler struct {
	api       FavoriteAPI
	publicKey string

	mu        sync.Mutex
	favorites map[string]bool
	onChange  func(address string, favorited bool)
}

func NewFavoriteToggler(api FavoriteAPI, publicKey string) *FavoriteToggler {
	return &FavoriteToggler{
		api:       api,
		publicKey: publicKey,
		favorites: make(map[string]bool),
	}
}

// OnChange 注册本地状态变化回调（包括回滚）
func (t *FavoriteToggler) OnChange(fn func(address string, favorited bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// Sync 从服务端拉取收藏列表覆盖本地状态
func (t *FavoriteToggler) Sync(ctx context.Context) ([]dto.FavoriteToken, error) {
	if t.publicKey == "" {
		return nil, ErrNoWallet
	}
	favorites, err := t.api.FavoritesByUser(ctx, t.publicKey)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.favorites = make(map[string]bool, len(favorites))
	for _, f := range favorites {
		t.favorites[f.TokenAddress] = true
	}
	return favorites, nil
}

func (t *FavoriteToggler) IsFavorited(address string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.favorites[address]
}

func (t *FavoriteToggler) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.favorites)
}

// Toggle 切换收藏状态
//
// 只有新增会受 MaxFavorites 限制，取消收藏总是允许。
// 远端失败时回滚本地状态并记录日志，不作为错误返回，结果中 Reverted 为 true。
func (t *FavoriteToggler) Toggle(ctx context.Context, address string) (ToggleResult, error) {
	return t.apply(ctx, address, func(prior bool) bool { return !prior })
}

// Add 收藏代币，受 MaxFavorites 限制；已收藏时不发请求
func (t *FavoriteToggler) Add(ctx context.Context, address string) (ToggleResult, error) {
	return t.apply(ctx, address, func(bool) bool { return true })
}

// Remove 取消收藏；未收藏时不发请求
func (t *FavoriteToggler) Remove(ctx context.Context, address string) (ToggleResult, error) {
	return t.apply(ctx, address, func(bool) bool { return false })
}

// apply 所有收藏变更的唯一入口：上限检查、乐观更新、远端调用、失败回滚
func (t *FavoriteToggler) apply(ctx context.Context, address string, next func(prior bool) bool) (ToggleResult, error) {
	if t.publicKey == "" {
		return ToggleResult{Address: address}, ErrNoWallet
	}

	t.mu.Lock()
	prior := t.favorites[address]
	want := next(prior)
	if want == prior {
		t.mu.Unlock()
		return ToggleResult{Address: address, Favorited: prior}, nil
	}
	if want && len(t.favorites) >= MaxFavorites {
		t.mu.Unlock()
		return ToggleResult{Address: address, Favorited: false}, ErrFavoriteLimitReached
	}
	notify := t.setLocked(address, want)
	t.mu.Unlock()
	notify()

	var err error
	if want {
		_, err = t.api.AddFavoriteToken(ctx, t.publicKey, address)
	} else {
		_, err = t.api.RemoveFavoriteToken(ctx, t.publicKey, address)
	}

	if err != nil {
		t.mu.Lock()
		notify = t.setLocked(address, prior)
		t.mu.Unlock()
		notify()

		logger.Error("Error toggling favorite status",
			zap.String("address", address),
			zap.Bool("was_favorited", prior),
			zap.Error(err),
		)
		return ToggleResult{Address: address, Favorited: prior, Reverted: true, Err: err}, nil
	}

	return ToggleResult{Address: address, Favorited: want}, nil
}

// setLocked 修改本地状态，返回的回调需在释放锁之后调用
func (t *FavoriteToggler) setLocked(address string, favorited bool) func() {
	if favorited {
		t.favorites[address] = true
	} else {
		delete(t.favorites, address)
	}
	fn := t.onChange
	if fn == nil {
		return func() {}
	}
	return func() { fn(address, favorited) }
}

package client

import (
	"context"

	"orbittrack/internal/api/dto"
)

// Session 一个钱包连接期间的客户端状态：热门池子分页缓存和收藏状态
type Session struct {
	Client    *Client
	Pager     *Pager
	Favorites *FavoriteToggler
}

func NewSession(c *Client) *Session {
	s := &Session{
		Client:    c,
		Pager:     NewPager(c, NewPoolCache()),
		Favorites: NewFavoriteToggler(c, c.PublicKey()),
	}
	// 收藏切换（含回滚）同步到已加载的池子列表
	s.Favorites.OnChange(func(address string, favorited bool) {
		s.Pager.Cache().SetFavorited(address, favorited)
	})
	return s
}

// Connect 钱包连接时创建用户并同步收藏
func (s *Session) Connect(ctx context.Context) (*dto.User, error) {
	if s.Client.PublicKey() == "" {
		return nil, ErrNoWallet
	}
	user, err := s.Client.CreateUser(ctx, s.Client.PublicKey())
	if err != nil {
		return nil, err
	}
	if _, err := s.Favorites.Sync(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

// FavoriteTokens 收藏页数据：先取收藏地址，再批量查询行情
func (s *Session) FavoriteTokens(ctx context.Context) ([]dto.TrendingPool, error) {
	favorites, err := s.Favorites.Sync(ctx)
	if err != nil {
		return nil, err
	}
	addresses := make([]string, 0, len(favorites))
	for _, f := range favorites {
		addresses = append(addresses, f.TokenAddress)
	}
	return s.Client.GetMultipleTokens(ctx, addresses)
}

package service

// Store 收藏存储的统一句柄，供 GraphQL 请求上下文使用
type Store struct {
	*UserService
	*FavoriteService
}

func NewStore(users *UserService, favorites *FavoriteService) *Store {
	return &Store{UserService: users, FavoriteService: favorites}
}

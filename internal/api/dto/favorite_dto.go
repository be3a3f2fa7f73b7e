package dto

import (
	"strconv"
	"time"

	"orbittrack/internal/model"
)

// ISOTimeLayout 与 JavaScript Date.toISOString 一致的时间格式
const ISOTimeLayout = "2006-01-02T15:04:05.000Z"

// User GraphQL User 类型
type User struct {
	ID        string `json:"id"`
	PublicKey string `json:"publicKey"`
	CreatedAt string `json:"createdAt"`
}

// FavoriteToken GraphQL FavoriteToken 类型
type FavoriteToken struct {
	ID           string `json:"id"`
	PublicKey    string `json:"publicKey"`
	TokenAddress string `json:"tokenAddress"`
	CreatedAt    string `json:"createdAt"`
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOTimeLayout)
}

func NewUser(u *model.User) *User {
	return &User{
		ID:        strconv.FormatInt(u.ID, 10),
		PublicKey: u.PublicKey,
		CreatedAt: FormatTime(u.CreatedAt),
	}
}

func NewFavoriteToken(f *model.FavoriteToken) *FavoriteToken {
	return &FavoriteToken{
		ID:           strconv.FormatInt(f.ID, 10),
		PublicKey:    f.PublicKey,
		TokenAddress: f.TokenAddress,
		CreatedAt:    FormatTime(f.CreatedAt),
	}
}

func NewFavoriteTokenList(favorites []model.FavoriteToken) []FavoriteToken {
	items := make([]FavoriteToken, 0, len(favorites))
	for i := range favorites {
		items = append(items, *NewFavoriteToken(&favorites[i]))
	}
	return items
}

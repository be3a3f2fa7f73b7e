package dto

// TrendingPool 行情表格中的一行（不落库）
type TrendingPool struct {
	Symbol      string  `json:"symbol"`
	Icon        *string `json:"icon"`
	Price       float64 `json:"price"`
	PriceChange float64 `json:"priceChange"`
	MarketCap   float64 `json:"marketCap"`
	Volume      float64 `json:"volume"`
	Address     string  `json:"address"`
	IsFavorited bool    `json:"isFavorited"`
}

// PaginatedTrendingPools 热门池子分页结果
type PaginatedTrendingPools struct {
	Pools       []TrendingPool `json:"pools"`
	HasNextPage bool           `json:"hasNextPage"`
	CurrentPage int            `json:"currentPage"`
}

package geckoterminal

import (
	"github.com/shopspring/decimal"
)

// Number 宽松的数值字段：接受 JSON 数字、数字字符串或 null，
// 无法解析的值视为缺失而不是让整个响应解码失败。
type Number struct {
	decimal.NullDecimal
}

func (n *Number) UnmarshalJSON(b []byte) error {
	var d decimal.NullDecimal
	if err := d.UnmarshalJSON(b); err != nil {
		n.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	n.NullDecimal = d
	return nil
}

// Float64 返回数值，缺失时为 0
func (n Number) Float64() float64 {
	if !n.Valid {
		return 0
	}
	return n.Decimal.InexactFloat64()
}

// Window 按时间窗口划分的指标，这里只关心 24 小时
type Window struct {
	H24 Number `json:"h24"`
}

// ResourceIdentifier JSON:API 资源标识
type ResourceIdentifier struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Relationship JSON:API 关联
type Relationship struct {
	Data *ResourceIdentifier `json:"data"`
}

type PoolAttributes struct {
	Name                  string `json:"name"`
	Address               string `json:"address"`
	BaseTokenPriceUSD     Number `json:"base_token_price_usd"`
	MarketCapUSD          Number `json:"market_cap_usd"`
	VolumeUSD             Window `json:"volume_usd"`
	PriceChangePercentage Window `json:"price_change_percentage"`
}

type PoolRelationships struct {
	BaseToken  *Relationship `json:"base_token"`
	QuoteToken *Relationship `json:"quote_token"`
}

// Pool 流动性池资源
type Pool struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Attributes    PoolAttributes    `json:"attributes"`
	Relationships PoolRelationships `json:"relationships"`
}

// BaseTokenID 返回池子关联的 base token id，没有关联时返回空串
func (p *Pool) BaseTokenID() string {
	if p.Relationships.BaseToken == nil || p.Relationships.BaseToken.Data == nil {
		return ""
	}
	return p.Relationships.BaseToken.Data.ID
}

type TokenAttributes struct {
	Address      string  `json:"address"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	ImageURL     *string `json:"image_url"`
	PriceUSD     Number  `json:"price_usd"`
	MarketCapUSD Number  `json:"market_cap_usd"`
	VolumeUSD    Window  `json:"volume_usd"`
}

// Token 代币资源
type Token struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes TokenAttributes `json:"attributes"`
}

// TrendingPoolsResponse /networks/{network}/trending_pools?include=base_token
type TrendingPoolsResponse struct {
	Data     []Pool  `json:"data"`
	Included []Token `json:"included"`
}

// FindIncludedToken 在 included 中按 id 查找代币
func (r *TrendingPoolsResponse) FindIncludedToken(id string) (*Token, bool) {
	for i := range r.Included {
		if r.Included[i].ID == id {
			return &r.Included[i], true
		}
	}
	return nil, false
}

// MultiTokenResponse /networks/{network}/tokens/multi/{addresses}?include=top_pools
type MultiTokenResponse struct {
	Data     []Token `json:"data"`
	Included []Pool  `json:"included"`
}

// FindTopPool 查找以该代币为 base token 的第一个池子
func (r *MultiTokenResponse) FindTopPool(tokenID string) (*Pool, bool) {
	for i := range r.Included {
		p := &r.Included[i]
		if p.Type == "pool" && p.BaseTokenID() == tokenID {
			return p, true
		}
	}
	return nil, false
}

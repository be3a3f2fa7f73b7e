package client

// 操作名，与下方文档中的命名一致
const (
	OpTrendingPools       = "TrendingPools"
	OpFavoritesByUser     = "GetFavoritesByUser"
	OpGetMultipleTokens   = "GetMultipleTokens"
	OpCreateUser          = "CreateUserWithPublicKey"
	OpAddFavoriteToken    = "AddFavoriteToken"
	OpRemoveFavoriteToken = "RemoveFavoriteToken"
)

// GraphQL 文档，与前端使用的查询保持一致
const (
	TrendingPoolsQuery = `query TrendingPools($page: Int!) {
  trendingPools(page: $page) {
    pools {
      symbol
      icon
      price
      priceChange
      marketCap
      volume
      address
      isFavorited
    }
    hasNextPage
    currentPage
  }
}`

	FavoritesByUserQuery = `query GetFavoritesByUser($publicKey: String!) {
  favoritesByUser(publicKey: $publicKey) {
    id
    publicKey
    tokenAddress
    createdAt
  }
}`

	GetMultipleTokensQuery = `query GetMultipleTokens($tokenAddresses: [String!]!) {
  getMultipleTokens(tokenAddresses: $tokenAddresses) {
    symbol
    icon
    price
    priceChange
    marketCap
    volume
    address
  }
}`

	CreateUserMutation = `mutation CreateUserWithPublicKey($publicKey: String!) {
  createUserWithPublicKey(publicKey: $publicKey) {
    id
    publicKey
    createdAt
  }
}`

	AddFavoriteTokenMutation = `mutation AddFavoriteToken($publicKey: String!, $tokenAddress: String!) {
  addFavoriteToken(publicKey: $publicKey, tokenAddress: $tokenAddress) {
    id
    publicKey
    tokenAddress
    createdAt
  }
}`

	RemoveFavoriteTokenMutation = `mutation RemoveFavoriteToken($publicKey: String!, $tokenAddress: String!) {
  removeFavoriteToken(publicKey: $publicKey, tokenAddress: $tokenAddress)
}`
)

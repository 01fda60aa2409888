package model

type GetWalletResponse struct {
	Bounty string `json:"bounty"`
}

type LeaderboardEntry struct {
	UserAddress string  `json:"userAddress"`
	Score       float64 `json:"score"`
	Prize       float64 `json:"prize"`
}

type GetLeaderboardResponse struct {
	Data []LeaderboardEntry `json:"data"`
}

type Stats struct {
	TotalUsers      int64   `json:"totalUsers"`
	TotalPrompts    int64   `json:"totalPrompts"`
	TotalWinners    int64   `json:"totalWinners"`
	AvgTriesPerUser float64 `json:"avgTriesPerUser"`
}

type GetScoreRequest struct {
	UserAddress string `structs:"userAddress"`
}

type GetScoreResponse struct {
	Score float64 `json:"score"`
}

type TreasuryToken struct {
	Symbol           string  `json:"symbol"`
	ValueUSD         float64 `json:"valueUSD"`
	BalanceFormatted float64 `json:"balanceFormatted"`
}

type ChainTokens struct {
	Tokens []TreasuryToken `json:"tokens"`
}

// GetTreasuryResponse keys Tokens by chain.
type GetTreasuryResponse struct {
	Tokens map[string]ChainTokens `json:"tokens"`
}

type ChatMessage struct {
	ID             string  `json:"id"`
	UserAddress    string  `json:"userAddress"`
	Pitch          string  `json:"pitch"`
	AIResponseText string  `json:"aiResponseText"`
	Success        bool    `json:"success"`
	Score          float64 `json:"score"`
	Prize          float64 `json:"prize"`
	TxID           string  `json:"txId"`
	Timestamp      string  `json:"timestamp"`
}

type ChatPage struct {
	Data       []ChatMessage `json:"data"`
	NextCursor string        `json:"nextCursor"`
	TokenName  string        `json:"tokenName"`
	Token      string        `json:"token"`
}

type PortfolioSnapshot struct {
	ID     int64                  `json:"id"`
	Date   string                 `json:"date"`
	Tokens map[string]ChainTokens `json:"tokens"`
}

type GetChatPageRequest struct {
	Limit       int
	Cursor      string
	UserAddress string
}

package model

import (
	"math/big"

	"github.com/pitchlucy/lucy/pkg/enum"
)

type TradeType string

var (
	TradeTypeBuy  = enum.New(TradeType("buy"), "buy")
	TradeTypeSell = enum.New(TradeType("sell"), "sell")
)

// PitchForm is what the user fills in before submitting a pitch.
type PitchForm struct {
	Token      string    `json:"token" structs:"token"`
	TradeType  TradeType `json:"tradeType" structs:"tradeType"`
	Allocation string    `json:"allocation" structs:"allocation"`
	Pitch      string    `json:"pitch" structs:"pitch"`
	ChainID    int64     `json:"chainId" structs:"chainId"`
	TokenName  string    `json:"tokenName" structs:"tokenName"`
}

func NewPitchForm(chainID int64) PitchForm {
	return PitchForm{
		TradeType:  TradeTypeBuy,
		Allocation: "1",
		ChainID:    chainID,
	}
}

// PriceQuote authorizes exactly one payGame call. Its fields are never modified after decoding.
type PriceQuote struct {
	GamePrice *big.Int
	Nonce     *big.Int
	Signature []byte
}

func (q *PriceQuote) Available() bool {
	return q != nil && q.GamePrice != nil && q.GamePrice.Sign() > 0
}

type GetPriceResponse struct {
	Price     string `json:"price"`
	Nonce     string `json:"nonce"`
	Signature string `json:"signature"`
}

type ChatRequest struct {
	ChainID                 int64     `structs:"chainId"`
	UserAddress             string    `structs:"userAddress"`
	UserMessage             PitchForm `structs:"userMessage"`
	SwapATargetTokenAddress string    `structs:"swapATargetTokenAddress"`
	SwapBTargetTokenAddress string    `structs:"swapBTargetTokenAddress"`
}

type ChatResponse struct {
	Success        bool   `json:"success"`
	AIResponseText string `json:"aiResponseText"`
}

// AIResponse is the verdict of one pitch together with the form it judged.
type AIResponse struct {
	PitchForm
	AIResponseText string
	Success        bool
}

type GetTokenNameRequest struct {
	Address string `structs:"address"`
	ChainID int64  `structs:"chainId"`
}

type GetTokenNameResponse struct {
	Name string `json:"name"`
}

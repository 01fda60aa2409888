package types

import "github.com/ethereum/go-ethereum/common"

type TrackResult int

const (
	TrackResultConfirmed TrackResult = iota
	TrackResultReverted
	TrackResultTimeout
)

func (r TrackResult) String() string {
	switch r {
	case TrackResultConfirmed:
		return "confirmed"
	case TrackResultReverted:
		return "reverted"
	default:
		return "timeout"
	}
}

type TrackUpdate struct {
	ChainID     int64
	Hash        common.Hash
	BlockHeight int64
	Result      TrackResult
	GasUsed     uint64
}

type TokenInfo struct {
	Name     string
	Symbol   string
	Decimals int
}

package board

import (
	"errors"
	"testing"

	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/mocks"
	"github.com/pitchlucy/lucy/pkg/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_FormatBounty(t *testing.T) {
	testCases := []struct {
		bounty string
		want   string
	}{
		{bounty: "1234.567", want: "1234.57"},
		{bounty: "10", want: "10.00"},
		{bounty: " 0.1 ", want: "0.10"},
		{bounty: "", want: "0.00"},
		{bounty: "abc", want: "0.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.bounty, func(t *testing.T) {
			require.Equal(t, tc.want, FormatBounty(tc.bounty))
		})
	}
}

func Test_BountyWidget(t *testing.T) {
	backend := &mocks.BackendCaller{}
	backend.On("GetWallet", mock.Anything).Return(&model.GetWalletResponse{Bounty: "99.999"}, nil).Once()

	w := NewBountyWidget(backend)
	w.Sync(testutil.MockContext(), false)
	require.Equal(t, "100.00", w.Value())
	backend.AssertExpectations(t)
}

func Test_Winners(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{UserAddress: "0x1", Score: 40, Prize: 30},
		{UserAddress: "0x2", Score: 30, Prize: 20},
		{UserAddress: "0x3", Score: 20, Prize: 10},
		{UserAddress: "0x4", Score: 10},
	}

	require.Equal(t, entries[:3], Winners(entries))
	require.Equal(t, entries[:2], Winners(entries[:2]))
	require.Empty(t, Winners(nil))
}

func Test_LeaderboardWidget_KeepsServerOrder(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{UserAddress: "0x2", Score: 10},
		{UserAddress: "0x1", Score: 50},
	}

	backend := &mocks.BackendCaller{}
	backend.On("GetLeaderboard", mock.Anything).Return(entries, nil)

	w := NewLeaderboardWidget(backend)
	w.Sync(testutil.MockContext(), false)
	require.Equal(t, entries, w.Value())
}

func Test_MetricsWidget_Failure(t *testing.T) {
	backend := &mocks.BackendCaller{}
	backend.On("GetStats", mock.Anything).Return(nil, errors.New("down"))

	w := NewMetricsWidget(backend)
	w.Sync(testutil.MockContext(), false)
	require.False(t, w.Loading())
	require.Equal(t, model.Stats{}, w.Value())
}

func Test_ScoreWidget(t *testing.T) {
	t.Run("without wallet", func(t *testing.T) {
		backend := &mocks.BackendCaller{}

		w := NewScoreWidget(backend, "")
		w.Sync(testutil.MockContext(), false)
		require.Zero(t, w.Value())
		backend.AssertNotCalled(t, "GetScore", mock.Anything, mock.Anything)
	})

	t.Run("with wallet", func(t *testing.T) {
		backend := &mocks.BackendCaller{}
		backend.On("GetScore", mock.Anything, "0xAbC").Return(&model.GetScoreResponse{Score: 12}, nil)

		w := NewScoreWidget(backend, "0xAbC")
		w.Sync(testutil.MockContext(), false)
		require.Equal(t, 12.0, w.Value())
	})
}

func Test_ShortAddress(t *testing.T) {
	addr := "0x1234567890abcdef1234567890abcdef12345678"
	require.Equal(t, "0x1234...5678", ShortAddress(addr, 6, 4))
	require.Equal(t, "0x12", ShortAddress("0x12", 6, 4))
}

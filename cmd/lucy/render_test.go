package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pitchlucy/lucy/internal/domain/board"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/mocks"
	"github.com/pitchlucy/lucy/pkg/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_RenderTreasury(t *testing.T) {
	out := &bytes.Buffer{}
	renderTreasury(out, board.Treasury{
		TotalUSD: 75,
		Tokens: []board.TreasuryShare{
			{Symbol: "USDC", ValueUSD: 50, BalanceFormatted: 50, Percent: 67},
			{Symbol: "WZETA", ValueUSD: 25, BalanceFormatted: 100, Percent: 33},
		},
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "Treasury: $75.00", lines[0])
	require.Equal(t, []string{"USDC", "$50.00", "50.0000", "67%"}, strings.Fields(lines[2]))
	require.Equal(t, []string{"WZETA", "$25.00", "100.0000", "33%"}, strings.Fields(lines[3]))
}

func Test_RenderPortfolio(t *testing.T) {
	v := 3.5
	out := &bytes.Buffer{}
	renderPortfolio(out, board.PortfolioHistory{
		Labels: []string{"11/14 22:13", "11/14 23:13"},
		Series: []board.PortfolioSeries{{Symbol: "USDC", Values: []*float64{nil, &v}}},
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, []string{"DATE", "USDC"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"11/14", "22:13", "-"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"11/14", "23:13", "$3.50"}, strings.Fields(lines[2]))
}

func Test_RenderFAQ(t *testing.T) {
	accordion := board.NewAccordion()
	accordion.SetSection(board.FAQSectionRewards)
	accordion.Toggle(0)

	out := &bytes.Buffer{}
	renderFAQ(out, accordion)

	faqs := board.FAQs(board.FAQSectionRewards)
	require.Contains(t, out.String(), "// Rewards")
	require.Contains(t, out.String(), faqs[0].Answer)
	require.Contains(t, out.String(), faqs[1].Question)
	require.NotContains(t, out.String(), faqs[1].Answer)
}

func Test_Preview(t *testing.T) {
	require.Equal(t, "a b c", preview(" a\n b  c "))

	long := strings.Repeat("é", 100)
	got := preview(long)
	require.Len(t, []rune(got), maxPitchPreview)
	require.True(t, strings.HasSuffix(got, "..."))
}

func Test_FAQCommand(t *testing.T) {
	s, out := newTestApp(t)

	require.NoError(t, s.app.Run([]string{"lucy", "faq", "--section", "Pitching rules", "--open", "1"}))

	faqs := board.FAQs(board.FAQSectionPitching)
	require.Contains(t, out.String(), faqs[0].Answer)
	require.NotContains(t, out.String(), faqs[1].Answer)
}

func Test_DashboardJob(t *testing.T) {
	backend := &mocks.BackendCaller{}
	backend.On("GetWallet", mock.Anything).Return(&model.GetWalletResponse{Bounty: "12.5"}, nil).Twice()
	backend.On("GetLeaderboard", mock.Anything).Return([]model.LeaderboardEntry{
		{UserAddress: "0x1234567890abcdef1234567890abcdef12345678", Score: 9, Prize: 4},
	}, nil).Twice()
	backend.On("GetStats", mock.Anything).Return(&model.Stats{TotalUsers: 3}, nil).Twice()
	backend.On("GetTreasury", mock.Anything).Return(&model.GetTreasuryResponse{}, nil).Twice()
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 10}).
		Return(&model.ChatPage{}, nil).Twice()

	out := &bytes.Buffer{}
	s := &srv{ctx: testutil.MockContext(), out: out, backend: backend}
	job := s.newDashboardJob(time.Minute)
	require.True(t, job.RunNow())
	require.WithinDuration(t, time.Now().Add(time.Minute), job.Next(), time.Second)

	job.Do(s.ctx)
	require.Contains(t, out.String(), "Bounty: $12.50")
	require.Contains(t, out.String(), "0x1234...5678")

	// The second run refetches everything.
	job.Do(s.ctx)
	backend.AssertExpectations(t)

	cancelled, cancel := context.WithCancel(s.ctx)
	cancel()
	out.Reset()
	backend.On("GetWallet", mock.Anything).Return(&model.GetWalletResponse{}, nil)
	backend.On("GetLeaderboard", mock.Anything).Return([]model.LeaderboardEntry{}, nil)
	backend.On("GetStats", mock.Anything).Return(&model.Stats{}, nil)
	backend.On("GetTreasury", mock.Anything).Return(&model.GetTreasuryResponse{}, nil)
	backend.On("GetChatPage", mock.Anything, mock.Anything).Return(&model.ChatPage{}, nil)
	job.Do(cancelled)
	require.Empty(t, out.String())
}

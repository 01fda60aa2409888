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

func Test_Pager(t *testing.T) {
	p := &Pager{}
	require.Equal(t, "", p.Cursor())
	require.False(t, p.HasNext())
	require.False(t, p.Next())
	require.False(t, p.Previous())

	p.SetNext("12")
	require.True(t, p.Next())
	require.Equal(t, "12", p.Cursor())
	require.Equal(t, 2, p.Page())

	p.SetNext("7")
	require.True(t, p.Next())
	require.Equal(t, "7", p.Cursor())

	require.True(t, p.Previous())
	require.Equal(t, "12", p.Cursor())
	require.True(t, p.Previous())
	require.Equal(t, "", p.Cursor())
	require.Equal(t, 1, p.Page())
	require.False(t, p.HasPrevious())

	p.SetNext("12")
	p.Next()
	p.Reset()
	require.Equal(t, "", p.Cursor())
	require.False(t, p.HasPrevious())
}

func chatPage(next string, ids ...string) *model.ChatPage {
	page := &model.ChatPage{NextCursor: next, TokenName: "Wrapped Zeta", Token: "WZETA"}
	for _, id := range ids {
		page.Data = append(page.Data, model.ChatMessage{ID: id})
	}
	return page
}

func Test_ChatFeed_NextThenPrevious(t *testing.T) {
	ctx := testutil.MockContext()
	backend := &mocks.BackendCaller{}
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5}).
		Return(chatPage("12", "20", "19"), nil)
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5, Cursor: "12"}).
		Return(chatPage("", "12", "11"), nil).Once()

	feed := NewChatFeed(backend, "")
	feed.Sync(ctx, false)
	require.Equal(t, "Wrapped", feed.Value().TokenName)
	require.Len(t, feed.Value().Messages, 2)
	require.True(t, feed.HasNext())
	require.False(t, feed.HasPrevious())

	ok, err := feed.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "12", feed.Cursor())
	require.Equal(t, 2, feed.Page())
	require.Equal(t, "12", feed.Value().Messages[0].ID)
	require.False(t, feed.HasNext())

	ok, err = feed.Next(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = feed.Previous(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "", feed.Cursor())
	require.Equal(t, "20", feed.Value().Messages[0].ID)
	require.True(t, feed.HasNext())

	backend.AssertExpectations(t)
}

func Test_ChatFeed_FailedPageKeepsPosition(t *testing.T) {
	ctx := testutil.MockContext()
	backend := &mocks.BackendCaller{}
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5}).
		Return(chatPage("12", "a"), nil)
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5, Cursor: "12"}).
		Return(nil, errors.New("boom")).Twice()
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5, Cursor: "12"}).
		Return(chatPage("", "b"), nil).Once()

	feed := NewChatFeed(backend, "")
	_, err := feed.Sync(ctx, false)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ok, err := feed.Next(ctx)
		require.True(t, ok)
		require.EqualError(t, err, "boom")
		require.Equal(t, 1, feed.Page())
		require.Equal(t, "", feed.Cursor())
		require.False(t, feed.HasPrevious())
		require.True(t, feed.HasNext())
		require.Equal(t, "a", feed.Value().Messages[0].ID)
	}

	ok, err := feed.Previous(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = feed.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, feed.Page())
	require.Equal(t, "b", feed.Value().Messages[0].ID)

	ok, err = feed.Previous(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "", feed.Cursor())
	require.Equal(t, 1, feed.Page())
	backend.AssertExpectations(t)
}

func Test_ChatFeed_FailedSwitchKeepsSettings(t *testing.T) {
	ctx := testutil.MockContext()
	backend := &mocks.BackendCaller{}
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5}).Return(chatPage("12", "a"), nil)
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5, Cursor: "12"}).
		Return(chatPage("", "b"), nil)
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 10}).
		Return(nil, errors.New("boom")).Once()
	backend.On("GetWinningPrompts", mock.Anything, model.GetChatPageRequest{Limit: 5}).
		Return(nil, errors.New("boom")).Once()

	feed := NewChatFeed(backend, "")
	_, err := feed.Sync(ctx, false)
	require.NoError(t, err)
	_, err = feed.Next(ctx)
	require.NoError(t, err)

	require.Error(t, feed.SetLimit(ctx, 10))
	require.Equal(t, 2, feed.Page())
	require.Equal(t, "12", feed.Cursor())

	require.Error(t, feed.SetView(ctx, ChatViewWinners))
	require.Equal(t, ChatViewAll, feed.View())
	require.Equal(t, 2, feed.Page())

	ok, err := feed.Previous(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", feed.Value().Messages[0].ID)
	backend.AssertExpectations(t)
}

func Test_ChatFeed_Views(t *testing.T) {
	ctx := testutil.MockContext()
	const wallet = "0x00000000000000000000000000000000000000aa"

	t.Run("mine without wallet falls back to all", func(t *testing.T) {
		backend := &mocks.BackendCaller{}
		backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5}).Return(chatPage(""), nil)

		feed := NewChatFeed(backend, "")
		require.NoError(t, feed.SetView(ctx, ChatViewMine))
		require.Equal(t, ChatViewAll, feed.View())
	})

	t.Run("mine filters by wallet", func(t *testing.T) {
		backend := &mocks.BackendCaller{}
		backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5, UserAddress: wallet}).
			Return(chatPage(""), nil).Once()

		feed := NewChatFeed(backend, wallet)
		require.NoError(t, feed.SetView(ctx, ChatViewMine))
		require.Equal(t, ChatViewMine, feed.View())
		backend.AssertExpectations(t)
	})

	t.Run("winners", func(t *testing.T) {
		backend := &mocks.BackendCaller{}
		backend.On("GetWinningPrompts", mock.Anything, model.GetChatPageRequest{Limit: 5}).
			Return(chatPage(""), nil).Once()

		feed := NewChatFeed(backend, wallet)
		require.NoError(t, feed.SetView(ctx, ChatViewWinners))
		backend.AssertExpectations(t)
		backend.AssertNotCalled(t, "GetChatPage", mock.Anything, mock.Anything)
	})
}

func Test_ChatFeed_SetLimitResetsPaging(t *testing.T) {
	ctx := testutil.MockContext()
	backend := &mocks.BackendCaller{}
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5}).Return(chatPage("12"), nil)
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 5, Cursor: "12"}).
		Return(chatPage("6"), nil)
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 10}).
		Return(chatPage("2"), nil).Once()

	feed := NewChatFeed(backend, "")
	feed.Sync(ctx, false)
	_, err := feed.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, feed.Page())

	require.NoError(t, feed.SetLimit(ctx, 10))
	require.Equal(t, 1, feed.Page())
	require.Equal(t, "", feed.Cursor())
	require.False(t, feed.HasPrevious())
	backend.AssertExpectations(t)
}

func Test_NormalizeTokenName(t *testing.T) {
	testCases := []struct {
		name     string
		fallback string
		want     string
	}{
		{name: " Zeta Token ", fallback: "ZETA", want: "Zeta"},
		{name: "Wrapped", fallback: "WZETA", want: "Wrapped"},
		{name: "unknown", fallback: "WZETA", want: "WZETA"},
		{name: "Unknown", fallback: "WZETA", want: "WZETA"},
		{name: "   ", fallback: "WZETA", want: "WZETA"},
		{name: "", fallback: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeTokenName(tc.name, tc.fallback))
		})
	}
}

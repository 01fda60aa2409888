package board

import (
	"testing"
	"time"

	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/mocks"
	"github.com/pitchlucy/lucy/pkg/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_RelativeTime(t *testing.T) {
	now := time.Date(2025, 2, 5, 3, 0, 0, 0, time.UTC)

	testCases := []struct {
		ts   string
		want string
	}{
		{ts: "2025-02-05 02:59:30.123456", want: "just now"},
		{ts: "2025-02-05 02:59:00", want: "1 min"},
		{ts: "2025-02-05 02:01:00", want: "59 min"},
		{ts: "2025-02-05 02:00:00", want: "1 hour"},
		{ts: "2025-02-05 00:17:55.827991", want: "2 hours"},
		{ts: "2025-02-04T03:00:00Z", want: "24 hours"},
		{ts: "yesterday", want: "yesterday"},
	}

	for _, tc := range testCases {
		t.Run(tc.ts, func(t *testing.T) {
			require.Equal(t, tc.want, RelativeTime(now, tc.ts))
		})
	}
}

func Test_LastPitchesWidget(t *testing.T) {
	backend := &mocks.BackendCaller{}
	backend.On("GetChatPage", mock.Anything, model.GetChatPageRequest{Limit: 10}).Return(&model.ChatPage{
		Data: []model.ChatMessage{
			{ID: "9", UserAddress: "0xaaa", Timestamp: "2025-02-05 00:17:55.827991"},
		},
	}, nil)

	w := NewLastPitchesWidget(backend)
	w.Sync(testutil.MockContext(), false)
	require.Equal(t, []LastPitch{{ID: "9", Address: "0xaaa", Timestamp: "2025-02-05 00:17:55.827991"}}, w.Value())
}

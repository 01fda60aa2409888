package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pitchlucy/lucy/internal/client"
	"github.com/pitchlucy/lucy/internal/model"
)

const lastPitchesLimit = 10

// chatTimestampLayout is how the backend stores pitch times, in UTC without a zone.
const chatTimestampLayout = "2006-01-02 15:04:05.999999999"

type LastPitch struct {
	ID        string
	Address   string
	Timestamp string
}

func NewLastPitchesWidget(backend client.BackendCaller) *Widget[[]LastPitch] {
	return NewWidget("last_pitches", func(ctx context.Context) ([]LastPitch, error) {
		page, err := backend.GetChatPage(ctx, model.GetChatPageRequest{Limit: lastPitchesLimit})
		if err != nil {
			return nil, err
		}

		pitches := make([]LastPitch, 0, len(page.Data))
		for _, msg := range page.Data {
			pitches = append(pitches, LastPitch{
				ID:        msg.ID,
				Address:   msg.UserAddress,
				Timestamp: msg.Timestamp,
			})
		}

		return pitches, nil
	})
}

// ParseChatTimestamp reads "2025-02-05 00:17:55.827991" style times. RFC 3339 is accepted too.
func ParseChatTimestamp(ts string) (time.Time, error) {
	ts = strings.TrimSpace(ts)

	t, err := time.ParseInLocation(chatTimestampLayout, ts, time.UTC)
	if err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339Nano, ts)
}

// RelativeTime renders how long ago ts was: "just now", "N min" or "N hour(s)".
func RelativeTime(now time.Time, ts string) string {
	t, err := ParseChatTimestamp(ts)
	if err != nil {
		return ts
	}

	minutes := int64(now.Sub(t) / time.Minute)
	if minutes < 1 {
		return "just now"
	}

	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	hours := minutes / 60
	if hours == 1 {
		return "1 hour"
	}

	return fmt.Sprintf("%d hours", hours)
}

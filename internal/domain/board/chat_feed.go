package board

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/pitchlucy/lucy/internal/client"
	"github.com/pitchlucy/lucy/internal/common"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/pkg/enum"
	"golang.org/x/exp/slices"
)

type ChatView string

var (
	ChatViewAll     = enum.New(ChatView("all"), "all")
	ChatViewWinners = enum.New(ChatView("winners"), "winners")
	ChatViewMine    = enum.New(ChatView("mine"), "mine")
)

var ChatLimits = []int{5, 10, 15}

// Pager walks cursor-paginated results one page at a time. Next remembers the cursor of the page
// it leaves so Previous can return to it.
type Pager struct {
	current string
	next    string
	history []string
}

func (p *Pager) Cursor() string {
	return p.current
}

func (p *Pager) Page() int {
	return len(p.history) + 1
}

func (p *Pager) HasNext() bool {
	return p.next != ""
}

func (p *Pager) HasPrevious() bool {
	return len(p.history) > 0
}

// SetNext records the cursor the server returned for the page after the current one.
func (p *Pager) SetNext(cursor string) {
	p.next = cursor
}

func (p *Pager) Next() bool {
	if p.next == "" {
		return false
	}

	p.history = append(p.history, p.current)
	p.current = p.next
	p.next = ""
	return true
}

func (p *Pager) Previous() bool {
	if len(p.history) == 0 {
		return false
	}

	p.current = p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.next = ""
	return true
}

func (p *Pager) Reset() {
	*p = Pager{}
}

func (p Pager) clone() Pager {
	p.history = slices.Clone(p.history)
	return p
}

type ChatFeedPage struct {
	Messages   []model.ChatMessage
	TokenName  string
	NextCursor string
}

// ChatFeed is the paginated list of pitches with Lucy's answers.
type ChatFeed struct {
	*Widget[ChatFeedPage]

	backend     client.BackendCaller
	userAddress string

	mutex sync.Mutex
	view  ChatView
	limit int
	pager Pager
}

func NewChatFeed(backend client.BackendCaller, userAddress string) *ChatFeed {
	f := &ChatFeed{
		backend:     backend,
		userAddress: userAddress,
		view:        ChatViewAll,
		limit:       ChatLimits[0],
	}

	f.Widget = NewWidget("chat", f.fetch).withCacheKey(func() string {
		view, limit, cursor := f.params()
		return common.RedisKeyWidget("chat", string(view), strings.ToLower(f.userAddress),
			strconv.Itoa(limit), cursor)
	})

	return f
}

// SetView switches between all pitches, winning ones and the wallet's own. Without a wallet the
// own view falls back to all pitches.
func (f *ChatFeed) SetView(ctx context.Context, view ChatView) error {
	if view == ChatViewMine && f.userAddress == "" {
		view = ChatViewAll
	}

	f.mutex.Lock()
	if f.view == view {
		f.mutex.Unlock()
		return nil
	}
	saved := f.snapshot()
	f.view = view
	f.pager.Reset()
	f.mutex.Unlock()

	return f.refreshOrRestore(ctx, saved)
}

// SetLimit changes the page size and goes back to the first page.
func (f *ChatFeed) SetLimit(ctx context.Context, limit int) error {
	if !slices.Contains(ChatLimits, limit) {
		limit = ChatLimits[0]
	}

	f.mutex.Lock()
	if f.limit == limit {
		f.mutex.Unlock()
		return nil
	}
	saved := f.snapshot()
	f.limit = limit
	f.pager.Reset()
	f.mutex.Unlock()

	return f.refreshOrRestore(ctx, saved)
}

// Next loads the following page. It reports false when there is none.
func (f *ChatFeed) Next(ctx context.Context) (bool, error) {
	next := f.Value().NextCursor

	f.mutex.Lock()
	saved := f.snapshot()
	f.pager.SetNext(next)
	ok := f.pager.Next()
	f.mutex.Unlock()

	if !ok {
		return false, nil
	}

	return true, f.refreshOrRestore(ctx, saved)
}

func (f *ChatFeed) Previous(ctx context.Context) (bool, error) {
	f.mutex.Lock()
	saved := f.snapshot()
	ok := f.pager.Previous()
	f.mutex.Unlock()

	if !ok {
		return false, nil
	}

	return true, f.refreshOrRestore(ctx, saved)
}

type chatFeedState struct {
	view  ChatView
	limit int
	pager Pager
}

// snapshot must be called with the mutex held.
func (f *ChatFeed) snapshot() chatFeedState {
	return chatFeedState{view: f.view, limit: f.limit, pager: f.pager.clone()}
}

// refreshOrRestore fetches the page the feed now points at. On failure the feed goes back to
// saved, so paging stays in step with the messages still shown.
func (f *ChatFeed) refreshOrRestore(ctx context.Context, saved chatFeedState) error {
	if err := f.Refresh(ctx); err != nil {
		f.mutex.Lock()
		f.view = saved.view
		f.limit = saved.limit
		f.pager = saved.pager
		f.mutex.Unlock()
		return err
	}

	return nil
}

func (f *ChatFeed) View() ChatView {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.view
}

func (f *ChatFeed) Page() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.pager.Page()
}

func (f *ChatFeed) Cursor() string {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.pager.Cursor()
}

func (f *ChatFeed) HasNext() bool {
	return f.Value().NextCursor != ""
}

func (f *ChatFeed) HasPrevious() bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.pager.HasPrevious()
}

func (f *ChatFeed) params() (ChatView, int, string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.view, f.limit, f.pager.Cursor()
}

func (f *ChatFeed) fetch(ctx context.Context) (ChatFeedPage, error) {
	view, limit, cursor := f.params()

	req := model.GetChatPageRequest{Limit: limit, Cursor: cursor}
	if view == ChatViewMine {
		req.UserAddress = f.userAddress
	}

	var page *model.ChatPage
	var err error
	if view == ChatViewWinners {
		page, err = f.backend.GetWinningPrompts(ctx, req)
	} else {
		page, err = f.backend.GetChatPage(ctx, req)
	}
	if err != nil {
		return ChatFeedPage{}, err
	}

	return ChatFeedPage{
		Messages:   page.Data,
		TokenName:  NormalizeTokenName(page.TokenName, page.Token),
		NextCursor: page.NextCursor,
	}, nil
}

// NormalizeTokenName keeps the first word of the name the server reports, or falls back to the
// token when the name is missing or unknown.
func NormalizeTokenName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "unknown") {
		return fallback
	}

	return strings.Fields(name)[0]
}

package pitch

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/pitchlucy/lucy/config"
	"github.com/pitchlucy/lucy/internal/client"
	lucycommon "github.com/pitchlucy/lucy/internal/common"
	"github.com/pitchlucy/lucy/internal/domain/blockchain"
	"github.com/pitchlucy/lucy/internal/domain/cron"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/pkg/errorx"
	"github.com/pitchlucy/lucy/pkg/ethutil"
	"github.com/pitchlucy/lucy/pkg/xcontext"
	"github.com/shopspring/decimal"
)

var (
	ErrSubmissionInProgress = errorx.New(errorx.InProgress, "Your previous pitch is still being processed.")
	ErrSessionClosed        = errorx.New(errorx.Unavailable, "The session is closed.")
)

// Listener observes a session. Callbacks run on the submitting goroutine and must not block.
type Listener interface {
	Transitioned(from, to State)

	// Failed is called once per attempt that ends in ERROR.
	Failed(err error)

	// Answered is called with every verdict, winning or not. Anything showing game data should
	// refetch after it.
	Answered(resp model.AIResponse)
}

type nopListener struct{}

func (nopListener) Transitioned(State, State) {}
func (nopListener) Failed(error)              {}
func (nopListener) Answered(model.AIResponse) {}

type Option func(*Session)

func WithListener(l Listener) Option {
	return func(s *Session) {
		if l != nil {
			s.listener = l
		}
	}
}

type Status struct {
	State       State
	Transaction TransactionState
	Message     string
	AttemptID   string
}

// Outcome describes one finished attempt. Hashes are zero for transactions that were not sent.
type Outcome struct {
	AttemptID string
	State     State
	Response  *model.AIResponse
	ApproveTx common.Hash
	PayTx     common.Hash
}

// Session drives pitches from a filled form to the AI verdict. It lives as long as the user
// stays on the pitch screen; Close stops everything it scheduled.
type Session struct {
	cfg         config.Configs
	chain       blockchain.ChainClient
	backend     client.BackendCaller
	listener    Listener
	cronManager *cron.CronJobManager

	mutex     sync.Mutex
	state     State
	message   string
	attemptID string
	quote     *model.PriceQuote
	busy      bool
	closed    bool
	refresh   bool
	done      chan struct{}
}

func NewSession(
	ctx context.Context,
	cfg config.Configs,
	chain blockchain.ChainClient,
	backend client.BackendCaller,
	opts ...Option,
) *Session {
	s := &Session{
		cfg:         cfg,
		chain:       chain,
		backend:     backend,
		listener:    nopListener{},
		cronManager: cron.NewCronJobManager(ctx),
		state:       StateIdle,
		done:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load fetches the price quote the next payment will use.
func (s *Session) Load(ctx context.Context) error {
	quote, err := s.backend.GetPrice(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Error fetching price from API: %v", err)
		return err
	}

	s.mutex.Lock()
	s.quote = quote
	s.mutex.Unlock()

	return nil
}

func (s *Session) Quote() *model.PriceQuote {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.quote
}

func (s *Session) Status() Status {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return Status{
		State:       s.state,
		Transaction: s.state.TransactionState(),
		Message:     s.message,
		AttemptID:   s.attemptID,
	}
}

// RefreshFlag flips after every verdict.
func (s *Session) RefreshFlag() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.refresh
}

// Close cancels the whitelist poll. No poll read happens after Close returns. A transaction
// already sent is not aborted, its outcome is just no longer awaited.
func (s *Session) Close() {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	s.mutex.Unlock()

	s.cronManager.Cancel()
}

// Submit runs one attempt and returns when it reaches SUCCESS or ERROR. The returned error is
// non-nil exactly when the attempt ended in ERROR, or when it could not start.
func (s *Session) Submit(ctx context.Context, form model.PitchForm) (*Outcome, error) {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return nil, ErrSessionClosed
	}

	if s.busy {
		s.mutex.Unlock()
		return nil, ErrSubmissionInProgress
	}

	s.busy = true
	s.attemptID = uuid.NewString()
	s.message = ""
	outcome := &Outcome{AttemptID: s.attemptID}
	quote := s.quote
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.busy = false
		s.mutex.Unlock()
	}()

	ctx = xcontext.WithAttemptID(ctx, outcome.AttemptID)
	xcontext.Logger(ctx).Infof("Attempt %s: pitch submitted for token %s", outcome.AttemptID, form.Token)

	s.apply(ctx, Reset())

	walletChainID := s.cfg.WalletChainID()
	if err := s.preflight(ctx, form, quote, walletChainID); err != nil {
		return s.fail(ctx, outcome, Failed(), err)
	}

	s.apply(ctx, Submitted())

	entitlement, err := s.chain.Whitelist(ctx)
	if err != nil {
		return s.fail(ctx, outcome, Failed(),
			errorx.Wrap(errorx.Unavailable, err, "Cannot read your whitelist status."))
	}

	if s.apply(ctx, WhitelistRead(entitlement != nil && entitlement.Sign() > 0)) == StateNeedsPayment {
		if err := s.pay(ctx, outcome, quote, walletChainID); err != nil {
			return outcome, err
		}
	}

	return s.askLucy(ctx, outcome, form)
}

func (s *Session) preflight(
	ctx context.Context, form model.PitchForm, quote *model.PriceQuote, walletChainID int64,
) error {
	if err := ValidateForm(s.cfg.Game, form); err != nil {
		return err
	}

	if !s.chain.Connected() {
		return errorx.New(errorx.WalletNotReady, "Please connect your wallet first.")
	}

	if chain, ok := s.cfg.Chain(walletChainID); !ok || chain.AICAddress == "" {
		return errorx.New(errorx.UnsupportedChain,
			"Chain %d is not supported, please switch to %s.", walletChainID, s.cfg.HomeChain().Name)
	}

	if !quote.Available() {
		return errorx.New(errorx.Unavailable, "The game price is not available yet, please try again.")
	}

	balance, err := s.chain.StablecoinBalance(ctx, walletChainID)
	if err != nil {
		return errorx.Wrap(errorx.Unavailable, err, "Cannot read your %s balance.", s.cfg.Game.StablecoinSymbol)
	}

	return checkFunds(s.cfg.Game, quote.GamePrice, balance)
}

// pay moves the session from NEEDS_PAYMENT to AI_CALL, through approve, payGame and the
// whitelist wait when needed. On failure the session is in ERROR.
func (s *Session) pay(
	ctx context.Context, outcome *Outcome, quote *model.PriceQuote, walletChainID int64,
) error {
	allowance, err := s.chain.StablecoinAllowance(ctx, walletChainID)
	if err != nil {
		_, err = s.fail(ctx, outcome, Failed(),
			errorx.Wrap(errorx.Unavailable, err, "Cannot read your %s allowance.", s.cfg.Game.StablecoinSymbol))
		return err
	}

	sufficient := allowance != nil && allowance.Cmp(quote.GamePrice) >= 0
	if s.apply(ctx, AllowanceRead(sufficient)) == StateApprovePending {
		update, err := s.chain.ApproveStablecoin(ctx, walletChainID, s.approveAmount(quote.GamePrice))
		outcome.ApproveTx = update.Hash
		if err != nil {
			xcontext.Logger(ctx).Errorf("Approve error: %v", err)
			_, err = s.fail(ctx, outcome, ApproveFailed(),
				errorx.Wrap(errorx.ApproveFailed, err, "Error: %s approve transaction failed: %v",
					s.cfg.Game.StablecoinSymbol, err))
			return err
		}

		s.apply(ctx, ApproveConfirmed())
	}

	update, err := s.chain.PayGame(ctx, walletChainID, *quote)
	outcome.PayTx = update.Hash

	// The quote was spent, or at least handed to the wallet. Never send it twice.
	s.renewQuote(ctx, quote)

	if err != nil {
		xcontext.Logger(ctx).Errorf("payGame error: %v", err)
		_, err = s.fail(ctx, outcome, PayFailed(),
			errorx.Wrap(errorx.PayFailed, err, "Error: payGame transaction failed: %v", err))
		return err
	}

	homeChain := walletChainID == s.cfg.Game.HomeChainID
	if s.apply(ctx, PayConfirmed(homeChain)) == StateAwaitWhitelist {
		if err := s.awaitWhitelist(ctx); err != nil {
			_, err = s.fail(ctx, outcome, Failed(), err)
			return err
		}

		s.apply(ctx, EntitlementObserved())
	}

	return nil
}

func (s *Session) awaitWhitelist(ctx context.Context) error {
	job := NewWhitelistPollJob(s.chain, s.cronManager, s.cfg.Game.WhitelistPollInterval.Duration)
	s.cronManager.Register(job)
	defer job.Stop()

	select {
	case <-job.Entitled():
		return nil
	case <-ctx.Done():
		return errorx.Wrap(errorx.Unavailable, ctx.Err(), "Stopped waiting for the whitelist.")
	case <-s.done:
		return ErrSessionClosed
	}
}

func (s *Session) askLucy(ctx context.Context, outcome *Outcome, form model.PitchForm) (*Outcome, error) {
	home := s.cfg.HomeChain()
	resp, err := s.backend.Chat(ctx, model.ChatRequest{
		ChainID:                 form.ChainID,
		UserAddress:             s.chain.Address().Hex(),
		UserMessage:             form,
		SwapATargetTokenAddress: home.USDCAddress,
		SwapBTargetTokenAddress: form.Token,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Error during AI call: %v", err)
		return s.fail(ctx, outcome, AIFailed(),
			errorx.Wrap(errorx.AIService, err, "Lucy could not answer right now, please try again."))
	}

	answer := model.AIResponse{
		PitchForm:      form,
		AIResponseText: resp.AIResponseText,
		Success:        resp.Success,
	}

	s.mutex.Lock()
	s.refresh = !s.refresh
	s.mutex.Unlock()

	outcome.State = s.apply(ctx, AIAnswered())
	outcome.Response = &answer

	result := "lose"
	if answer.Success {
		result = "win"
	}
	lucycommon.PromCounters[lucycommon.PitchSubmissionTotal].WithLabelValues(result).Inc()
	xcontext.Logger(ctx).Infof("Attempt %s: Lucy answered, success = %t", outcome.AttemptID, answer.Success)

	s.listener.Answered(answer)
	return outcome, nil
}

func (s *Session) apply(ctx context.Context, ev Event) State {
	s.mutex.Lock()
	from := s.state
	to, err := Transition(from, ev)
	if err != nil {
		s.mutex.Unlock()
		xcontext.Logger(ctx).Errorf("Attempt %s: %v", xcontext.AttemptID(ctx), err)
		return from
	}
	s.state = to
	s.mutex.Unlock()

	if from != to {
		xcontext.Logger(ctx).Debugf("Attempt %s: %s -> %s", xcontext.AttemptID(ctx), from, to)
		s.listener.Transitioned(from, to)
	}

	return to
}

func (s *Session) fail(ctx context.Context, outcome *Outcome, ev Event, err error) (*Outcome, error) {
	if s.apply(ctx, ev) != StateError {
		s.apply(ctx, Failed())
	}

	s.mutex.Lock()
	s.message = err.Error()
	outcome.State = s.state
	s.mutex.Unlock()

	lucycommon.PromCounters[lucycommon.PitchSubmissionTotal].WithLabelValues("error").Inc()
	s.listener.Failed(err)

	return outcome, err
}

func (s *Session) approveAmount(price *big.Int) *big.Int {
	amount, err := decimal.NewFromString(s.cfg.Game.ApproveAmount)
	if err != nil {
		return price
	}

	units, err := ethutil.ToBaseUnits(amount, s.cfg.Game.StablecoinDecimals)
	if err != nil || units.Cmp(price) < 0 {
		return price
	}

	return units
}

func (s *Session) renewQuote(ctx context.Context, used *model.PriceQuote) {
	s.mutex.Lock()
	if s.quote == used {
		s.quote = nil
	}
	s.mutex.Unlock()

	if err := s.Load(ctx); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot renew the price quote: %v", err)
	}
}

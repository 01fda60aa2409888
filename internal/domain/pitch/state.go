package pitch

import (
	"fmt"

	"github.com/pitchlucy/lucy/pkg/enum"
)

type State string

var (
	StateIdle           = enum.New(State("idle"), "idle")
	StateWhitelistCheck = enum.New(State("whitelist_check"), "whitelist_check")
	StateNeedsPayment   = enum.New(State("needs_payment"), "needs_payment")
	StateApprovePending = enum.New(State("approve_pending"), "approve_pending")
	StatePayPending     = enum.New(State("pay_pending"), "pay_pending")
	StateAwaitWhitelist = enum.New(State("await_whitelist"), "await_whitelist")
	StateAICall         = enum.New(State("ai_call"), "ai_call")
	StateSuccess        = enum.New(State("success"), "success")
	StateError          = enum.New(State("error"), "error")
)

// Terminal states end an attempt. Only Reset leaves them.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateError
}

// Describe is the status line shown while the state is current.
func (s State) Describe() string {
	switch s {
	case StateWhitelistCheck:
		return "Checking your whitelist status..."
	case StateNeedsPayment:
		return "Checking your allowance..."
	case StateApprovePending:
		return "Approving the game contract..."
	case StatePayPending:
		return "Paying the game fee..."
	case StateAwaitWhitelist:
		return "Waiting for the payment to reach the home chain..."
	case StateAICall:
		return "Lucy is reading your pitch..."
	case StateSuccess:
		return "Lucy has answered."
	case StateError:
		return "The submission failed."
	default:
		return ""
	}
}

type TransactionState string

var (
	TransactionIdle       = enum.New(TransactionState("idle"), "idle")
	TransactionInProgress = enum.New(TransactionState("in-progress"), "in-progress")
	TransactionSuccess    = enum.New(TransactionState("success"), "success")
	TransactionError      = enum.New(TransactionState("error"), "error")
)

func (s State) TransactionState() TransactionState {
	switch s {
	case StateIdle:
		return TransactionIdle
	case StateSuccess:
		return TransactionSuccess
	case StateError:
		return TransactionError
	default:
		return TransactionInProgress
	}
}

type EventType string

var (
	EventSubmitted           = enum.New(EventType("submitted"), "submitted")
	EventWhitelistRead       = enum.New(EventType("whitelist_read"), "whitelist_read")
	EventAllowanceRead       = enum.New(EventType("allowance_read"), "allowance_read")
	EventApproveConfirmed    = enum.New(EventType("approve_confirmed"), "approve_confirmed")
	EventApproveFailed       = enum.New(EventType("approve_failed"), "approve_failed")
	EventPayConfirmed        = enum.New(EventType("pay_confirmed"), "pay_confirmed")
	EventPayFailed           = enum.New(EventType("pay_failed"), "pay_failed")
	EventEntitlementObserved = enum.New(EventType("entitlement_observed"), "entitlement_observed")
	EventAIAnswered          = enum.New(EventType("ai_answered"), "ai_answered")
	EventAIFailed            = enum.New(EventType("ai_failed"), "ai_failed")
	EventFailed              = enum.New(EventType("failed"), "failed")
	EventReset               = enum.New(EventType("reset"), "reset")
)

// Event is an input of the state machine. Flag carries the outcome of reads: whether the wallet
// is whitelisted, whether the allowance covers the price, whether the payment was on the home chain.
type Event struct {
	Type EventType
	Flag bool
}

func Submitted() Event                     { return Event{Type: EventSubmitted} }
func WhitelistRead(whitelisted bool) Event { return Event{Type: EventWhitelistRead, Flag: whitelisted} }
func AllowanceRead(sufficient bool) Event  { return Event{Type: EventAllowanceRead, Flag: sufficient} }
func ApproveConfirmed() Event              { return Event{Type: EventApproveConfirmed} }
func ApproveFailed() Event                 { return Event{Type: EventApproveFailed} }
func PayConfirmed(homeChain bool) Event    { return Event{Type: EventPayConfirmed, Flag: homeChain} }
func PayFailed() Event                     { return Event{Type: EventPayFailed} }
func EntitlementObserved() Event           { return Event{Type: EventEntitlementObserved} }
func AIAnswered() Event                    { return Event{Type: EventAIAnswered} }
func AIFailed() Event                      { return Event{Type: EventAIFailed} }
func Failed() Event                        { return Event{Type: EventFailed} }
func Reset() Event                         { return Event{Type: EventReset} }

// Transition is the whole submission flow. It has no side effects; the session performs the
// work that belongs to the state it enters.
func Transition(from State, ev Event) (State, error) {
	switch {
	case ev.Type == EventReset && (from == StateIdle || from.Terminal()):
		return StateIdle, nil

	case ev.Type == EventFailed && !from.Terminal():
		// Validation fails in IDLE, reads and cancellation in any working state.
		return StateError, nil
	}

	switch from {
	case StateIdle:
		if ev.Type == EventSubmitted {
			return StateWhitelistCheck, nil
		}

	case StateWhitelistCheck:
		if ev.Type == EventWhitelistRead {
			if ev.Flag {
				return StateAICall, nil
			}
			return StateNeedsPayment, nil
		}

	case StateNeedsPayment:
		if ev.Type == EventAllowanceRead {
			if ev.Flag {
				return StatePayPending, nil
			}
			return StateApprovePending, nil
		}

	case StateApprovePending:
		switch ev.Type {
		case EventApproveConfirmed:
			return StatePayPending, nil
		case EventApproveFailed:
			return StateError, nil
		}

	case StatePayPending:
		switch ev.Type {
		case EventPayConfirmed:
			if ev.Flag {
				return StateAICall, nil
			}
			return StateAwaitWhitelist, nil
		case EventPayFailed:
			return StateError, nil
		}

	case StateAwaitWhitelist:
		if ev.Type == EventEntitlementObserved {
			return StateAICall, nil
		}

	case StateAICall:
		switch ev.Type {
		case EventAIAnswered:
			return StateSuccess, nil
		case EventAIFailed:
			return StateError, nil
		}
	}

	return from, fmt.Errorf("invalid event %s in state %s", ev.Type, from)
}

package pitch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	testCases := []struct {
		from State
		ev   Event
		want State
	}{
		{StateIdle, Submitted(), StateWhitelistCheck},
		{StateWhitelistCheck, WhitelistRead(true), StateAICall},
		{StateWhitelistCheck, WhitelistRead(false), StateNeedsPayment},
		{StateNeedsPayment, AllowanceRead(false), StateApprovePending},
		{StateNeedsPayment, AllowanceRead(true), StatePayPending},
		{StateApprovePending, ApproveConfirmed(), StatePayPending},
		{StateApprovePending, ApproveFailed(), StateError},
		{StatePayPending, PayConfirmed(true), StateAICall},
		{StatePayPending, PayConfirmed(false), StateAwaitWhitelist},
		{StatePayPending, PayFailed(), StateError},
		{StateAwaitWhitelist, EntitlementObserved(), StateAICall},
		{StateAwaitWhitelist, Failed(), StateError},
		{StateAICall, AIAnswered(), StateSuccess},
		{StateAICall, AIFailed(), StateError},
		{StateIdle, Failed(), StateError},
		{StateSuccess, Reset(), StateIdle},
		{StateError, Reset(), StateIdle},
		{StateIdle, Reset(), StateIdle},
	}

	for _, tt := range testCases {
		t.Run(string(tt.from)+"/"+string(tt.ev.Type), func(t *testing.T) {
			got, err := Transition(tt.from, tt.ev)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTransition_Invalid(t *testing.T) {
	testCases := []struct {
		from State
		ev   Event
	}{
		{StateIdle, AIAnswered()},
		{StateWhitelistCheck, PayConfirmed(true)},
		{StateNeedsPayment, ApproveConfirmed()},
		{StateApprovePending, PayConfirmed(true)},
		{StateAwaitWhitelist, AIAnswered()},
		{StateSuccess, Submitted()},
		{StateSuccess, Failed()},
		{StateError, Failed()},
		{StateAICall, Reset()},
	}

	for _, tt := range testCases {
		t.Run(string(tt.from)+"/"+string(tt.ev.Type), func(t *testing.T) {
			got, err := Transition(tt.from, tt.ev)
			require.Error(t, err)
			require.Equal(t, tt.from, got)
		})
	}
}

func TestState_TransactionState(t *testing.T) {
	require.Equal(t, TransactionIdle, StateIdle.TransactionState())
	require.Equal(t, TransactionInProgress, StateApprovePending.TransactionState())
	require.Equal(t, TransactionInProgress, StateAwaitWhitelist.TransactionState())
	require.Equal(t, TransactionSuccess, StateSuccess.TransactionState())
	require.Equal(t, TransactionError, StateError.TransactionState())
}

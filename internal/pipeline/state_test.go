package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestState_Transitions(t *testing.T) {
	tests := []struct {
		from, to State
		allowed  bool
	}{
		{StateReceived, StateNormalized, true},
		{StateReceived, StateCanceled, true},
		{StateReceived, StateFailed, false},
		{StateReceived, StateDispatched, false},
		{StateNormalized, StateDispatched, true},
		{StateNormalized, StateFailed, true},
		{StateDispatched, StateTransformed, true},
		{StateDispatched, StateFailed, true},
		{StateTransformed, StateCompleted, true},
		{StateTransformed, StateFailed, false},
		{StateCompleted, StateReceived, false},
		{StateFailed, StateNormalized, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			require.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestState_IsTerminal(t *testing.T) {
	require.True(t, StateCompleted.IsTerminal())
	require.True(t, StateFailed.IsTerminal())
	require.True(t, StateCanceled.IsTerminal())
	require.False(t, StateDispatched.IsTerminal())
}

func TestTracker_RejectsIllegalTransition(t *testing.T) {
	tr := newTracker()
	require.NoError(t, tr.advance(StateNormalized))
	require.Error(t, tr.advance(StateCompleted))
	require.Equal(t, StateNormalized, tr.state)
	require.Equal(t, []State{StateReceived, StateNormalized}, tr.history)
}

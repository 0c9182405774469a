package pipeline

import "fmt"

// State is the lifecycle position of one compile request.
type State string

const (
	// StateReceived is the initial state of every request.
	StateReceived State = "received"
	// StateNormalized means the request has been handed to normalization.
	StateNormalized State = "normalized"
	// StateDispatched means the resolved request has been handed to its
	// compiler's transform.
	StateDispatched State = "dispatched"
	// StateTransformed means the transform returned its artifacts.
	StateTransformed State = "transformed"
	// StateCompleted means the result was handed back to the caller.
	StateCompleted State = "completed"
	// StateFailed is terminal; there are no retries.
	StateFailed State = "failed"
	// StateCanceled is terminal for requests never started because the
	// batch context was done.
	StateCanceled State = "canceled"
)

var transitions = map[State][]State{
	StateReceived:    {StateNormalized, StateCanceled},
	StateNormalized:  {StateDispatched, StateFailed},
	StateDispatched:  {StateTransformed, StateFailed},
	StateTransformed: {StateCompleted},
}

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCanceled
}

// CanTransition reports whether moving from s to next is allowed.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// tracker records the state history of one request.
type tracker struct {
	state   State
	history []State
}

func newTracker() *tracker {
	return &tracker{state: StateReceived, history: []State{StateReceived}}
}

func (t *tracker) advance(next State) error {
	if !t.state.CanTransition(next) {
		return fmt.Errorf("illegal request state transition %s -> %s", t.state, next)
	}
	t.state = next
	t.history = append(t.history, next)
	return nil
}

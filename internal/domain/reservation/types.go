package reservation

import (
	"innkeeper/internal/pkg/errs"
)

type State string

const (
	StatePending    State = "PENDING"
	StateConfirmed  State = "CONFIRMED"
	StateCheckedIn  State = "CHECKED_IN"
	StateCheckedOut State = "CHECKED_OUT"
	StateCancelled  State = "CANCELLED"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StatePending, StateConfirmed, StateCheckedIn, StateCheckedOut, StateCancelled:
		return true
	default:
		return false
	}
}

func (s State) IsTerminal() bool {
	return s == StateCheckedOut || s == StateCancelled
}

// HoldsRoom reports whether a reservation in this state still occupies its
// date range in the availability index.
func (s State) HoldsRoom() bool {
	return s == StatePending || s == StateConfirmed || s == StateCheckedIn
}

type Event string

const (
	EventConfirm  Event = "confirm"
	EventCheckIn  Event = "check-in"
	EventCheckOut Event = "check-out"
	EventCancel   Event = "cancel"
	EventExpire   Event = "expire"
)

var transitions = map[State]map[Event]State{
	StatePending: {
		EventConfirm: StateConfirmed,
		EventCancel:  StateCancelled,
		EventExpire:  StateCancelled,
	},
	StateConfirmed: {
		EventCheckIn: StateCheckedIn,
		EventCancel:  StateCancelled,
	},
	StateCheckedIn: {
		EventCheckOut: StateCheckedOut,
	},
}

// Next returns the state reached by applying e to s.
func (s State) Next(e Event) (State, error) {
	if to, ok := transitions[s][e]; ok {
		return to, nil
	}
	return s, errs.Wrapf(errs.ErrInvalidTransition, "cannot %s a %s reservation", e, s)
}

type CancelReason string

const (
	CancelReasonRequested   CancelReason = "requested"
	CancelReasonHoldExpired CancelReason = "hold_expired"
)

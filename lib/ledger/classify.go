package ledger

import "time"

// State is the lifecycle state of an order, derived at read time.
type State string

const (
	StateUnpaid  State = "unpaid"
	StatePaid    State = "paid"
	StateExpired State = "expired"
)

// ParseState accepts the lower case names used on the wire.
func ParseState(s string) (State, bool) {
	switch State(s) {
	case StateUnpaid, StatePaid, StateExpired:
		return State(s), true
	}
	return "", false
}

// Classification is the derived view of an order at a given instant.
// Never store it: Actionable flips once now passes ExpiresAt.
type Classification struct {
	State      State
	Actionable bool
}

// Classify derives the order's state at now.
func Classify(order Order, now time.Time) Classification {
	if order.Paid {
		return Classification{State: StatePaid}
	}
	if order.ExpiresAt == nil {
		return Classification{State: StateUnpaid}
	}
	if !order.ExpiresAt.After(now) {
		return Classification{State: StateExpired}
	}
	return Classification{State: StateUnpaid, Actionable: true}
}

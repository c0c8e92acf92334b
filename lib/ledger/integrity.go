package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateOrder       = errors.New("order appears in more than one bucket")
	ErrPaidWithoutTimestamp = errors.New("paid order without paid_at")
)

// CheckIntegrity verifies the assumptions the balance computation relies
// on: order ids are unique across both buckets of all relays, and paid
// orders carry a paid_at. Callers report violations, they do not repair them.
func CheckIntegrity(relays []Relay) error {
	var errs []error
	seen := map[string]string{}
	check := func(relayID string, o Order) {
		if prev, ok := seen[o.ID]; ok {
			errs = append(errs, fmt.Errorf("%w: order %s (relays %s, %s)", ErrDuplicateOrder, o.ID, prev, relayID))
		}
		seen[o.ID] = relayID
		if o.Paid && o.PaidAt == nil {
			errs = append(errs, fmt.Errorf("%w: order %s", ErrPaidWithoutTimestamp, o.ID))
		}
	}
	for _, r := range relays {
		for _, o := range r.PrimaryOrders {
			check(r.ID, o)
		}
		for _, o := range r.ClientOrders {
			check(r.ID, o)
		}
	}
	return errors.Join(errs...)
}

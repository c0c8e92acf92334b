// Package ledger turns a snapshot of relays and their orders into prepaid
// balances and order lifecycle states.
//
// Everything in this package is a pure function of its inputs. Record
// retrieval, authentication and settlement detection happen before the
// snapshot is handed in.
package ledger

import "time"

// Kind tells which billing bucket an order belongs to.
type Kind int

const (
	KindPrimary Kind = iota
	KindClient
)

func (k Kind) String() string {
	switch k {
	case KindPrimary:
		return "primary"
	case KindClient:
		return "client"
	}
	return "unknown"
}

// Order is one invoice for a relay. PaidAt is set iff Paid is true.
type Order struct {
	ID         string
	RelayID    string
	RelayName  string
	UserPubkey string
	Kind       Kind
	Amount     int64
	Paid       bool
	PaidAt     *time.Time
	ExpiresAt  *time.Time
}

// Relay is a hosted relay with its two order buckets.
type Relay struct {
	ID            string
	Name          string
	OwnerPubkey   string
	Status        string
	PrimaryOrders []Order
	ClientOrders  []Order
}

// Owner is a tenant identity.
type Owner struct {
	Pubkey  string
	IsAdmin bool
}

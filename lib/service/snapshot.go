package service

import (
	"github.com/relaytools/relaybilling/db/models"
	"github.com/relaytools/relaybilling/lib/ledger"
)

func relaySnapshot(relay *models.Relay) ledger.Relay {
	snapshot := ledger.Relay{
		ID:            relay.ID,
		Name:          relay.Name,
		Status:        relay.Status,
		PrimaryOrders: make([]ledger.Order, 0, len(relay.Orders)),
		ClientOrders:  make([]ledger.Order, 0, len(relay.ClientOrders)),
	}
	if relay.Owner != nil {
		snapshot.OwnerPubkey = relay.Owner.Pubkey
	}
	for _, o := range relay.Orders {
		order := orderSnapshot(o)
		order.RelayName = relay.Name
		snapshot.PrimaryOrders = append(snapshot.PrimaryOrders, order)
	}
	for _, o := range relay.ClientOrders {
		order := clientOrderSnapshot(o)
		order.RelayName = relay.Name
		snapshot.ClientOrders = append(snapshot.ClientOrders, order)
	}
	return snapshot
}

func orderSnapshot(order *models.Order) ledger.Order {
	snapshot := ledger.Order{
		ID:        order.ID,
		RelayID:   order.RelayID,
		Kind:      ledger.KindPrimary,
		Amount:    order.Amount,
		Paid:      order.Paid,
		PaidAt:    models.NullTimePtr(order.PaidAt),
		ExpiresAt: models.NullTimePtr(order.ExpiresAt),
	}
	if order.Relay != nil {
		snapshot.RelayName = order.Relay.Name
	}
	if order.User != nil {
		snapshot.UserPubkey = order.User.Pubkey
	}
	return snapshot
}

func clientOrderSnapshot(order *models.ClientOrder) ledger.Order {
	return ledger.Order{
		ID:         order.ID,
		RelayID:    order.RelayID,
		UserPubkey: order.Pubkey,
		Kind:       ledger.KindClient,
		Amount:     order.Amount,
		Paid:       order.Paid,
		PaidAt:     models.NullTimePtr(order.PaidAt),
		ExpiresAt:  models.NullTimePtr(order.ExpiresAt),
	}
}

func relaySnapshots(relays []models.Relay) []ledger.Relay {
	out := make([]ledger.Relay, len(relays))
	for i := range relays {
		out[i] = relaySnapshot(&relays[i])
	}
	return out
}

func orderSnapshots(orders []models.Order) []ledger.Order {
	out := make([]ledger.Order, len(orders))
	for i := range orders {
		out[i] = orderSnapshot(&orders[i])
	}
	return out
}

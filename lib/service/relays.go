package service

import (
	"context"

	"github.com/relaytools/relaybilling/db/models"
	"github.com/relaytools/relaybilling/lib/ledger"
)

// RelaysInScope loads the running relays visible in scope together with
// both order buckets.
func (svc *BillingService) RelaysInScope(ctx context.Context, scope ledger.Scope) ([]models.Relay, error) {
	relays := []models.Relay{}
	if !scope.Authenticated() {
		return relays, nil
	}

	query := svc.DB.NewSelect().Model(&relays).
		Relation("Owner").
		Relation("Orders").
		Relation("ClientOrders").
		Where("r.status = ?", ledger.RelayStatusRunning)
	if !scope.IsAdmin() {
		query.Where("owner.pubkey = ?", scope.Pubkey)
	}
	err := query.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return relays, nil
}

// OrdersInScope loads the primary orders placed by the callers in scope,
// newest first.
func (svc *BillingService) OrdersInScope(ctx context.Context, scope ledger.Scope) ([]models.Order, error) {
	orders := []models.Order{}
	if !scope.Authenticated() {
		return orders, nil
	}

	query := svc.DB.NewSelect().Model(&orders).
		Relation("Relay").
		Relation("User")
	if !scope.IsAdmin() {
		query.Where("o.user_id IN (?)", svc.DB.NewSelect().Model((*models.User)(nil)).Column("id").Where("u.pubkey = ?", scope.Pubkey))
	}
	query.OrderExpr("o.created_at DESC")
	err := query.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (svc *BillingService) FindOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order

	err := svc.DB.NewSelect().Model(&order).Relation("Relay").Where("o.id = ?", orderID).Limit(1).Scan(ctx)
	if err != nil {
		return &order, err
	}
	return &order, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/relaytools/relaybilling/db/models"
	"github.com/relaytools/relaybilling/lib/ledger"
)

// ResolveScope maps the pubkey of an authenticated caller to its scope.
// An empty pubkey or one without a user row gets the empty scope.
func (svc *BillingService) ResolveScope(ctx context.Context, pubkey string) (ledger.Scope, error) {
	if pubkey == "" {
		return ledger.ResolveScope("", nil), nil
	}
	owners, err := svc.Owners(ctx, pubkey)
	if err != nil {
		return ledger.Scope{}, fmt.Errorf("failed to load user %s: %w", pubkey, err)
	}
	return ledger.ResolveScope(pubkey, owners), nil
}

// BalanceReport computes the balances and orders visible to pubkey.
func (svc *BillingService) BalanceReport(ctx context.Context, pubkey string) (*ledger.Report, error) {
	scope, err := svc.ResolveScope(ctx, pubkey)
	if err != nil {
		return nil, err
	}
	return svc.ReportFor(ctx, scope)
}

// PlatformReport computes the balances of every running relay.
func (svc *BillingService) PlatformReport(ctx context.Context) (*ledger.Report, error) {
	return svc.ReportFor(ctx, ledger.Scope{Kind: ledger.ScopePlatform})
}

func (svc *BillingService) ReportFor(ctx context.Context, scope ledger.Scope) (*ledger.Report, error) {
	relays, err := svc.RelaysInScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load relays: %w", err)
	}
	orders, err := svc.OrdersInScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	snapshot := relaySnapshots(relays)
	if err := ledger.CheckIntegrity(snapshot); err != nil {
		svc.Logger.Warnf("Order integrity violated, balances may be off: %v", err)
		sentry.CaptureException(err)
	}

	// one instant for the whole report
	now := svc.now()
	return svc.aggregator().Aggregate(scope, snapshot, orderSnapshots(orders), now), nil
}

// OrderDetail loads an order and classifies it at the current instant.
func (svc *BillingService) OrderDetail(ctx context.Context, orderID string) (*models.Order, ledger.Classification, error) {
	order, err := svc.FindOrder(ctx, orderID)
	if err != nil {
		return nil, ledger.Classification{}, err
	}
	return order, ledger.Classify(orderSnapshot(order), svc.now()), nil
}

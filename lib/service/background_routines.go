package service

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// TakeBalanceSnapshot computes the platform report, refreshes the balance
// gauges and publishes the balances when RabbitMQ is configured.
func (svc *BillingService) TakeBalanceSnapshot(ctx context.Context) error {
	report, err := svc.PlatformReport(ctx)
	if err != nil {
		return err
	}
	recordBalanceMetrics(report)

	_, _, inArrears := report.Totals()
	svc.Logger.Infof("Balance snapshot: %d running relays, %d in arrears", len(report.Balances), inArrears)

	if svc.RabbitMQClient == nil {
		return nil
	}
	return svc.RabbitMQClient.PublishRelayBalances(ctx, report)
}

func (svc *BillingService) StartBalanceSnapshotRoutine(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	svc.Logger.Infof("Starting balance snapshot routine, interval %s", interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := svc.TakeBalanceSnapshot(ctx); err != nil {
				// keep going, the next tick may succeed
				svc.Logger.Errorf("Balance snapshot failed: %v", err)
				sentry.CaptureException(err)
			}
		}
	}
}

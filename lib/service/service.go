package service

import (
	"time"

	"github.com/relaytools/relaybilling/lib/ledger"
	"github.com/relaytools/relaybilling/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type BillingService struct {
	Config         *Config
	DB             *bun.DB
	Logger         *lecho.Logger
	RabbitMQClient rabbitmq.Client
	// Clock defaults to time.Now
	Clock func() time.Time
}

func (svc *BillingService) now() time.Time {
	if svc.Clock != nil {
		return svc.Clock()
	}
	return time.Now()
}

func (svc *BillingService) aggregator() ledger.Aggregator {
	return ledger.Aggregator{
		MonthlyInvoiceAmount: svc.Config.InvoiceAmount,
		ParallelThreshold:    svc.Config.ParallelRelayThreshold,
	}
}

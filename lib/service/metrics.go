package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/relaytools/relaybilling/lib/ledger"
)

var (
	relayBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "relay_balance_sats",
		Help: "Remaining prepaid balance of a running relay",
	}, []string{"relay_id", "relay_name"})

	relayClientPayments = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "relay_client_payments_sats",
		Help: "Sum of paid client orders of a running relay",
	}, []string{"relay_id", "relay_name"})

	relaysInArrears = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relays_in_arrears",
		Help: "Number of running relays with a negative balance",
	})
)

// recordBalanceMetrics replaces the gauges with the report's figures so
// relays that stopped running disappear.
func recordBalanceMetrics(report *ledger.Report) {
	relayBalance.Reset()
	relayClientPayments.Reset()
	for _, b := range report.Balances {
		relayBalance.WithLabelValues(b.RelayID, b.RelayName).Set(b.Balance)
		relayClientPayments.WithLabelValues(b.RelayID, b.RelayName).Set(float64(b.ClientPaymentsTotal))
	}
	_, _, inArrears := report.Totals()
	relaysInArrears.Set(float64(inArrears))
}

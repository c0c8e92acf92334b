package ledger

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// RelayStatusRunning is the only relay status that takes part in billing.
const RelayStatusRunning = "running"

// DefaultParallelThreshold is the relay count from which balances are
// computed concurrently.
const DefaultParallelThreshold = 64

// BalanceReport is the balance of one relay at the report instant.
type BalanceReport struct {
	OwnerPubkey          string    `json:"owner_pubkey"`
	RelayName            string    `json:"relay_name"`
	RelayID              string    `json:"relay_id"`
	PrimaryPaymentsTotal int64     `json:"primary_payments_total"`
	ClientPaymentsTotal  int64     `json:"client_payments_total"`
	BillingStart         time.Time `json:"billing_start"`
	Balance              float64   `json:"balance"`
	InArrears            bool      `json:"in_arrears"`
	DaysRemaining        float64   `json:"days_remaining"`
}

// OrderView is an order annotated for listing.
type OrderView struct {
	ID         string
	RelayID    string
	RelayName  string
	State      State
	PaidAt     *time.Time
	ExpiresAt  *time.Time
	Amount     int64
	Actionable bool
}

// Report is everything a caller may see, computed against a single instant.
type Report struct {
	Scope       Scope
	GeneratedAt time.Time
	CostPerDay  float64
	Balances    []BalanceReport
	Orders      []OrderView
}

// Totals sums the balances of the report.
func (r *Report) Totals() (balance float64, clientPayments int64, inArrears int) {
	for _, b := range r.Balances {
		balance += b.Balance
		clientPayments += b.ClientPaymentsTotal
		if b.InArrears {
			inArrears++
		}
	}
	return balance, clientPayments, inArrears
}

// Aggregator maps relays through ComputeBalance and orders through Classify.
type Aggregator struct {
	MonthlyInvoiceAmount int64
	// ParallelThreshold <= 0 means DefaultParallelThreshold.
	ParallelThreshold int
}

// Aggregate builds the report of scope at now with the default threshold.
func Aggregate(scope Scope, relays []Relay, orders []Order, now time.Time, monthlyInvoiceAmount int64) *Report {
	a := Aggregator{MonthlyInvoiceAmount: monthlyInvoiceAmount}
	return a.Aggregate(scope, relays, orders, now)
}

// Aggregate builds the report of scope. Every balance uses the same now.
func (a Aggregator) Aggregate(scope Scope, relays []Relay, orders []Order, now time.Time) *Report {
	report := &Report{
		Scope:       scope,
		GeneratedAt: now,
		CostPerDay:  CostPerDay(a.MonthlyInvoiceAmount),
		Balances:    []BalanceReport{},
		Orders:      []OrderView{},
	}
	if !scope.Authenticated() {
		return report
	}

	visible := make([]Relay, 0, len(relays))
	for _, r := range relays {
		if r.Status == RelayStatusRunning && scope.Includes(r.OwnerPubkey) {
			visible = append(visible, r)
		}
	}
	report.Balances = a.balances(visible, report.CostPerDay, now)

	for _, o := range orders {
		if o.Kind != KindPrimary || !scope.Includes(o.UserPubkey) {
			continue
		}
		c := Classify(o, now)
		report.Orders = append(report.Orders, OrderView{
			ID:         o.ID,
			RelayID:    o.RelayID,
			RelayName:  o.RelayName,
			State:      c.State,
			PaidAt:     o.PaidAt,
			ExpiresAt:  o.ExpiresAt,
			Amount:     o.Amount,
			Actionable: c.Actionable,
		})
	}
	return report
}

func (a Aggregator) balances(relays []Relay, costPerDay float64, now time.Time) []BalanceReport {
	out := make([]BalanceReport, len(relays))
	threshold := a.ParallelThreshold
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	if len(relays) < threshold {
		for i, r := range relays {
			out[i] = relayBalance(r, costPerDay, now)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range relays {
		i := i
		g.Go(func() error {
			out[i] = relayBalance(relays[i], costPerDay, now)
			return nil
		})
	}
	// relayBalance cannot fail
	_ = g.Wait()
	return out
}

func relayBalance(r Relay, costPerDay float64, now time.Time) BalanceReport {
	b := ComputeBalance(r.PrimaryOrders, r.ClientOrders, costPerDay, now)
	return BalanceReport{
		OwnerPubkey:          r.OwnerPubkey,
		RelayName:            r.Name,
		RelayID:              r.ID,
		PrimaryPaymentsTotal: b.PrimaryPaid,
		ClientPaymentsTotal:  b.ClientPaid,
		BillingStart:         b.BillingStart,
		Balance:              b.Remaining,
		InArrears:            b.InArrears(),
		DaysRemaining:        b.DaysRemaining(costPerDay),
	}
}

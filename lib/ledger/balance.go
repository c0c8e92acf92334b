package ledger

import "time"

// DaysPerMonth is the fixed month length used to derive the daily burn rate.
const DaysPerMonth = 30

// CostPerDay derives the daily burn rate from the monthly invoice amount.
func CostPerDay(monthlyInvoiceAmount int64) float64 {
	return float64(monthlyInvoiceAmount) / DaysPerMonth
}

// Balance is the result of amortizing a relay's payments up to an instant.
type Balance struct {
	PrimaryPaid  int64
	ClientPaid   int64
	BillingStart time.Time
	ElapsedDays  float64
	Remaining    float64
}

// InArrears reports whether the relay has consumed more than it paid for.
func (b Balance) InArrears() bool {
	return b.Remaining < 0
}

// DaysRemaining is how long the remaining credit lasts at costPerDay.
func (b Balance) DaysRemaining(costPerDay float64) float64 {
	if b.Remaining <= 0 || costPerDay <= 0 {
		return 0
	}
	return b.Remaining / costPerDay
}

// ComputeBalance amortizes the paid orders of one relay at costPerDay.
//
// The billing clock starts at the earliest paidAt among the paid primary orders.
// Without any settled primary order the clock starts at now, so nothing has
// been consumed yet.
func ComputeBalance(primary, client []Order, costPerDay float64, now time.Time) Balance {
	b := Balance{
		PrimaryPaid:  sumPaid(primary),
		ClientPaid:   sumPaid(client),
		BillingStart: now,
	}
	if start, ok := billingStart(primary); ok && start.Before(now) {
		b.BillingStart = start
	}
	b.ElapsedDays = now.Sub(b.BillingStart).Hours() / 24
	b.Remaining = float64(b.PrimaryPaid+b.ClientPaid) - b.ElapsedDays*costPerDay
	return b
}

func sumPaid(orders []Order) int64 {
	var total int64
	for _, o := range orders {
		if o.Paid {
			total += o.Amount
		}
	}
	return total
}

func billingStart(primary []Order) (time.Time, bool) {
	var (
		start time.Time
		found bool
	)
	for _, o := range primary {
		if !o.Paid || o.PaidAt == nil {
			continue
		}
		if !found || o.PaidAt.Before(start) {
			start = *o.PaidAt
			found = true
		}
	}
	return start, found
}

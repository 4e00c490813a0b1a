// Package ledger holds the pure aggregation functions that derive dashboard
// values from a user's transaction list.
package ledger

import (
	"math"

	"github.com/financer-app/apiserver/types"
)

// RecentTrailLimit bounds dashboard.miniCharts.recentTransactions.
const RecentTrailLimit = 7

// Recompute derives the balance from a transaction list. Positive amounts
// count toward income, negative amounts toward expenses (as absolute
// values). NaN and infinite amounts contribute zero to both totals; the
// aggregator may run against partially validated payloads and must not fail.
func Recompute(transactions []types.Transaction) types.Balance {
	var balance types.Balance
	for _, tx := range transactions {
		amount := tx.Amount
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			continue
		}
		if amount > 0 {
			balance.TotalIncome += amount
		} else if amount < 0 {
			balance.TotalExpenses += -amount
		}
	}
	balance.NetBalance = balance.TotalIncome - balance.TotalExpenses
	return balance
}

// PushRecent appends the absolute amount to the recent-transactions trail
// and truncates it to the last RecentTrailLimit entries, oldest dropped
// first. The input slice is not modified.
func PushRecent(trail []float64, amount float64) []float64 {
	next := make([]float64, 0, len(trail)+1)
	next = append(next, trail...)
	next = append(next, math.Abs(amount))
	if len(next) > RecentTrailLimit {
		next = next[len(next)-RecentTrailLimit:]
	}
	return next
}

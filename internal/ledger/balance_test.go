package ledger

import (
	"math"
	"testing"

	"github.com/financer-app/apiserver/types"
	"github.com/stretchr/testify/assert"
)

func TestRecompute(t *testing.T) {
	tests := []struct {
		name         string
		transactions []types.Transaction
		want         types.Balance
	}{
		{
			name:         "empty ledger",
			transactions: nil,
			want:         types.Balance{},
		},
		{
			name: "single expense",
			transactions: []types.Transaction{
				{Category: "Food", Description: "Food", Amount: -150},
			},
			want: types.Balance{TotalIncome: 0, TotalExpenses: 150, NetBalance: -150},
		},
		{
			name: "mixed income and expenses",
			transactions: []types.Transaction{
				{Amount: 2500},
				{Amount: -800},
				{Amount: 100.5},
				{Amount: -99.5},
			},
			want: types.Balance{TotalIncome: 2600.5, TotalExpenses: 899.5, NetBalance: 1701},
		},
		{
			name: "zero amounts count toward neither total",
			transactions: []types.Transaction{
				{Amount: 0},
				{Amount: 10},
			},
			want: types.Balance{TotalIncome: 10, TotalExpenses: 0, NetBalance: 10},
		},
		{
			name: "non-finite amounts contribute zero",
			transactions: []types.Transaction{
				{Amount: math.NaN()},
				{Amount: math.Inf(1)},
				{Amount: math.Inf(-1)},
				{Amount: 42},
			},
			want: types.Balance{TotalIncome: 42, TotalExpenses: 0, NetBalance: 42},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recompute(tt.transactions))
		})
	}
}

func TestPushRecent(t *testing.T) {
	trail := []float64{}
	for _, amount := range []float64{1, -2, 3, -4, 5, -6, 7, -8, 9} {
		trail = PushRecent(trail, amount)
	}

	// Only the last seven absolute amounts survive, oldest dropped first.
	assert.Equal(t, []float64{3, 4, 5, 6, 7, 8, 9}, trail)
}

func TestPushRecentDoesNotMutateInput(t *testing.T) {
	trail := []float64{1, 2, 3}
	got := PushRecent(trail, -4)

	assert.Equal(t, []float64{1, 2, 3}, trail)
	assert.Equal(t, []float64{1, 2, 3, 4}, got)
}

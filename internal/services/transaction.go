package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/financer-app/apiserver/internal/events"
	"github.com/financer-app/apiserver/internal/ledger"
	"github.com/financer-app/apiserver/internal/store"
	"github.com/financer-app/apiserver/types"
)

const dateLayout = "2006-01-02"

// TransactionInput is the payload for the dedicated append path. A nil
// Amount means the field was absent from the request.
type TransactionInput struct {
	Date        string
	Description string
	Category    string
	Amount      *float64
}

// TransactionService appends ledger entries and keeps the dashboard
// aggregates consistent with them.
type TransactionService struct {
	store  store.UserStore
	events events.Publisher
	now    func() time.Time
}

// NewTransactionService constructs a TransactionService.
func NewTransactionService(userStore store.UserStore, publisher events.Publisher) *TransactionService {
	return &TransactionService{
		store:  userStore,
		events: publisher,
		now:    time.Now,
	}
}

// AddTransaction validates the input, appends the entry to the user's
// ledger, recomputes the balance, bounds the recent-amounts trail, and
// refreshes the quick-add defaults, all in one serialized store update.
// The returned document has the credential stripped.
func (s *TransactionService) AddTransaction(ctx context.Context, email string, input TransactionInput) (types.UserDocument, error) {
	if input.Amount == nil {
		return types.UserDocument{}, fmt.Errorf("%w: numeric amount is required", ErrInvalidTransaction)
	}
	if math.IsNaN(*input.Amount) || math.IsInf(*input.Amount, 0) {
		return types.UserDocument{}, fmt.Errorf("%w: amount must be finite", ErrInvalidTransaction)
	}
	if strings.TrimSpace(input.Description) == "" {
		return types.UserDocument{}, fmt.Errorf("%w: description is required", ErrInvalidTransaction)
	}
	if strings.TrimSpace(input.Category) == "" {
		return types.UserDocument{}, fmt.Errorf("%w: category is required", ErrInvalidTransaction)
	}

	now := s.now()
	tx := types.Transaction{
		ID:          now.UnixMilli(),
		Date:        input.Date,
		Description: input.Description,
		Category:    input.Category,
		Amount:      *input.Amount,
	}
	if strings.TrimSpace(tx.Date) == "" {
		tx.Date = now.Format(dateLayout)
	}

	doc, err := s.store.Update(ctx, NormalizeEmail(email), func(doc types.UserDocument) (types.UserDocument, error) {
		doc.Transactions = append(doc.Transactions, tx)
		doc.Dashboard.Balance = ledger.Recompute(doc.Transactions)
		doc.Dashboard.MiniCharts.RecentTransactions = ledger.PushRecent(doc.Dashboard.MiniCharts.RecentTransactions, tx.Amount)
		doc.Dashboard.MiniCharts.IncomeVsExpense = types.IncomeVsExpense{
			Income:  doc.Dashboard.Balance.TotalIncome,
			Expense: doc.Dashboard.Balance.TotalExpenses,
		}
		doc.Dashboard.QuickAddDefaults = pushQuickAdd(doc.Dashboard.QuickAddDefaults, tx)
		return doc, nil
	})
	if err != nil {
		return types.UserDocument{}, err
	}

	event := events.NewEvent(events.TypeTransactionAdded, doc.Email)
	event.Transaction = &tx
	s.events.Publish(ctx, event)

	return doc.Sanitized(), nil
}

// pushQuickAdd records the category (deduplicated) and the entry date for
// the frontend's quick-add form.
func pushQuickAdd(defaults types.QuickAddDefaults, tx types.Transaction) types.QuickAddDefaults {
	found := false
	for _, category := range defaults.Categories {
		if category == tx.Category {
			found = true
			break
		}
	}
	if !found {
		defaults.Categories = append(defaults.Categories, tx.Category)
	}
	date := tx.Date
	defaults.LastUsedDate = &date
	return defaults
}

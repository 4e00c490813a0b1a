package services

import (
	"context"
	"testing"

	"github.com/financer-app/apiserver/internal/events"
	"github.com/financer-app/apiserver/internal/store"
	"github.com/financer-app/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture(t *testing.T) (*UserService, *store.MemoryStore, *eventRecorder) {
	t.Helper()
	memory := store.NewMemoryStore()
	accounts := NewAccountService(memory, events.NopPublisher{})
	_, err := accounts.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	recorder := &eventRecorder{}
	return NewUserService(memory, recorder), memory, recorder
}

func TestUpdateBudgetsReplacesMap(t *testing.T) {
	users, memory, recorder := newUserFixture(t)

	budgets := map[string]float64{"Rent": 900}
	_, err := users.Update(context.Background(), "ann@x.com", types.UserPatch{Budgets: &budgets})
	require.NoError(t, err)

	replacement := map[string]float64{"Food": 5000}
	user, err := users.Update(context.Background(), "Ann@X.com", types.UserPatch{Budgets: &replacement})
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"Food": 5000}, user.Budgets)
	assert.Empty(t, user.Password)

	stored, err := memory.GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Food": 5000}, stored.Budgets)

	all := recorder.all()
	require.Len(t, all, 2)
	assert.Equal(t, events.TypeUserUpdated, all[0].Type)
}

func TestUpdateWithoutTransactionsKeepsBalance(t *testing.T) {
	users, memory, _ := newUserFixture(t)

	// Seed a ledger directly so the document has a non-zero balance.
	_, err := memory.Update(context.Background(), "ann@x.com", func(doc types.UserDocument) (types.UserDocument, error) {
		doc.Transactions = []types.Transaction{{ID: 1, Amount: 100}}
		doc.Dashboard.Balance = types.Balance{TotalIncome: 100, NetBalance: 100}
		return doc, nil
	})
	require.NoError(t, err)

	budgets := map[string]float64{"Food": 5000}
	user, err := users.Update(context.Background(), "ann@x.com", types.UserPatch{Budgets: &budgets})
	require.NoError(t, err)

	assert.Equal(t, types.Balance{TotalIncome: 100, NetBalance: 100}, user.Dashboard.Balance)
	assert.Len(t, user.Transactions, 1)
}

func TestUpdateBulkTransactionReplace(t *testing.T) {
	users, _, _ := newUserFixture(t)

	replacement := []types.Transaction{
		{ID: 1, Date: "2026-01-01", Description: "Salary", Category: "Income", Amount: 3000},
		{ID: 2, Date: "2026-01-05", Description: "Rent", Category: "Housing", Amount: -900},
	}
	user, err := users.Update(context.Background(), "ann@x.com", types.UserPatch{Transactions: &replacement})
	require.NoError(t, err)

	assert.Equal(t, types.Balance{TotalIncome: 3000, TotalExpenses: 900, NetBalance: 2100}, user.Dashboard.Balance)
}

func TestUpdateCannotChangeEmail(t *testing.T) {
	users, memory, _ := newUserFixture(t)

	other := "evil@x.com"
	user, err := users.Update(context.Background(), "ann@x.com", types.UserPatch{Email: &other})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", user.Email)

	_, err = memory.GetByEmail(context.Background(), "evil@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateHashesPatchedPassword(t *testing.T) {
	users, memory, _ := newUserFixture(t)

	password := "newsecret"
	_, err := users.Update(context.Background(), "ann@x.com", types.UserPatch{Password: &password})
	require.NoError(t, err)

	stored, err := memory.GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "newsecret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newsecret")))
}

func TestUpdateUnknownUser(t *testing.T) {
	users, _, recorder := newUserFixture(t)

	name := "Nobody"
	_, err := users.Update(context.Background(), "nobody@x.com", types.UserPatch{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, recorder.all())
}

package merge

import (
	"encoding/json"
	"testing"

	"github.com/financer-app/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedDoc() types.UserDocument {
	doc := types.NewUserDocument("Ann", "ann@x.com", "$2a$10$storedhash")
	doc.Transactions = []types.Transaction{
		{ID: 1, Date: "2026-01-02", Description: "Salary", Category: "Income", Amount: 2000},
		{ID: 2, Date: "2026-01-03", Description: "Groceries", Category: "Food", Amount: -150},
	}
	doc.Dashboard.Balance = types.Balance{TotalIncome: 2000, TotalExpenses: 150, NetBalance: 1850}
	doc.Budgets = map[string]float64{"Rent": 900, "Food": 300}
	return doc
}

func TestApplyEmptyPatchIsIdentity(t *testing.T) {
	stored := storedDoc()
	assert.Equal(t, stored, Apply(stored, types.UserPatch{}))
}

func TestApplyProtectsEmail(t *testing.T) {
	stored := storedDoc()
	other := "other@x.com"

	merged := Apply(stored, types.UserPatch{Email: &other})

	assert.Equal(t, "ann@x.com", merged.Email)
}

func TestApplyPreservesCredentialWhenOmitted(t *testing.T) {
	stored := storedDoc()
	name := "Ann B."

	merged := Apply(stored, types.UserPatch{Name: &name})

	assert.Equal(t, stored.Password, merged.Password)
	assert.Equal(t, "Ann B.", merged.Name)
}

func TestApplyTakesPresentCredential(t *testing.T) {
	stored := storedDoc()
	updated := "$2a$10$newhash"

	merged := Apply(stored, types.UserPatch{Password: &updated})

	assert.Equal(t, updated, merged.Password)
}

func TestApplyReplacesBudgetsWholesale(t *testing.T) {
	stored := storedDoc()
	budgets := map[string]float64{"Food": 5000}

	merged := Apply(stored, types.UserPatch{Budgets: &budgets})

	// Replacement, not addition: the prior Rent entry is gone.
	assert.Equal(t, map[string]float64{"Food": 5000}, merged.Budgets)
	// No transactions field in the patch, so the balance is untouched.
	assert.Equal(t, stored.Dashboard.Balance, merged.Dashboard.Balance)
	assert.Equal(t, stored.Transactions, merged.Transactions)
}

func TestApplyRecomputesBalanceForTransactions(t *testing.T) {
	stored := storedDoc()
	replacement := []types.Transaction{
		{ID: 9, Date: "2026-02-01", Description: "Bonus", Category: "Income", Amount: 500},
		{ID: 10, Date: "2026-02-02", Description: "Dinner", Category: "Food", Amount: -80},
	}

	merged := Apply(stored, types.UserPatch{Transactions: &replacement})

	assert.Equal(t, replacement, merged.Transactions)
	assert.Equal(t, types.Balance{TotalIncome: 500, TotalExpenses: 80, NetBalance: 420}, merged.Dashboard.Balance)
}

func TestApplyRecomputesBalanceOverPatchedDashboard(t *testing.T) {
	stored := storedDoc()
	replacement := []types.Transaction{{ID: 9, Amount: 100}}
	dashboard := types.Dashboard{
		Balance: types.Balance{TotalIncome: 999, TotalExpenses: 999, NetBalance: 999},
	}

	merged := Apply(stored, types.UserPatch{Transactions: &replacement, Dashboard: &dashboard})

	// The patched dashboard lands, but its balance is overwritten by the
	// recompute from the merged ledger.
	assert.Equal(t, types.Balance{TotalIncome: 100, TotalExpenses: 0, NetBalance: 100}, merged.Dashboard.Balance)
}

func TestApplyPreservesReportsAndSettings(t *testing.T) {
	stored := storedDoc()
	stored.Reports.CategoryBreakdown = json.RawMessage(`{"Food":{"total":150,"share":0.08}}`)
	stored.Settings.Theme = "dark"
	budgets := map[string]float64{"Travel": 200}

	merged := Apply(stored, types.UserPatch{Budgets: &budgets})

	assert.Equal(t, stored.Reports, merged.Reports)
	assert.Equal(t, stored.Settings, merged.Settings)
}

func TestApplyPatchFromJSON(t *testing.T) {
	stored := storedDoc()

	var patch types.UserPatch
	require.NoError(t, json.Unmarshal([]byte(`{"budgets":{"Food":5000},"email":"evil@x.com"}`), &patch))

	merged := Apply(stored, patch)

	assert.Equal(t, "ann@x.com", merged.Email)
	assert.Equal(t, map[string]float64{"Food": 5000}, merged.Budgets)
}

package types

import "encoding/json"

// UserDocument is the full per-user record: profile, transaction ledger,
// derived dashboard aggregates, budgets, and the report/settings blocks
// maintained by the reporting pipeline.
type UserDocument struct {
	// Name is the user's display name, trimmed on write.
	Name string `json:"name"`

	// Email is the unique primary key. It is stored trimmed and lowercased
	// and is immutable after registration.
	Email string `json:"email"`

	// Password holds the bcrypt hash of the user's password. It is persisted
	// with the document but cleared by Sanitized before any API response.
	Password string `json:"password,omitempty"`

	// Transactions is the ledger in insertion order. Entry order is
	// chronological entry order, not date order.
	Transactions []Transaction `json:"transactions"`

	// Dashboard holds derived aggregates. Dashboard.Balance is always
	// recomputed from Transactions and never independently authored.
	Dashboard Dashboard `json:"dashboard"`

	// Budgets maps category name to a monthly limit.
	Budgets map[string]float64 `json:"budgets"`

	// Reports is populated by the reporting pipeline and preserved verbatim
	// across unrelated updates.
	Reports Reports `json:"reports"`

	// Settings holds user preferences.
	Settings Settings `json:"settings"`
}

// Dashboard is the derived/cached view backing the frontend dashboard.
type Dashboard struct {
	Balance          Balance          `json:"balance"`
	QuickAddDefaults QuickAddDefaults `json:"quickAddDefaults"`
	MiniCharts       MiniCharts       `json:"miniCharts"`
}

// Balance aggregates the ledger. Positive amounts are income, negative
// amounts are expenses; the sign is the sole classifier.
type Balance struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetBalance    float64 `json:"netBalance"`
}

// QuickAddDefaults feeds the quick-add form: categories the user has entered
// and the date of the most recent entry.
type QuickAddDefaults struct {
	Categories   []string `json:"categories"`
	LastUsedDate *string  `json:"lastUsedDate"`
}

// MiniCharts backs the dashboard mini charts. RecentTransactions keeps the
// absolute amounts of the most recent entries, oldest first.
type MiniCharts struct {
	IncomeVsExpense    IncomeVsExpense `json:"incomeVsExpense"`
	RecentTransactions []float64       `json:"recentTransactions"`
}

type IncomeVsExpense struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Reports carries reporting data owned by out-of-scope features. The fields
// are raw JSON so whatever the pipeline writes round-trips verbatim.
type Reports struct {
	CategoryBreakdown json.RawMessage `json:"categoryBreakdown"`
	NetWorthTrend     json.RawMessage `json:"netWorthTrend"`
	MonthlySpending   json.RawMessage `json:"monthlySpending"`
}

// Settings holds user preferences.
type Settings struct {
	Theme        string   `json:"theme"`
	ExportFormat []string `json:"exportFormat"`
}

// UserPatch is a partial update decoded from a PUT body. A nil field was
// absent from the payload; a present field replaces the stored one wholesale.
type UserPatch struct {
	Name         *string             `json:"name"`
	Email        *string             `json:"email"`
	Password     *string             `json:"password"`
	Transactions *[]Transaction      `json:"transactions"`
	Dashboard    *Dashboard          `json:"dashboard"`
	Budgets      *map[string]float64 `json:"budgets"`
	Reports      *Reports            `json:"reports"`
	Settings     *Settings           `json:"settings"`
}

// NewUserDocument builds a fresh document with every derived field at its
// zero/empty state. Name and email are expected to be normalized already;
// passwordHash is the bcrypt hash to store.
func NewUserDocument(name, email, passwordHash string) UserDocument {
	return UserDocument{
		Name:         name,
		Email:        email,
		Password:     passwordHash,
		Transactions: []Transaction{},
		Dashboard: Dashboard{
			QuickAddDefaults: QuickAddDefaults{
				Categories: []string{},
			},
			MiniCharts: MiniCharts{
				RecentTransactions: []float64{},
			},
		},
		Budgets: map[string]float64{},
		Reports: Reports{
			CategoryBreakdown: json.RawMessage(`{}`),
			NetWorthTrend:     json.RawMessage(`[]`),
			MonthlySpending:   json.RawMessage(`[]`),
		},
		Settings: Settings{
			Theme:        "light",
			ExportFormat: []string{},
		},
	}
}

// Sanitized returns a copy safe for API responses: the stored credential is
// cleared, which drops the password key from the encoded JSON entirely.
func (u UserDocument) Sanitized() UserDocument {
	u.Password = ""
	return u
}

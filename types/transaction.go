package types

// Transaction is a single ledger entry.
type Transaction struct {
	// ID is unique within a user's ledger and assigned at creation time
	// from the wall clock in milliseconds, so entries sort by recency.
	// Collisions within the same millisecond are an accepted limitation.
	ID int64 `json:"id"`

	// Date is a calendar date in YYYY-MM-DD form. It defaults to the
	// creation date when omitted from the request.
	Date string `json:"date"`

	Description string `json:"description"`
	Category    string `json:"category"`

	// Amount is signed: positive for income, negative for expenses.
	Amount float64 `json:"amount"`
}

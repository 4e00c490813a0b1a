// Package merge implements the document merge rules for partial updates.
// Keeping the rules in one pure function means protected-field and
// derived-field handling is enforced centrally instead of per call site.
package merge

import (
	"github.com/financer-app/apiserver/internal/ledger"
	"github.com/financer-app/apiserver/types"
)

// Apply overlays a partial update onto a stored document and returns the
// result. Rules, in order:
//
//  1. start from a copy of the stored document;
//  2. every field present in the patch replaces the stored field wholesale
//     (supplying budgets replaces the entire map, it does not add to it);
//  3. email is never changed, regardless of the patch;
//  4. a patch without a password field leaves the stored credential
//     untouched (a present password is taken as-is: the caller hashes it);
//  5. if the patch carries a transactions field, dashboard.balance is
//     recomputed from the merged ledger, even when the patch also supplied
//     a dashboard.
//
// Apply is pure: no I/O and no error conditions.
func Apply(stored types.UserDocument, patch types.UserPatch) types.UserDocument {
	merged := stored

	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Password != nil {
		merged.Password = *patch.Password
	}
	if patch.Transactions != nil {
		merged.Transactions = *patch.Transactions
	}
	if patch.Dashboard != nil {
		merged.Dashboard = *patch.Dashboard
	}
	if patch.Budgets != nil {
		merged.Budgets = *patch.Budgets
	}
	if patch.Reports != nil {
		merged.Reports = *patch.Reports
	}
	if patch.Settings != nil {
		merged.Settings = *patch.Settings
	}

	// patch.Email is deliberately ignored: the key is immutable.
	merged.Email = stored.Email

	if patch.Transactions != nil {
		merged.Dashboard.Balance = ledger.Recompute(merged.Transactions)
	}

	return merged
}

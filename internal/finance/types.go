// Package finance holds the domain types and pure derivation logic for
// balances, transactions, budgets, and historical periods.
package finance

import "github.com/google/uuid"

// Transaction types as the server encodes them.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// NoCategory is the sentinel stored for transactions submitted without a
// category.
const NoCategory = "None"

// Status of a locally created transaction relative to the server.
type Status string

const (
	// StatusConfirmed means the server acknowledged the write (or the
	// transaction came from the server in the first place).
	StatusConfirmed Status = "confirmed"
	// StatusPending means the write has been dispatched but not acknowledged.
	StatusPending Status = "pending"
	// StatusFailed means the write was rejected or never reached the server.
	StatusFailed Status = "failed"
)

// Transaction is a single income or expense entry. Amount is always a
// non-negative magnitude; the sign is implied by Type.
type Transaction struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`

	// LocalID and Status track optimistic writes. Neither is sent to or
	// returned by the server; server-loaded transactions have an empty
	// LocalID and StatusConfirmed.
	LocalID string `json:"-"`
	Status  Status `json:"-"`
}

// NewTransaction builds a locally created transaction: the empty category is
// normalized to NoCategory and a local ID is assigned for status tracking.
func NewTransaction(description string, amount float64, typ, category, date string) Transaction {
	if category == "" {
		category = NoCategory
	}
	return Transaction{
		Description: description,
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Date:        date,
		LocalID:     uuid.NewString(),
		Status:      StatusPending,
	}
}

// Budget is a per-category spending limit. Spent is never authoritative:
// it is recomputed from the matching expense transactions of the same
// period before anything is displayed.
type Budget struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Spent    float64 `json:"spent"`
}

// Period is a closed-out date range with its own transaction list and
// budget snapshot. Periods are read-only once loaded; Income and Expenses
// are derived from the period's own transactions, never the live list.
type Period struct {
	StartDate    string        `json:"StartDate"`
	EndDate      string        `json:"EndDate"`
	Transactions []Transaction `json:"Transactions"`
	Budgets      []Budget      `json:"Budgets"`

	Income   float64 `json:"-"`
	Expenses float64 `json:"-"`
}

// FinancialData is the server snapshot fetched once per session. The
// client's in-memory copy is the sole working set until the next refetch.
type FinancialData struct {
	Balance              float64       `json:"Balance"`
	Transactions         []Transaction `json:"Transactions"`
	CurrentTransactions  []Transaction `json:"CurrentTransactions"`
	Budgets              []Budget      `json:"Budgets"`
	PreviousTransactions []Period      `json:"PreviousTransactions"`
}

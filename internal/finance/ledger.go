package finance

// Ledger is the mutable working set for the current period: the running
// balance, this period's transactions, and the budget definitions.
//
// The balance is seeded from the server snapshot and adjusted once per
// locally added transaction. It is never recomputed from the transaction
// list: the seed already accounts for history the client does not hold, so
// a recompute would double-count.
type Ledger struct {
	balance      float64
	transactions []Transaction
	budgets      []Budget
}

// NewLedger seeds a ledger from a server snapshot. Budget spend is
// re-derived from the snapshot's current transactions immediately, so a
// stale server Spent value is never shown.
func NewLedger(data *FinancialData) *Ledger {
	l := &Ledger{
		balance:      data.Balance,
		transactions: make([]Transaction, len(data.CurrentTransactions)),
		budgets:      make([]Budget, len(data.Budgets)),
	}
	copy(l.transactions, data.CurrentTransactions)
	copy(l.budgets, data.Budgets)
	for i := range l.transactions {
		l.transactions[i].Status = StatusConfirmed
	}
	l.recomputeSpend()
	return l
}

// Balance returns the running balance.
func (l *Ledger) Balance() float64 { return l.balance }

// Transactions returns the current period's transactions.
func (l *Ledger) Transactions() []Transaction { return l.transactions }

// Budgets returns the budget list with derived spend.
func (l *Ledger) Budgets() []Budget { return l.budgets }

// TotalIncome sums this period's income transactions.
func (l *Ledger) TotalIncome() float64 { return TotalIncome(l.transactions) }

// TotalExpenses sums this period's expense transactions.
func (l *Ledger) TotalExpenses() float64 { return TotalExpenses(l.transactions) }

// Add appends a locally created transaction, applies its amount to the
// running balance exactly once, and re-derives budget spend.
func (l *Ledger) Add(tx Transaction) {
	if tx.Category == "" {
		tx.Category = NoCategory
	}
	if tx.Status == "" {
		tx.Status = StatusPending
	}
	l.transactions = append(l.transactions, tx)

	switch tx.Type {
	case TypeIncome:
		l.balance += tx.Amount
	case TypeExpense:
		l.balance -= tx.Amount
	}

	l.recomputeSpend()
}

// Confirm marks a pending transaction as acknowledged by the server.
func (l *Ledger) Confirm(localID string) {
	l.setStatus(localID, StatusConfirmed)
}

// Fail marks a pending transaction whose server write did not succeed.
// The entry and its balance adjustment are kept; the status makes the
// divergence from the server visible instead of silent.
func (l *Ledger) Fail(localID string) {
	l.setStatus(localID, StatusFailed)
}

func (l *Ledger) setStatus(localID string, s Status) {
	for i := range l.transactions {
		if l.transactions[i].LocalID == localID {
			l.transactions[i].Status = s
			return
		}
	}
}

// SetBudget adds or updates a category limit. Spend is re-derived so a new
// category picks up any matching expenses already in the period.
func (l *Ledger) SetBudget(category string, limit float64) {
	for i := range l.budgets {
		if l.budgets[i].Category == category {
			l.budgets[i].Limit = limit
			l.recomputeSpend()
			return
		}
	}
	l.budgets = append(l.budgets, Budget{Category: category, Limit: limit})
	l.recomputeSpend()
}

// RemoveBudget deletes a category's budget definition. Transactions in
// that category are unaffected.
func (l *Ledger) RemoveBudget(category string) {
	for i := range l.budgets {
		if l.budgets[i].Category == category {
			l.budgets = append(l.budgets[:i], l.budgets[i+1:]...)
			return
		}
	}
}

// ResetMonth clears the current period's transactions and zeroes budget
// spend, keeping the limits. The balance carries over; the server archives
// the closed period.
func (l *Ledger) ResetMonth() {
	l.transactions = nil
	for i := range l.budgets {
		l.budgets[i].Spent = 0
	}
}

func (l *Ledger) recomputeSpend() {
	l.budgets = ApplyBudgets(l.budgets, SpentByCategory(l.transactions))
}

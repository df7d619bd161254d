package finance

import "testing"

func seedLedger() *Ledger {
	return NewLedger(&FinancialData{
		Balance: 200,
		CurrentTransactions: []Transaction{
			{Type: TypeExpense, Amount: 25, Category: "Food", Date: "2024-03-01"},
		},
		Budgets: []Budget{
			{Category: "Food", Limit: 100, Spent: 12345}, // stale, must be re-derived
			{Category: "Travel", Limit: 50},
		},
	})
}

func TestNewLedgerRederivesSpend(t *testing.T) {
	l := seedLedger()

	if !approx(l.Budgets()[0].Spent, 25) {
		t.Fatalf("seeded Food spent = %.2f, want 25 (stale server value must not survive)", l.Budgets()[0].Spent)
	}
	if !approx(l.Budgets()[1].Spent, 0) {
		t.Fatalf("seeded Travel spent = %.2f, want 0", l.Budgets()[1].Spent)
	}
}

func TestLedgerBalanceIncremental(t *testing.T) {
	l := seedLedger()

	l.Add(NewTransaction("dinner", 30, TypeExpense, "Food", "2024-03-02"))
	if !approx(l.Balance(), 170) {
		t.Fatalf("balance after expense = %.2f, want 170", l.Balance())
	}

	l.Add(NewTransaction("refund", 50, TypeIncome, "Work", "2024-03-03"))
	if !approx(l.Balance(), 220) {
		t.Fatalf("balance after income = %.2f, want 220", l.Balance())
	}

	// The seeded expense never re-applies: balance reflects the seed plus
	// each local add exactly once.
	if !approx(l.Budgets()[0].Spent, 55) {
		t.Fatalf("Food spent = %.2f, want 55", l.Budgets()[0].Spent)
	}
}

func TestLedgerAddNormalizesCategory(t *testing.T) {
	l := seedLedger()
	l.Add(Transaction{Type: TypeExpense, Amount: 5, Date: "2024-03-02"})

	txs := l.Transactions()
	got := txs[len(txs)-1]
	if got.Category != NoCategory {
		t.Fatalf("category = %q, want %q", got.Category, NoCategory)
	}
	if got.Status != StatusPending {
		t.Fatalf("status = %q, want %q", got.Status, StatusPending)
	}
}

func TestLedgerConfirmAndFail(t *testing.T) {
	l := seedLedger()

	a := NewTransaction("a", 10, TypeExpense, "Food", "2024-03-02")
	b := NewTransaction("b", 10, TypeExpense, "Food", "2024-03-02")
	l.Add(a)
	l.Add(b)

	l.Confirm(a.LocalID)
	l.Fail(b.LocalID)

	var gotA, gotB Status
	for _, tx := range l.Transactions() {
		switch tx.LocalID {
		case a.LocalID:
			gotA = tx.Status
		case b.LocalID:
			gotB = tx.Status
		}
	}
	if gotA != StatusConfirmed {
		t.Fatalf("a status = %q, want confirmed", gotA)
	}
	if gotB != StatusFailed {
		t.Fatalf("b status = %q, want failed", gotB)
	}

	// A failed write keeps its optimistic effects; only the flag changes.
	if !approx(l.Balance(), 180) {
		t.Fatalf("balance = %.2f, want 180", l.Balance())
	}
}

func TestLedgerSetBudget(t *testing.T) {
	l := seedLedger()

	l.SetBudget("Food", 300)
	if !approx(l.Budgets()[0].Limit, 300) {
		t.Fatalf("updated Food limit = %.2f, want 300", l.Budgets()[0].Limit)
	}

	// A new category picks up expenses already in the period.
	l.Add(NewTransaction("hotel", 80, TypeExpense, "Lodging", "2024-03-04"))
	l.SetBudget("Lodging", 200)

	var lodging Budget
	for _, b := range l.Budgets() {
		if b.Category == "Lodging" {
			lodging = b
		}
	}
	if !approx(lodging.Spent, 80) {
		t.Fatalf("new Lodging budget spent = %.2f, want 80", lodging.Spent)
	}
}

func TestLedgerRemoveBudget(t *testing.T) {
	l := seedLedger()
	l.RemoveBudget("Food")

	for _, b := range l.Budgets() {
		if b.Category == "Food" {
			t.Fatal("Food budget still present after removal")
		}
	}
	if len(l.Transactions()) != 1 {
		t.Fatal("removing a budget must not touch transactions")
	}
}

func TestLedgerResetMonth(t *testing.T) {
	l := seedLedger()
	l.Add(NewTransaction("dinner", 30, TypeExpense, "Food", "2024-03-02"))
	balance := l.Balance()

	l.ResetMonth()

	if len(l.Transactions()) != 0 {
		t.Fatalf("transactions after reset = %d, want 0", len(l.Transactions()))
	}
	for _, b := range l.Budgets() {
		if !approx(b.Spent, 0) {
			t.Fatalf("%s spent after reset = %.2f, want 0", b.Category, b.Spent)
		}
	}
	if !approx(l.Budgets()[0].Limit, 100) {
		t.Fatal("limits must survive a reset")
	}
	if !approx(l.Balance(), balance) {
		t.Fatal("balance must carry over a reset")
	}
}

package finance

import (
	"sort"
	"strings"
)

// SpentByCategory sums expense amounts per category. Categories with no
// expense transactions are absent from the map; callers default to 0.
func SpentByCategory(txs []Transaction) map[string]float64 {
	spent := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}
		spent[tx.Category] += tx.Amount
	}
	return spent
}

// ApplyBudgets returns budgets with Spent rewritten from the given
// per-category sums. Limits pass through unchanged; missing categories
// derive spent = 0.
func ApplyBudgets(budgets []Budget, spent map[string]float64) []Budget {
	out := make([]Budget, len(budgets))
	for i, b := range budgets {
		b.Spent = spent[b.Category]
		out[i] = b
	}
	return out
}

// TotalIncome sums the amounts of income transactions.
func TotalIncome(txs []Transaction) float64 {
	var total float64
	for _, tx := range txs {
		if tx.Type == TypeIncome {
			total += tx.Amount
		}
	}
	return total
}

// TotalExpenses sums the amounts of expense transactions.
func TotalExpenses(txs []Transaction) float64 {
	var total float64
	for _, tx := range txs {
		if tx.Type == TypeExpense {
			total += tx.Amount
		}
	}
	return total
}

// SummarizePeriod derives Income, Expenses, and per-budget spend for one
// historical period, scoped strictly to that period's own transactions.
func SummarizePeriod(p Period) Period {
	p.Income = TotalIncome(p.Transactions)
	p.Expenses = TotalExpenses(p.Transactions)
	p.Budgets = ApplyBudgets(p.Budgets, SpentByCategory(p.Transactions))
	return p
}

// SummarizePeriods derives every period independently.
func SummarizePeriods(periods []Period) []Period {
	out := make([]Period, len(periods))
	for i, p := range periods {
		out[i] = SummarizePeriod(p)
	}
	return out
}

// Filter narrows a transaction list for display.
type Filter struct {
	Type     string // "income", "expense", or "" for all
	Category string // exact match, "" for all
	DateFrom string // inclusive ISO date, "" for open
	DateTo   string // inclusive ISO date, "" for open
}

// FilterTransactions applies a display filter. ISO-8601 date strings
// compare correctly as plain strings.
func FilterTransactions(txs []Transaction, f Filter) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		if f.Category != "" && !strings.EqualFold(tx.Category, f.Category) {
			continue
		}
		if f.DateFrom != "" && tx.Date < f.DateFrom {
			continue
		}
		if f.DateTo != "" && tx.Date > f.DateTo {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// SortByDateDesc orders transactions most recent first. The sort is stable
// so same-day entries keep their insertion order.
func SortByDateDesc(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Paginate returns the 1-based page of the given size, plus the total page
// count. An out-of-range page yields an empty slice.
func Paginate(txs []Transaction, page, perPage int) ([]Transaction, int) {
	if perPage <= 0 {
		perPage = 10
	}
	totalPages := (len(txs) + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		return nil, totalPages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(txs) {
		end = len(txs)
	}
	return txs[start:end], totalPages
}

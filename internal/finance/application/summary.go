package application

import (
	"sort"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

const (
	incomeSeriesName  = "Income"
	expenseSeriesName = "Expense"
)

// CategoryTotal is one slice of the expense-by-category chart.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Summary is everything the dashboard derives from a transaction snapshot.
type Summary struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Balance           decimal.Decimal
	IncomeVsExpense   []CategoryTotal
	ExpenseByCategory []CategoryTotal
	Recent            []domain.Transaction
}

func TotalIncome(transactions []domain.Transaction) decimal.Decimal {
	return sumWhere(transactions, domain.Transaction.IsIncome)
}

func TotalExpense(transactions []domain.Transaction) decimal.Decimal {
	return sumWhere(transactions, domain.Transaction.IsExpense)
}

func Balance(transactions []domain.Transaction) decimal.Decimal {
	return TotalIncome(transactions).Sub(TotalExpense(transactions))
}

func sumWhere(transactions []domain.Transaction, match func(domain.Transaction) bool) decimal.Decimal {
	total := decimal.Zero
	for _, transaction := range transactions {
		if match(transaction) {
			total = total.Add(transaction.Amount)
		}
	}
	return total
}

// ExpenseByCategory sums expenses per label of categories, keeping the order of
// categories and omitting labels whose sum is zero. Expenses whose category is
// not in categories are ignored.
func ExpenseByCategory(transactions []domain.Transaction, categories []string) []CategoryTotal {
	sums := make(map[string]decimal.Decimal, len(categories))
	for _, name := range categories {
		sums[name] = decimal.Zero
	}
	for _, transaction := range transactions {
		category, ok := transaction.Category()
		if !ok {
			continue
		}
		if sum, known := sums[category]; known {
			sums[category] = sum.Add(transaction.Amount)
		}
	}

	totals := make([]CategoryTotal, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	for _, name := range categories {
		if seen[name] || sums[name].IsZero() {
			continue
		}
		seen[name] = true
		totals = append(totals, CategoryTotal{Name: name, Value: sums[name]})
	}
	return totals
}

// RecentTransactions returns at most limit transactions, most recent first.
// The input slice is left untouched; equal dates keep their input order.
func RecentTransactions(transactions []domain.Transaction, limit int) []domain.Transaction {
	if limit <= 0 {
		return []domain.Transaction{}
	}
	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func Summarize(transactions []domain.Transaction, categories []string, limit int) Summary {
	income := TotalIncome(transactions)
	expense := TotalExpense(transactions)
	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
		IncomeVsExpense: []CategoryTotal{
			{Name: incomeSeriesName, Value: income},
			{Name: expenseSeriesName, Value: expense},
		},
		ExpenseByCategory: ExpenseByCategory(transactions, categories),
		Recent:            RecentTransactions(transactions, limit),
	}
}

package application

import (
	"testing"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []string{"Comida", "Transporte", "Entretenimiento", "Servicios", "Otros"}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func mustExpense(t *testing.T, amount string, category, description string, date time.Time) domain.Transaction {
	t.Helper()
	transaction, err := domain.NewExpense(decimal.RequireFromString(amount), category, description, date)
	require.NoError(t, err)
	return transaction
}

func mustIncome(t *testing.T, amount string, description string, date time.Time) domain.Transaction {
	t.Helper()
	transaction, err := domain.NewIncome(decimal.RequireFromString(amount), description, date)
	require.NoError(t, err)
	return transaction
}

func TestSummaryOfEmptyInput(t *testing.T) {
	assert.True(t, TotalIncome(nil).IsZero())
	assert.True(t, TotalExpense(nil).IsZero())
	assert.True(t, Balance([]domain.Transaction{}).IsZero())
	assert.Empty(t, ExpenseByCategory(nil, testCategories))
	assert.Empty(t, RecentTransactions(nil, 5))

	summary := Summarize(nil, testCategories, 10)
	assert.True(t, summary.Balance.IsZero())
	assert.Len(t, summary.IncomeVsExpense, 2)
	assert.Empty(t, summary.Recent)
}

func TestSummaryLunchAndSalary(t *testing.T) {
	lunch := mustExpense(t, "50", "Comida", "lunch", day(2024, time.January, 1))
	salary := mustIncome(t, "200", "salary", day(2024, time.January, 2))
	transactions := []domain.Transaction{lunch, salary}

	assert.True(t, TotalIncome(transactions).Equal(decimal.NewFromInt(200)))
	assert.True(t, TotalExpense(transactions).Equal(decimal.NewFromInt(50)))
	assert.True(t, Balance(transactions).Equal(decimal.NewFromInt(150)))

	byCategory := ExpenseByCategory(transactions, testCategories)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Comida", byCategory[0].Name)
	assert.True(t, byCategory[0].Value.Equal(decimal.NewFromInt(50)))

	assert.Equal(t, []domain.Transaction{salary}, RecentTransactions(transactions, 1))
}

func TestBalanceIdentity(t *testing.T) {
	transactions := []domain.Transaction{
		mustIncome(t, "100.12", "a", day(2023, time.January, 10)),
		mustExpense(t, "50.55", "Comida", "b", day(2023, time.January, 15)),
		mustExpense(t, "300.45", "Servicios", "c", day(2023, time.March, 5)),
		mustIncome(t, "0.01", "d", day(2023, time.March, 10)),
		mustExpense(t, "0.1", "Otros", "e", day(2023, time.March, 10)),
		mustExpense(t, "0.2", "Otros", "f", day(2023, time.March, 11)),
	}

	income := TotalIncome(transactions)
	expense := TotalExpense(transactions)
	assert.False(t, income.Add(expense).IsNegative())
	assert.True(t, Balance(transactions).Equal(income.Sub(expense)))
	assert.Equal(t, "-251.17", Balance(transactions).StringFixed(2))
	assert.Equal(t, "0.30", ExpenseByCategory(transactions, testCategories)[2].Value.StringFixed(2))
}

func TestExpenseByCategory(t *testing.T) {
	transactions := []domain.Transaction{
		mustExpense(t, "10", "Transporte", "bus", day(2024, time.May, 1)),
		mustExpense(t, "5", "Comida", "coffee", day(2024, time.May, 2)),
		mustExpense(t, "7", "Comida", "snack", day(2024, time.May, 3)),
		mustExpense(t, "99", "Viajes", "unknown category", day(2024, time.May, 4)),
		mustExpense(t, "1", "comida", "case mismatch", day(2024, time.May, 5)),
		mustIncome(t, "1000", "salary", day(2024, time.May, 6)),
	}

	totals := ExpenseByCategory(transactions, testCategories)
	require.Len(t, totals, 2)
	assert.Equal(t, "Comida", totals[0].Name)
	assert.True(t, totals[0].Value.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, "Transporte", totals[1].Name)
	assert.True(t, totals[1].Value.Equal(decimal.NewFromInt(10)))
	for _, total := range totals {
		assert.False(t, total.Value.IsZero())
	}
}

func TestRecentTransactions(t *testing.T) {
	first := mustIncome(t, "1", "first", day(2024, time.February, 1))
	second := mustExpense(t, "2", "Otros", "second", day(2024, time.February, 3))
	third := mustExpense(t, "3", "Otros", "third", day(2024, time.February, 2))
	sameDay := mustIncome(t, "4", "same day as second", day(2024, time.February, 3))
	transactions := []domain.Transaction{first, second, third, sameDay}

	recent := RecentTransactions(transactions, 3)
	require.Len(t, recent, 3)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].Date.After(recent[i-1].Date))
	}
	assert.Equal(t, third, recent[2])

	all := RecentTransactions(transactions, 10)
	assert.Equal(t, []domain.Transaction{second, sameDay, third, first}, all)

	assert.Empty(t, RecentTransactions(transactions, 0))
	assert.Equal(t, first, transactions[0], "input must not be reordered")
}

package domain

import (
	"strings"
	"testing"
	"time"

	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
		ok    bool
	}{
		{"income", KindIncome, true},
		{"Ingreso", KindIncome, true},
		{" expense ", KindExpense, true},
		{"GASTO", KindExpense, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.input)
		assert.Equal(t, tt.want, got, tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
	}
}

func TestNewExpense(t *testing.T) {
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	transaction, err := NewExpense(decimal.RequireFromString("12.345"), " Comida ", " lunch ", date)
	require.NoError(t, err)

	assert.True(t, transaction.IsExpense())
	assert.Equal(t, "12.35", transaction.Amount.String())
	assert.Equal(t, "lunch", transaction.Description)
	category, ok := transaction.Category()
	assert.True(t, ok)
	assert.Equal(t, "Comida", category)
}

func TestNewExpense_RequiresCategory(t *testing.T) {
	_, err := NewExpense(decimal.NewFromInt(1), "", "bus", time.Now())
	assert.ErrorIs(t, err, financeErrors.ErrMissingCategory)
}

func TestNewIncome_HasNoCategory(t *testing.T) {
	transaction, err := New(KindIncome, decimal.NewFromInt(1), "Comida", "salary", time.Now())
	require.NoError(t, err)
	category, ok := transaction.Category()
	assert.False(t, ok)
	assert.Empty(t, category)
}

func TestValidate(t *testing.T) {
	_, err := NewIncome(decimal.NewFromInt(-1), string(make([]byte, 201)), time.Now())
	assert.ErrorIs(t, err, financeErrors.ErrInvalidAmount)

	long := make([]rune, 201)
	for i := range long {
		long[i] = 'a'
	}
	_, err = NewIncome(decimal.NewFromInt(1), string(long), time.Now())
	assert.ErrorIs(t, err, financeErrors.ErrDescriptionLength)

	_, err = New(Kind("transfer"), decimal.NewFromInt(1), "", "x", time.Now())
	assert.ErrorIs(t, err, financeErrors.ErrInvalidType)
}

func TestValidate_AmountBounds(t *testing.T) {
	tests := []struct {
		amount string
		want   error
	}{
		{"999999999999.99", nil},
		{"999999999999.994", nil},
		{"999999999999.995", financeErrors.ErrAmountTooLarge},
		{"1000000000000", financeErrors.ErrAmountTooLarge},
		{"1e13", financeErrors.ErrAmountTooLarge},
		{"1e50000000", financeErrors.ErrAmountTooLarge},
		{"-1e50000000", financeErrors.ErrInvalidAmount},
		{"0e50000000", financeErrors.ErrInvalidAmount},
		{"1e-50000000", financeErrors.ErrInvalidAmount},
		{"0.005", nil},
		{"0.004", financeErrors.ErrInvalidAmount},
	}
	for _, tt := range tests {
		amount := decimal.RequireFromString(tt.amount)
		transaction, err := NewIncome(amount, "x", time.Now())
		if tt.want == nil {
			require.NoError(t, err, tt.amount)
			assert.LessOrEqual(t, int32(-2), transaction.Amount.Exponent(), tt.amount)
			continue
		}
		assert.ErrorIs(t, err, tt.want, tt.amount)
	}
}

func TestValidate_CountsCharacters(t *testing.T) {
	date := time.Now()

	_, err := NewIncome(decimal.NewFromInt(1), strings.Repeat("ñ", 200), date)
	assert.NoError(t, err)
	_, err = NewIncome(decimal.NewFromInt(1), strings.Repeat("ñ", 201), date)
	assert.ErrorIs(t, err, financeErrors.ErrDescriptionLength)

	_, err = NewExpense(decimal.NewFromInt(1), strings.Repeat("é", 100), "x", date)
	assert.NoError(t, err)
	_, err = NewExpense(decimal.NewFromInt(1), strings.Repeat("c", 101), "x", date)
	assert.ErrorIs(t, err, financeErrors.ErrCategoryLength)
}

func TestRestore(t *testing.T) {
	transaction, err := Restore("abc", KindExpense, decimal.NewFromInt(3), "Otros", "misc", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "abc", transaction.ID)

	_, err = Restore("abc", KindExpense, decimal.NewFromInt(3), "", "misc", time.Now())
	assert.Error(t, err)
}

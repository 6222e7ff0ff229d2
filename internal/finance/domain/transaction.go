package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

const (
	maxDescriptionLength = 200
	maxCategoryLength    = 100
	// Amounts are stored as NUMERIC(14,2).
	amountScale            = 2
	maxAmountIntegerDigits = 12
)

type TransactionRepository interface {
	Save(ctx context.Context, transaction Transaction) (Transaction, error)
	FindAll(ctx context.Context) ([]Transaction, error)
}

// Transaction is either an income or an expense. Only expenses carry a category,
// so kind and category are unexported and set through the constructors.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	kind        Kind
	category    string
}

// ParseKind accepts the canonical names and the legacy Spanish ones ("ingreso", "gasto").
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "ingreso":
		return KindIncome, true
	case "expense", "gasto":
		return KindExpense, true
	}
	return "", false
}

func NewIncome(amount decimal.Decimal, description string, date time.Time) (Transaction, error) {
	return New(KindIncome, amount, "", description, date)
}

func NewExpense(amount decimal.Decimal, category, description string, date time.Time) (Transaction, error) {
	return New(KindExpense, amount, category, description, date)
}

// New builds and validates a transaction of the given kind. A category passed
// together with KindIncome is dropped.
func New(kind Kind, amount decimal.Decimal, category, description string, date time.Time) (Transaction, error) {
	if checkAmount(amount) == nil {
		amount = amount.Round(amountScale)
	}
	t := Transaction{
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Date:        date,
		kind:        kind,
	}
	if kind == KindExpense {
		t.category = strings.TrimSpace(category)
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Restore rebuilds a stored transaction, applying the same rules as New.
func Restore(id string, kind Kind, amount decimal.Decimal, category, description string, date time.Time) (Transaction, error) {
	t, err := New(kind, amount, category, description, date)
	if err != nil {
		return Transaction{}, err
	}
	t.ID = id
	return t, nil
}

func (t Transaction) Kind() Kind {
	return t.kind
}

func (t Transaction) IsIncome() bool {
	return t.kind == KindIncome
}

func (t Transaction) IsExpense() bool {
	return t.kind == KindExpense
}

// Category returns the expense category; ok is false for incomes.
func (t Transaction) Category() (string, bool) {
	if t.kind != KindExpense {
		return "", false
	}
	return t.category, true
}

func (t Transaction) WithID(id string) Transaction {
	t.ID = id
	return t
}

func (t Transaction) Validate() error {
	var validationErrors = &financeErrors.ValidationErrors{}
	if t.kind != KindIncome && t.kind != KindExpense {
		validationErrors.Add(financeErrors.ErrInvalidType)
	}
	if err := checkAmount(t.Amount); err != nil {
		validationErrors.Add(err)
	}
	if t.Description == "" {
		validationErrors.Add(financeErrors.ErrMissingDescription)
	} else if utf8.RuneCountInString(t.Description) > maxDescriptionLength {
		validationErrors.Add(financeErrors.ErrDescriptionLength)
	}
	if t.kind == KindExpense {
		if t.category == "" {
			validationErrors.Add(financeErrors.ErrMissingCategory)
		} else if utf8.RuneCountInString(t.category) > maxCategoryLength {
			validationErrors.Add(financeErrors.ErrCategoryLength)
		}
	}
	return validationErrors.ErrOrNil()
}

// checkAmount bounds the magnitude of amount from its coefficient length and
// exponent alone, so values such as 1e50000000 are rejected without rescaling.
func checkAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return financeErrors.ErrInvalidAmount
	}
	// position of the most significant digit relative to the decimal point
	magnitude := int64(amount.NumDigits()) + int64(amount.Exponent())
	if magnitude > maxAmountIntegerDigits {
		return financeErrors.ErrAmountTooLarge
	}
	if magnitude < -amountScale {
		return financeErrors.ErrInvalidAmount
	}
	return nil
}

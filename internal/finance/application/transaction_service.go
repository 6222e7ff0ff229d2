package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

const dateOnlyLayout = "2006-01-02"

type CategoryServiceInterface interface {
	GetExpenseCategoryNames() ([]string, error)
}

// NewTransactionInput is an unvalidated transaction as submitted by a client.
type NewTransactionInput struct {
	Type        string
	Amount      decimal.Decimal
	Category    string
	Description string
	// Date is RFC 3339 or YYYY-MM-DD. Empty means now.
	Date string
}

type TransactionService struct {
	repo            domain.TransactionRepository
	categoryService CategoryServiceInterface
	now             func() time.Time
}

func NewTransactionService(repo domain.TransactionRepository, categoryService CategoryServiceInterface) *TransactionService {
	return &TransactionService{repo: repo, categoryService: categoryService, now: time.Now}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, input NewTransactionInput) (domain.Transaction, error) {
	var validationErrors = &financeErrors.ValidationErrors{}

	kind, _ := domain.ParseKind(input.Type)
	date, err := s.parseDate(input.Date)
	if err != nil {
		validationErrors.Add(financeErrors.ErrInvalidDate)
	}

	transaction, err := domain.New(kind, input.Amount, input.Category, input.Description, date)
	if err != nil {
		var fieldErrors *financeErrors.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return domain.Transaction{}, err
		}
		validationErrors.Errors = append(fieldErrors.Errors, validationErrors.Errors...)
	}
	if err := validationErrors.ErrOrNil(); err != nil {
		return domain.Transaction{}, err
	}

	saved, err := s.repo.Save(ctx, transaction)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	return saved, nil
}

func (s *TransactionService) parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.now().UTC(), nil
	}
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date.UTC(), nil
	}
	return time.Parse(dateOnlyLayout, value)
}

// ListTransactions returns every stored transaction, most recent first.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	return RecentTransactions(transactions, len(transactions)), nil
}

func (s *TransactionService) GetDashboard(ctx context.Context, limit int) (Summary, error) {
	transactions, err := s.repo.FindAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("find transactions: %w", err)
	}
	categories, err := s.categoryService.GetExpenseCategoryNames()
	if err != nil {
		return Summary{}, fmt.Errorf("load categories: %w", err)
	}
	return Summarize(transactions, categories, limit), nil
}

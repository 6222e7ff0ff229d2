package interfaces

import (
	"context"
	"errors"

	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
)

var errStoreDown = errors.New("connection refused")

type FailingTransactionService struct{}

func (m *FailingTransactionService) CreateTransaction(ctx context.Context, input application.NewTransactionInput) (domain.Transaction, error) {
	return domain.Transaction{}, errStoreDown
}

func (m *FailingTransactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return nil, errStoreDown
}

func (m *FailingTransactionService) GetDashboard(ctx context.Context, limit int) (application.Summary, error) {
	return application.Summary{}, errStoreDown
}

type MockCategoryService struct {
	categories []domain.Category
	shouldFail bool
}

func (m *MockCategoryService) GetExpenseCategories() ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errStoreDown
	}
	return m.categories, nil
}

func newTestTransactionService() *application.TransactionService {
	categories := application.NewCategoryService(infrastructure.NewStaticCategoryRepository(
		[]string{"Comida", "Transporte", "Entretenimiento", "Servicios", "Otros"},
	))
	return application.NewTransactionService(infrastructure.NewMemoryTransactionRepository(), categories)
}

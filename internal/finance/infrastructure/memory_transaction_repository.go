package infrastructure

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

// MemoryTransactionRepository keeps transactions in insertion order for the
// lifetime of the process.
type MemoryTransactionRepository struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
}

func NewMemoryTransactionRepository(seed ...domain.Transaction) *MemoryTransactionRepository {
	r := &MemoryTransactionRepository{}
	for _, transaction := range seed {
		if transaction.ID == "" {
			transaction = transaction.WithID(uuid.NewString())
		}
		r.transactions = append(r.transactions, transaction)
	}
	return r
}

func (r *MemoryTransactionRepository) Save(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	transaction = transaction.WithID(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, transaction)
	return transaction, nil
}

func (r *MemoryTransactionRepository) FindAll(_ context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transactions := make([]domain.Transaction, len(r.transactions))
	copy(transactions, r.transactions)
	return transactions, nil
}

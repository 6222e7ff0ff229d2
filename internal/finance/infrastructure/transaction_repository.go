package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) Save(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	var category sql.NullString
	if name, ok := transaction.Category(); ok {
		category = sql.NullString{String: name, Valid: true}
	}

	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO transactions (type, amount, category, description, date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`,
		string(transaction.Kind()), transaction.Amount, category, transaction.Description, transaction.Date,
	).Scan(&id)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return transaction.WithID(id), nil
}

func (r *PostgresTransactionRepository) FindAll(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, amount, category, description, date
        FROM transactions
        ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var (
			id, kind, description string
			amount                decimal.Decimal
			category              sql.NullString
			date                  time.Time
		)
		if err := rows.Scan(&id, &kind, &amount, &category, &description, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transaction, err := domain.Restore(id, domain.Kind(kind), amount, category.String, description, date)
		if err != nil {
			return nil, fmt.Errorf("restore transaction %s: %w", id, err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

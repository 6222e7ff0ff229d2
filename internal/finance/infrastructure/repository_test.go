package infrastructure

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMemoryTransactionRepository(t *testing.T) {
	ctx := context.Background()
	lunch, err := domain.NewExpense(decimal.RequireFromString("12.50"), "Comida", "lunch", time.Now())
	require.NoError(t, err)

	repo := NewMemoryTransactionRepository()
	first, err := repo.Save(ctx, lunch)
	require.NoError(t, err)
	second, err := repo.Save(ctx, lunch)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	all[0] = domain.Transaction{}
	again, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again[0].ID)
}

func TestStaticCategoryRepository(t *testing.T) {
	repo := NewStaticCategoryRepository([]string{" Comida ", "", "Transporte", "Comida"})

	categories, err := repo.FindExpenseCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Comida", categories[0].Name)
	assert.Equal(t, domain.KindExpense, categories[0].Type)
	assert.Equal(t, "Transporte", categories[1].Name)
}

func decodeDocument(t *testing.T, doc bson.M) transactionDocument {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var decoded transactionDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	return decoded
}

func TestTransactionDocumentLegacyFormat(t *testing.T) {
	date := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	doc := decodeDocument(t, bson.M{
		"_id":         primitive.NewObjectID(),
		"type":        "gasto",
		"amount":      12.5,
		"category":    "Comida",
		"description": "lunch",
		"date":        date,
	})

	transaction, err := doc.toDomain()
	require.NoError(t, err)
	assert.True(t, transaction.IsExpense())
	assert.Equal(t, "12.5", transaction.Amount.String())
	category, ok := transaction.Category()
	assert.True(t, ok)
	assert.Equal(t, "Comida", category)
	assert.True(t, transaction.Date.Equal(date))
}

func TestTransactionDocumentIncomeDropsCategory(t *testing.T) {
	amount, err := primitive.ParseDecimal128("1000.00")
	require.NoError(t, err)
	doc := decodeDocument(t, bson.M{
		"_id":         primitive.NewObjectID(),
		"type":        "ingreso",
		"amount":      amount,
		"category":    "Otros",
		"description": "salary",
		"date":        time.Now(),
	})

	transaction, err := doc.toDomain()
	require.NoError(t, err)
	assert.True(t, transaction.IsIncome())
	assert.True(t, transaction.Amount.Equal(decimal.NewFromInt(1000)))
	_, ok := transaction.Category()
	assert.False(t, ok)
}

func TestTransactionDocumentRejectsUnknownData(t *testing.T) {
	doc := decodeDocument(t, bson.M{"type": "transfer", "amount": 1, "description": "x", "date": time.Now()})
	_, err := doc.toDomain()
	assert.Error(t, err)

	doc = decodeDocument(t, bson.M{"type": "income", "amount": true, "description": "x", "date": time.Now()})
	_, err = doc.toDomain()
	assert.Error(t, err)
}

func TestRestoreTransactions_SkipsInvalidDocuments(t *testing.T) {
	ctx := context.Background()
	valid := primitive.NewObjectID()
	date := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	docs := []interface{}{
		bson.M{"_id": primitive.NewObjectID(), "type": "gasto", "amount": nil, "category": "Comida", "description": "NaN", "date": date},
		bson.M{"_id": valid, "type": "ingreso", "amount": 250.0, "description": "salary", "date": date},
		bson.M{"_id": primitive.NewObjectID(), "type": "gasto", "amount": 3, "category": "Otros", "description": strings.Repeat("x", 250), "date": date},
		bson.M{"_id": primitive.NewObjectID(), "type": "gasto", "amount": 3, "category": "Otros", "description": "bad date", "date": "yesterday"},
	}
	cursor, err := mongo.NewCursorFromDocuments(docs, nil, nil)
	require.NoError(t, err)

	transactions, err := restoreTransactions(ctx, cursor)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, valid.Hex(), transactions[0].ID)
	assert.True(t, transactions[0].Amount.Equal(decimal.NewFromInt(250)))
}

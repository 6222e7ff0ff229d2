package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const transactionsCollection = "transactions"

type transactionDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Type        string             `bson:"type"`
	Amount      bson.RawValue      `bson:"amount"`
	Category    *string            `bson:"category,omitempty"`
	Description string             `bson:"description"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
}

type MongoTransactionRepository struct {
	collection *mongo.Collection
}

func NewMongoTransactionRepository(db *mongo.Database) *MongoTransactionRepository {
	return &MongoTransactionRepository{collection: db.Collection(transactionsCollection)}
}

func (r *MongoTransactionRepository) Save(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	amount, err := primitive.ParseDecimal128(transaction.Amount.String())
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("encode amount: %w", err)
	}
	doc := bson.D{
		{Key: "type", Value: string(transaction.Kind())},
		{Key: "amount", Value: amount},
		{Key: "description", Value: transaction.Description},
		{Key: "date", Value: transaction.Date},
		{Key: "createdAt", Value: time.Now().UTC()},
	}
	if category, ok := transaction.Category(); ok {
		doc = append(doc, bson.E{Key: "category", Value: category})
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return transaction.WithID(id.Hex()), nil
}

func (r *MongoTransactionRepository) FindAll(ctx context.Context) ([]domain.Transaction, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	return restoreTransactions(ctx, cursor)
}

// restoreTransactions drains cursor, skipping documents that cannot be turned
// into a valid transaction.
func restoreTransactions(ctx context.Context, cursor *mongo.Cursor) ([]domain.Transaction, error) {
	defer cursor.Close(ctx)

	transactions := make([]domain.Transaction, 0, cursor.RemainingBatchLength())
	for cursor.Next(ctx) {
		var doc transactionDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Warn().Err(err).Str("id", cursor.Current.Lookup("_id").String()).Msg("Skipping undecodable transaction document")
			continue
		}
		transaction, err := doc.toDomain()
		if err != nil {
			log.Warn().Err(err).Str("id", doc.ID.Hex()).Msg("Skipping invalid transaction document")
			continue
		}
		transactions = append(transactions, transaction)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return transactions, nil
}

// toDomain also accepts documents written by the previous application, which
// stored amounts as plain numbers and types as "ingreso"/"gasto".
func (doc transactionDocument) toDomain() (domain.Transaction, error) {
	kind, ok := domain.ParseKind(doc.Type)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("unknown transaction type %q", doc.Type)
	}
	amount, err := decodeAmount(doc.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	var category string
	if doc.Category != nil {
		category = *doc.Category
	}
	return domain.Restore(doc.ID.Hex(), kind, amount, category, doc.Description, doc.Date.UTC())
}

func decodeAmount(value bson.RawValue) (decimal.Decimal, error) {
	switch value.Type {
	case bsontype.Decimal128:
		return decimal.NewFromString(value.Decimal128().String())
	case bsontype.Double:
		return decimal.NewFromFloat(value.Double()), nil
	case bsontype.Int32:
		return decimal.NewFromInt32(value.Int32()), nil
	case bsontype.Int64:
		return decimal.NewFromInt(value.Int64()), nil
	case bsontype.String:
		return decimal.NewFromString(value.StringValue())
	}
	return decimal.Decimal{}, fmt.Errorf("unsupported amount type %s", value.Type)
}

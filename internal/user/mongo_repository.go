package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (doc userDocument) toUser() *User {
	return &User{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt.UTC(),
	}
}

type mongoRepository struct {
	collection *mongo.Collection
}

const emailIndexName = "email_ci_unique"

// emailCollation compares emails ignoring case. Older registrations stored
// the address verbatim.
var emailCollation = &options.Collation{Locale: "en", Strength: 2}

// NewMongoUserRepository ensures a case-insensitive unique index on
// users.email. When existing documents already hold duplicate emails the index
// cannot be built; startup continues with a warning and duplicates are still
// refused by the lookup done before every registration.
func NewMongoUserRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	collection := db.Collection(usersCollection)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName(emailIndexName).
			SetUnique(true).
			SetCollation(emailCollation),
	})
	if err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("create users email index: %w", err)
		}
		log.Warn().Err(err).Msg("Users collection holds duplicate emails, unique email index not created")
	}
	return &mongoRepository{collection: collection}, nil
}

func (r *mongoRepository) createUser(ctx context.Context, user *User) error {
	doc := userDocument{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("could not create user: %w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	user.ID = id.Hex()
	user.CreatedAt = doc.CreatedAt
	return nil
}

// getUserByEmail returns the oldest user whose email matches ignoring case.
func (r *mongoRepository) getUserByEmail(ctx context.Context, email string) (*User, error) {
	opts := options.FindOne().
		SetCollation(emailCollation).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.D{{Key: "email", Value: email}}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}
	return doc.toUser(), nil
}

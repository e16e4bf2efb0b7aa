package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velora-beauty/velora/internal/shared"
)

const collection = "users"

// Repository defines data access for credential lookup and bootstrap.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, user User) error
}

// MongoRepository provides MongoDB backed persistence.
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository constructs a repository over the users collection.
func NewMongoRepository(db interface {
	Collection(name string) *mongo.Collection
}) *MongoRepository {
	return &MongoRepository{col: db.Collection(collection)}
}

// FindByEmail looks up a user by exact email match. Callers normalize
// casing before storing and comparing; the lookup itself does not.
func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Insert stores a new user record.
func (r *MongoRepository) Insert(ctx context.Context, user User) error {
	_, err := r.col.InsertOne(ctx, user)
	return err
}

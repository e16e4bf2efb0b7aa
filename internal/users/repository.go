package users

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora-beauty/velora/internal/shared"
)

const collection = "users"

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context, limit int64) ([]User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, user User) error
	Update(ctx context.Context, id string, update Update) error
	Delete(ctx context.Context, id string) error
}

// Repository provides MongoDB backed persistence.
type Repository struct {
	col *mongo.Collection
}

// NewRepository constructs a repository over the users collection.
func NewRepository(db interface {
	Collection(name string) *mongo.Collection
}) *Repository {
	return &Repository{col: db.Collection(collection)}
}

// List returns up to limit users with the credential hash projected out.
func (r *Repository) List(ctx context.Context, limit int64) ([]User, error) {
	opts := options.Find().
		SetProjection(bson.M{"passwordHash": 0}).
		SetLimit(limit)
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]User, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByEmail looks up one user by exact email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
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

// Insert stores a new user.
func (r *Repository) Insert(ctx context.Context, user User) error {
	_, err := r.col.InsertOne(ctx, user)
	return err
}

// Update applies the given field changes to one user.
func (r *Repository) Update(ctx context.Context, id string, update Update) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return shared.ErrNotFound
	}
	set := bson.M{"updatedAt": update.UpdatedAt}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Role != nil {
		set["role"] = *update.Role
	}
	if update.Permissions != nil {
		set["permissions"] = update.Permissions
	}
	if update.PasswordHash != nil {
		set["passwordHash"] = *update.PasswordHash
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes one user by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return shared.ErrNotFound
	}
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

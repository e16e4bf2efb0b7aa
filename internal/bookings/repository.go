package bookings

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora-beauty/velora/internal/shared"
)

const collection = "session_bookings"

// RepositoryPort defines data access for bookings.
type RepositoryPort interface {
	List(ctx context.Context, status string, skip, limit int64) ([]Booking, error)
	Insert(ctx context.Context, b Booking) error
	Update(ctx context.Context, id string, set bson.M) error
	Delete(ctx context.Context, id string) error
}

// Repository provides MongoDB backed persistence.
type Repository struct {
	col *mongo.Collection
}

// NewRepository constructs a repository over the bookings collection.
func NewRepository(db interface {
	Collection(name string) *mongo.Collection
}) *Repository {
	return &Repository{col: db.Collection(collection)}
}

// List returns bookings newest first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status string, skip, limit int64) ([]Booking, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Booking, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Insert stores a new booking.
func (r *Repository) Insert(ctx context.Context, b Booking) error {
	_, err := r.col.InsertOne(ctx, b)
	return err
}

// Update applies the given $set fields.
func (r *Repository) Update(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return shared.ErrNotFound
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

// Delete removes one booking.
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

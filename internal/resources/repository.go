package resources

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora-beauty/velora/internal/shared"
)

const collection = "resources"

// RepositoryPort defines data access for resources.
type RepositoryPort interface {
	ListPublished(ctx context.Context, filter PublicFilter, skip, limit int64) ([]Resource, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*Resource, error)
	ListAll(ctx context.Context) ([]Resource, error)
	Insert(ctx context.Context, res Resource) error
	Update(ctx context.Context, id string, set bson.M) error
	Delete(ctx context.Context, id string) error
}

// Repository provides MongoDB backed persistence.
type Repository struct {
	col *mongo.Collection
}

// NewRepository constructs a repository over the resources collection.
func NewRepository(db interface {
	Collection(name string) *mongo.Collection
}) *Repository {
	return &Repository{col: db.Collection(collection)}
}

// ListPublished returns published resources, newest first.
func (r *Repository) ListPublished(ctx context.Context, filter PublicFilter, skip, limit int64) ([]Resource, error) {
	query := bson.M{"status": StatusPublished}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Tag != "" {
		query["tags"] = bson.M{"$in": bson.A{filter.Tag}}
	}
	if filter.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"summary": pattern},
			bson.M{"content": pattern},
		}
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

	items := make([]Resource, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindPublishedBySlug returns one published resource.
func (r *Repository) FindPublishedBySlug(ctx context.Context, slug string) (*Resource, error) {
	var res Resource
	err := r.col.FindOne(ctx, bson.M{"slug": slug, "status": StatusPublished}).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListAll returns every resource for the admin surface, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Resource, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(500)
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Resource, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Insert stores a new resource.
func (r *Repository) Insert(ctx context.Context, res Resource) error {
	_, err := r.col.InsertOne(ctx, res)
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

// Delete removes one resource.
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

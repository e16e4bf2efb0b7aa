package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora-beauty/velora/internal/shared"
)

const collection = "service_categories"

// RepositoryPort defines data access for the catalog.
type RepositoryPort interface {
	ListCategories(ctx context.Context) ([]Category, error)
	FindCategory(ctx context.Context, id string) (*Category, error)
	InsertCategory(ctx context.Context, cat Category) error
	UpdateCategory(ctx context.Context, id string, set bson.M) error
	DeleteCategory(ctx context.Context, id string) error
	PushItem(ctx context.Context, categoryID string, item Item, updatedAt string) error
	ReplaceItem(ctx context.Context, categoryID string, item Item, updatedAt string) error
	PullItem(ctx context.Context, categoryID, itemID, updatedAt string) error
	PushVariant(ctx context.Context, categoryID, itemID string, variant Variant, updatedAt string) error
	ReplaceVariant(ctx context.Context, categoryID, itemID string, variant Variant, updatedAt string) error
	PullVariant(ctx context.Context, categoryID, itemID, variantID, updatedAt string) error
}

// Repository provides MongoDB backed persistence.
type Repository struct {
	col *mongo.Collection
}

// NewRepository constructs a repository over service_categories.
func NewRepository(db interface {
	Collection(name string) *mongo.Collection
}) *Repository {
	return &Repository{col: db.Collection(collection)}
}

// ListCategories returns all categories sorted by name.
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetLimit(500)
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Category, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindCategory returns one category by id.
func (r *Repository) FindCategory(ctx context.Context, id string) (*Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	var cat Category
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&cat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// InsertCategory stores a new category.
func (r *Repository) InsertCategory(ctx context.Context, cat Category) error {
	_, err := r.col.InsertOne(ctx, cat)
	return err
}

// UpdateCategory applies the given $set fields to one category.
func (r *Repository) UpdateCategory(ctx context.Context, id string, set bson.M) error {
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

// DeleteCategory removes one category.
func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
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

// PushItem appends a service item to a category.
func (r *Repository) PushItem(ctx context.Context, categoryID string, item Item, updatedAt string) error {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return shared.ErrNotFound
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"services": item},
		"$set":  bson.M{"updatedAt": updatedAt},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ReplaceItem overwrites a service item in place via the positional operator.
func (r *Repository) ReplaceItem(ctx context.Context, categoryID string, item Item, updatedAt string) error {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return shared.ErrNotFound
	}
	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "services.id": item.ID},
		bson.M{"$set": bson.M{"services.$": item, "updatedAt": updatedAt}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// PullItem removes a service item from a category.
func (r *Repository) PullItem(ctx context.Context, categoryID, itemID, updatedAt string) error {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return shared.ErrNotFound
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$pull": bson.M{"services": bson.M{"id": itemID}},
		"$set":  bson.M{"updatedAt": updatedAt},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// PushVariant appends a variant to a nested service item.
func (r *Repository) PushVariant(ctx context.Context, categoryID, itemID string, variant Variant, updatedAt string) error {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return shared.ErrNotFound
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"it.id": itemID}},
	})
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"services.$[it].variants": variant},
		"$set":  bson.M{"updatedAt": updatedAt},
	}, opts)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ReplaceVariant overwrites a variant inside a nested service item.
func (r *Repository) ReplaceVariant(ctx context.Context, categoryID, itemID string, variant Variant, updatedAt string) error {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return shared.ErrNotFound
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"it.id": itemID}, bson.M{"v.id": variant.ID}},
	})
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"services.$[it].variants.$[v]": variant, "updatedAt": updatedAt},
	}, opts)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// PullVariant removes a variant from a nested service item.
func (r *Repository) PullVariant(ctx context.Context, categoryID, itemID, variantID, updatedAt string) error {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return shared.ErrNotFound
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"it.id": itemID}},
	})
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$pull": bson.M{"services.$[it].variants": bson.M{"id": variantID}},
		"$set":  bson.M{"updatedAt": updatedAt},
	}, opts)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

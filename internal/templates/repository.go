package templates

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora-beauty/velora/internal/shared"
)

const collection = "email_templates"

// RepositoryPort defines data access for email templates.
type RepositoryPort interface {
	List(ctx context.Context) ([]Template, error)
	FindByName(ctx context.Context, name string) (*Template, error)
	Upsert(ctx context.Context, t Template) error
	Delete(ctx context.Context, name string) error
}

// Repository provides MongoDB backed persistence.
type Repository struct {
	col *mongo.Collection
}

// NewRepository constructs a repository over email_templates.
func NewRepository(db interface {
	Collection(name string) *mongo.Collection
}) *Repository {
	return &Repository{col: db.Collection(collection)}
}

// List returns all stored templates sorted by name.
func (r *Repository) List(ctx context.Context) ([]Template, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Template, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByName returns one stored template.
func (r *Repository) FindByName(ctx context.Context, name string) (*Template, error) {
	var t Template
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Upsert stores a template keyed by name.
func (r *Repository) Upsert(ctx context.Context, t Template) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"name": t.Name}, bson.M{"$set": bson.M{
		"name":      t.Name,
		"subject":   t.Subject,
		"body":      t.Body,
		"updatedBy": t.UpdatedBy,
		"updatedAt": t.UpdatedAt,
	}, "$setOnInsert": bson.M{"createdAt": t.CreatedAt}}, opts)
	return err
}

// Delete removes a stored template, reverting the name to its default.
func (r *Repository) Delete(ctx context.Context, name string) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

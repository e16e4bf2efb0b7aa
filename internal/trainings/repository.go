package trainings

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora-beauty/velora/internal/shared"
)

const (
	programsCollection     = "training_programs"
	applicationsCollection = "training_applications"
)

// RepositoryPort defines data access for programs and applications.
type RepositoryPort interface {
	ListPrograms(ctx context.Context, activeOnly bool) ([]Program, error)
	InsertProgram(ctx context.Context, p Program) error
	UpdateProgram(ctx context.Context, id string, set bson.M) error
	DeleteProgram(ctx context.Context, id string) error
	ListApplications(ctx context.Context, status string, skip, limit int64) ([]Application, error)
	InsertApplication(ctx context.Context, a Application) error
	UpdateApplication(ctx context.Context, id string, set bson.M) error
}

// Repository provides MongoDB backed persistence.
type Repository struct {
	programs     *mongo.Collection
	applications *mongo.Collection
}

// NewRepository constructs a repository over the trainings collections.
func NewRepository(db interface {
	Collection(name string) *mongo.Collection
}) *Repository {
	return &Repository{
		programs:     db.Collection(programsCollection),
		applications: db.Collection(applicationsCollection),
	}
}

// ListPrograms returns programs sorted by title. activeOnly restricts the
// set to active programs for the public surface.
func (r *Repository) ListPrograms(ctx context.Context, activeOnly bool) ([]Program, error) {
	query := bson.M{}
	if activeOnly {
		query["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}}).SetLimit(200)
	cursor, err := r.programs.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Program, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// InsertProgram stores a new program.
func (r *Repository) InsertProgram(ctx context.Context, p Program) error {
	_, err := r.programs.InsertOne(ctx, p)
	return err
}

// UpdateProgram applies the given $set fields to one program.
func (r *Repository) UpdateProgram(ctx context.Context, id string, set bson.M) error {
	return updateByID(ctx, r.programs, id, set)
}

// DeleteProgram removes one program.
func (r *Repository) DeleteProgram(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return shared.ErrNotFound
	}
	result, err := r.programs.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListApplications returns applications newest first, optionally filtered
// by review status.
func (r *Repository) ListApplications(ctx context.Context, status string, skip, limit int64) ([]Application, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.applications.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Application, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// InsertApplication stores a new application.
func (r *Repository) InsertApplication(ctx context.Context, a Application) error {
	_, err := r.applications.InsertOne(ctx, a)
	return err
}

// UpdateApplication applies the given $set fields to one application.
func (r *Repository) UpdateApplication(ctx context.Context, id string, set bson.M) error {
	return updateByID(ctx, r.applications, id, set)
}

func updateByID(ctx context.Context, col *mongo.Collection, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return shared.ErrNotFound
	}
	result, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

package audit

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "audit_logs"

// Repository defines the persistence surface for audit entries. The store is
// append-only: there is deliberately no update operation.
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	Find(ctx context.Context, filter Filter, skip, limit int64) ([]Entry, error)
	DeleteBefore(ctx context.Context, cutoff string) (int64, error)
}

// MongoRepository provides MongoDB backed persistence.
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository constructs a repository over the audit_logs collection.
func NewMongoRepository(db interface {
	Collection(name string) *mongo.Collection
}) *MongoRepository {
	return &MongoRepository{col: db.Collection(collection)}
}

// Insert appends one entry.
func (r *MongoRepository) Insert(ctx context.Context, entry Entry) error {
	_, err := r.col.InsertOne(ctx, entry)
	return err
}

// Find returns entries matching the filter, newest first.
func (r *MongoRepository) Find(ctx context.Context, filter Filter, skip, limit int64) ([]Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.col.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Entry, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteBefore removes entries strictly older than the cutoff. Entries at
// exactly the cutoff instant are retained.
func (r *MongoRepository) DeleteBefore(ctx context.Context, cutoff string) (int64, error) {
	result, err := r.col.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func buildFilter(f Filter) bson.M {
	f = f.Resolved()
	query := bson.M{}
	if f.ActorEmail != "" {
		query["actorEmail"] = f.ActorEmail
	}
	if f.Resource != "" {
		query["resource"] = f.Resource
	}
	if f.ResourceID != "" {
		query["resourceId"] = f.ResourceID
	}
	if f.Action != "" {
		query["action"] = f.Action
	}
	if f.ActionContains != "" {
		query["action"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.ActionContains), Options: "i"}
	}
	timeRange := bson.M{}
	if f.Start != "" {
		timeRange["$gte"] = f.Start
	}
	if f.End != "" {
		timeRange["$lte"] = f.End
	}
	if len(timeRange) > 0 {
		query["createdAt"] = timeRange
	}
	return query
}

package database

import (
	"context"
	"errors"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newestFirst is the default ordering for list endpoints.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// findAll runs filter against col and decodes every match. The result is never nil so
// list endpoints encode [] rather than null.
func findAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}, sort bson.D) ([]T, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findByID[T any](ctx context.Context, col *mongo.Collection, id primitive.ObjectID) (*T, error) {
	var doc T
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return &doc, nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id primitive.ObjectID) (models.DeleteResult, error) {
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func updateResult(res *mongo.UpdateResult) models.UpdateResult {
	return models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
}

// mapErr translates driver errors into the shared taxonomy. Anything else is returned
// unchanged and ends up as an internal error at the handler.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return common.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return common.ErrConflict
	default:
		return err
	}
}

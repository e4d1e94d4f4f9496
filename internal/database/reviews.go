package database

import (
	"context"

	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(s *Store) *ReviewRepository {
	return &ReviewRepository{col: s.Collection(ColReviews)}
}

// List returns reviews newest first. Empty packageID or userEmail means no filter on that field.
func (r *ReviewRepository) List(ctx context.Context, packageID, userEmail string) ([]models.Review, error) {
	filter := bson.M{}
	if packageID != "" {
		filter["packageId"] = packageID
	}
	if userEmail != "" {
		filter["userEmail"] = userEmail
	}
	return findAll[models.Review](ctx, r.col, filter, newestFirst)
}

// Average returns the raw (unrounded) mean rating for a package. A package without
// reviews yields the zero summary.
func (r *ReviewRepository) Average(ctx context.Context, packageID string) (models.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"packageId": packageID}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"avgRating":    bson.M{"$avg": "$rating"},
			"totalReviews": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, err
	}
	defer cursor.Close(ctx)

	var rows []models.RatingSummary
	if err := cursor.All(ctx, &rows); err != nil {
		return models.RatingSummary{}, err
	}
	if len(rows) == 0 {
		return models.RatingSummary{}, nil
	}
	return rows[0], nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) (primitive.ObjectID, error) {
	rv.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, rv); err != nil {
		return primitive.NilObjectID, mapErr(err)
	}
	return rv.ID, nil
}

// Update sets comment and rating and returns the review as stored afterwards.
func (r *ReviewRepository) Update(ctx context.Context, id primitive.ObjectID, comment string, rating int) (*models.Review, error) {
	var rv models.Review
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"comment": comment, "rating": rating}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rv)
	if err != nil {
		return nil, mapErr(err)
	}
	return &rv, nil
}

// Delete removes the review and returns it so callers can see which package it belonged to.
func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var rv models.Review
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&rv); err != nil {
		return nil, mapErr(err)
	}
	return &rv, nil
}

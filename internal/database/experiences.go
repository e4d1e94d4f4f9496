package database

import (
	"context"

	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ExperienceRepository struct {
	col *mongo.Collection
}

func NewExperienceRepository(s *Store) *ExperienceRepository {
	return &ExperienceRepository{col: s.Collection(ColExperiences)}
}

func (r *ExperienceRepository) List(ctx context.Context) ([]models.Experience, error) {
	return findAll[models.Experience](ctx, r.col, bson.M{}, newestFirst)
}

func (r *ExperienceRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Experience, error) {
	return findByID[models.Experience](ctx, r.col, id)
}

func (r *ExperienceRepository) Create(ctx context.Context, e *models.Experience) (primitive.ObjectID, error) {
	e.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return primitive.NilObjectID, mapErr(err)
	}
	return e.ID, nil
}

// Update merges fields into the document. Keys outside models.ExperienceFields are dropped.
func (r *ExperienceRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.UpdateResult, error) {
	set := bson.M{}
	for k, v := range fields {
		if models.ExperienceFields[k] {
			set[k] = v
		}
	}
	if len(set) == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return models.UpdateResult{}, err
		}
		return models.UpdateResult{MatchedCount: n}, nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (r *ExperienceRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return deleteByID(ctx, r.col, id)
}

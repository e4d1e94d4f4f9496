package database

import (
	"context"

	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PackageRepository struct {
	col *mongo.Collection
}

func NewPackageRepository(s *Store) *PackageRepository {
	return &PackageRepository{col: s.Collection(ColPackages)}
}

func (r *PackageRepository) List(ctx context.Context) ([]models.Package, error) {
	return findAll[models.Package](ctx, r.col, bson.M{}, nil)
}

func (r *PackageRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Package, error) {
	return findByID[models.Package](ctx, r.col, id)
}

func (r *PackageRepository) Create(ctx context.Context, p *models.Package) (primitive.ObjectID, error) {
	p.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return primitive.NilObjectID, mapErr(err)
	}
	return p.ID, nil
}

// Update replaces the catalog fields of the package; the id is left untouched.
func (r *PackageRepository) Update(ctx context.Context, id primitive.ObjectID, p *models.Package) (models.UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":    p.Title,
		"country":  p.Country,
		"location": p.Location,
		"price":    p.Price,
		"duration": p.Duration,
		"rating":   p.Rating,
		"type":     p.Type,
		"image":    p.Image,
	}})
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (r *PackageRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return deleteByID(ctx, r.col, id)
}

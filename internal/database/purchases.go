package database

import (
	"context"

	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PurchaseRepository stores the "my package" records.
type PurchaseRepository struct {
	col *mongo.Collection
}

func NewPurchaseRepository(s *Store) *PurchaseRepository {
	return &PurchaseRepository{col: s.Collection(ColPurchases)}
}

func (r *PurchaseRepository) ListByEmail(ctx context.Context, email string) ([]models.Purchase, error) {
	return findAll[models.Purchase](ctx, r.col, bson.M{"userEmail": email}, newestFirst)
}

func (r *PurchaseRepository) ListAll(ctx context.Context) ([]models.Purchase, error) {
	return findAll[models.Purchase](ctx, r.col, bson.M{}, newestFirst)
}

func (r *PurchaseRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error) {
	return findByID[models.Purchase](ctx, r.col, id)
}

func (r *PurchaseRepository) Exists(ctx context.Context, email, packageID string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"userEmail": email, "packageId": packageID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PurchaseRepository) Count(ctx context.Context, email string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"userEmail": email})
}

// Create inserts p. A second purchase of the same package by the same user fails with
// common.ErrConflict through the unique (userEmail, packageId) index.
func (r *PurchaseRepository) Create(ctx context.Context, p *models.Purchase) (primitive.ObjectID, error) {
	p.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return primitive.NilObjectID, mapErr(err)
	}
	return p.ID, nil
}

func (r *PurchaseRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return deleteByID(ctx, r.col, id)
}

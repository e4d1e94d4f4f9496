package database

import (
	"context"

	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookmarkRepository stores saved packages. It follows the purchase rules exactly.
type BookmarkRepository struct {
	col *mongo.Collection
}

func NewBookmarkRepository(s *Store) *BookmarkRepository {
	return &BookmarkRepository{col: s.Collection(ColBookmarks)}
}

func (r *BookmarkRepository) ListByEmail(ctx context.Context, email string) ([]models.Bookmark, error) {
	return findAll[models.Bookmark](ctx, r.col, bson.M{"userEmail": email}, newestFirst)
}

func (r *BookmarkRepository) ListAll(ctx context.Context) ([]models.Bookmark, error) {
	return findAll[models.Bookmark](ctx, r.col, bson.M{}, newestFirst)
}

func (r *BookmarkRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Bookmark, error) {
	return findByID[models.Bookmark](ctx, r.col, id)
}

func (r *BookmarkRepository) Exists(ctx context.Context, email, packageID string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"userEmail": email, "packageId": packageID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts b. Bookmarking the same package twice fails with common.ErrConflict.
func (r *BookmarkRepository) Create(ctx context.Context, b *models.Bookmark) (primitive.ObjectID, error) {
	b.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		return primitive.NilObjectID, mapErr(err)
	}
	return b.ID, nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return deleteByID(ctx, r.col, id)
}

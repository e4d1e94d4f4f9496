package services

import (
	"context"

	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The interfaces below are satisfied by the repositories in internal/database and by
// in-memory fakes in tests.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	CreateIfAbsent(ctx context.Context, u *models.User) (primitive.ObjectID, bool, error)
	UpsertFederated(ctx context.Context, u *models.User) (primitive.ObjectID, bool, error)
	UpdateImages(ctx context.Context, id primitive.ObjectID, images models.ProfileImages) (models.UpdateResult, error)
	MarkVerified(ctx context.Context, email string) (models.UpdateResult, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error)
}

type PackageStore interface {
	List(ctx context.Context) ([]models.Package, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Package, error)
	Create(ctx context.Context, p *models.Package) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, p *models.Package) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

type PurchaseStore interface {
	ListByEmail(ctx context.Context, email string) ([]models.Purchase, error)
	ListAll(ctx context.Context) ([]models.Purchase, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error)
	Exists(ctx context.Context, email, packageID string) (bool, error)
	Count(ctx context.Context, email string) (int64, error)
	Create(ctx context.Context, p *models.Purchase) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

type BookmarkStore interface {
	ListByEmail(ctx context.Context, email string) ([]models.Bookmark, error)
	ListAll(ctx context.Context) ([]models.Bookmark, error)
	Exists(ctx context.Context, email, packageID string) (bool, error)
	Create(ctx context.Context, b *models.Bookmark) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

type ReviewStore interface {
	List(ctx context.Context, packageID, userEmail string) ([]models.Review, error)
	Average(ctx context.Context, packageID string) (models.RatingSummary, error)
	Create(ctx context.Context, rv *models.Review) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, comment string, rating int) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
}

type PaymentStore interface {
	List(ctx context.Context, email string) ([]models.Payment, error)
	RecordForPurchase(ctx context.Context, purchaseID primitive.ObjectID, p *models.Payment) (models.RecordResult, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Payment, error)
}

type ExperienceStore interface {
	List(ctx context.Context) ([]models.Experience, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Experience, error)
	Create(ctx context.Context, e *models.Experience) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

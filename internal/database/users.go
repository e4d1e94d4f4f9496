package database

import (
	"context"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{col: s.Collection(ColUsers), now: time.Now}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.col, bson.M{}, nil)
}

// CreateIfAbsent inserts u unless a user with the same email exists. The upsert is a
// single atomic operation backed by the unique email index.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, u *models.User) (primitive.ObjectID, bool, error) {
	u.ID = primitive.NewObjectID()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": u.Email},
		bson.M{"$setOnInsert": u},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return primitive.NilObjectID, false, mapErr(err)
	}
	if res.UpsertedCount == 0 {
		return primitive.NilObjectID, false, nil
	}
	return u.ID, true, nil
}

// UpsertFederated refreshes name, photo and login time for a returning social-login user,
// or inserts u when the email is new.
func (r *UserRepository) UpsertFederated(ctx context.Context, u *models.User) (primitive.ObjectID, bool, error) {
	now := r.now()
	u.ID = primitive.NewObjectID()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": u.Email},
		bson.M{
			"$set": bson.M{
				"name":          u.Name,
				"photoURL":      u.PhotoURL,
				"emailVerified": true,
				"lastLogin":     now,
			},
			"$setOnInsert": bson.M{
				"_id":       u.ID,
				"role":      u.Role,
				"createdAt": u.CreatedAt,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return primitive.NilObjectID, false, mapErr(err)
	}
	if res.UpsertedCount == 0 {
		return primitive.NilObjectID, false, nil
	}
	return u.ID, true, nil
}

func (r *UserRepository) UpdateImages(ctx context.Context, id primitive.ObjectID, images models.ProfileImages) (models.UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": images})
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, email string) (models.UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"emailVerified": true, "verifiedAt": r.now()}},
	)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role, "updatedAt": r.now()}},
	)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res), nil
}

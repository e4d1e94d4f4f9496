package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/logging"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ratingCacheResource = "reviews:average"

// ReviewInput is the body of POST /reviews. Rating is a pointer so an absent rating
// can be told apart from zero.
type ReviewInput struct {
	PackageID    string `json:"packageId"`
	PackageTitle string `json:"packageTitle"`
	PackageImage string `json:"packageImage"`
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	UserImage    string `json:"userImage"`
	Rating       *int   `json:"rating"`
	Comment      string `json:"comment"`
}

type ReviewService struct {
	store ReviewStore
	cache *CacheService
	now   func() time.Time
}

func NewReviewService(store ReviewStore, cache *CacheService) *ReviewService {
	return &ReviewService{store: store, cache: cache, now: time.Now}
}

func (s *ReviewService) List(ctx context.Context, packageID, userEmail string) ([]models.Review, error) {
	return s.store.List(ctx, packageID, userEmail)
}

// Average returns the mean rating rounded to one decimal place.
func (s *ReviewService) Average(ctx context.Context, packageID string) (models.RatingSummary, error) {
	group := CacheKey(ratingCacheResource, packageID)
	gen, genErr := s.cache.Generation(ctx, group)
	key := Versioned(group, gen)

	var cached models.RatingSummary
	if genErr == nil {
		if ok, err := s.cache.Get(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	sum, err := s.store.Average(ctx, packageID)
	if err != nil {
		return models.RatingSummary{}, err
	}
	sum.AvgRating = math.Round(sum.AvgRating*10) / 10

	if genErr != nil {
		return sum, nil
	}
	if err := s.cache.Set(ctx, key, sum); err != nil {
		logging.FromContext(ctx).Warn("rating cache write failed", "package_id", packageID, "error", err)
	}
	return sum, nil
}

func validRating(r int) bool {
	return r >= models.MinRating && r <= models.MaxRating
}

func (s *ReviewService) Create(ctx context.Context, in ReviewInput) (primitive.ObjectID, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"packageId", in.PackageID},
		{"userName", in.UserName},
		{"packageImage", in.PackageImage},
		{"userEmail", in.UserEmail},
		{"userImage", in.UserImage},
		{"comment", in.Comment},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if in.Rating == nil {
		missing = append(missing, "rating")
	}
	if len(missing) > 0 {
		return primitive.NilObjectID, common.Missing("Missing required fields", missing...)
	}
	if !validRating(*in.Rating) {
		return primitive.NilObjectID, common.New(common.ErrInvalidInput, "Rating must be between 1 and 5")
	}

	id, err := s.store.Create(ctx, &models.Review{
		PackageID:    in.PackageID,
		PackageTitle: in.PackageTitle,
		PackageImage: in.PackageImage,
		UserName:     in.UserName,
		UserEmail:    in.UserEmail,
		UserImage:    in.UserImage,
		Rating:       *in.Rating,
		Comment:      in.Comment,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.invalidate(ctx, in.PackageID)
	return id, nil
}

func (s *ReviewService) Update(ctx context.Context, id primitive.ObjectID, comment string, rating *int) (*models.Review, error) {
	if comment == "" || rating == nil {
		var missing []string
		if comment == "" {
			missing = append(missing, "comment")
		}
		if rating == nil {
			missing = append(missing, "rating")
		}
		return nil, common.Missing("Missing required fields", missing...)
	}
	if !validRating(*rating) {
		return nil, common.New(common.ErrInvalidInput, "Rating must be between 1 and 5")
	}

	rv, err := s.store.Update(ctx, id, comment, *rating)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.New(common.ErrNotFound, "Review not found")
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, rv.PackageID)
	return rv, nil
}

// Delete removes a review. The deleted count is 0 when it did not exist.
func (s *ReviewService) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	rv, err := s.store.Delete(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return models.DeleteResult{}, nil
	}
	if err != nil {
		return models.DeleteResult{}, err
	}
	s.invalidate(ctx, rv.PackageID)
	return models.DeleteResult{DeletedCount: 1}, nil
}

func (s *ReviewService) invalidate(ctx context.Context, packageID string) {
	if err := s.cache.Bump(ctx, CacheKey(ratingCacheResource, packageID)); err != nil {
		logging.FromContext(ctx).Error("rating cache invalidation failed", "package_id", packageID, "error", err)
	}
}

package services

import (
	"context"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/logging"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const catalogCacheResource = "packages"

var catalogListKey = CacheKey(catalogCacheResource, "all")

// CatalogService serves packages through the Redis cache. Entries are keyed by the
// catalog generation, which every write bumps.
type CatalogService struct {
	store PackageStore
	cache *CacheService
}

func NewCatalogService(store PackageStore, cache *CacheService) *CatalogService {
	return &CatalogService{store: store, cache: cache}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Package, error) {
	key, cacheable := s.key(ctx, catalogListKey)

	var cached []models.Package
	if cacheable {
		if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
			logging.FromContext(ctx).Warn("catalog cache read failed", "key", key, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	packages, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.fill(ctx, key, packages)
	}
	return packages, nil
}

func (s *CatalogService) Get(ctx context.Context, id primitive.ObjectID) (*models.Package, error) {
	key, cacheable := s.key(ctx, CacheKey(catalogCacheResource, id.Hex()))

	var cached models.Package
	if cacheable {
		if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
			logging.FromContext(ctx).Warn("catalog cache read failed", "key", key, "error", err)
		} else if ok {
			return &cached, nil
		}
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.fill(ctx, key, p)
	}
	return p, nil
}

// key versions base with the current catalog generation. Without a generation the
// cache is skipped for this read.
func (s *CatalogService) key(ctx context.Context, base string) (string, bool) {
	gen, err := s.cache.Generation(ctx, catalogCacheResource)
	if err != nil {
		logging.FromContext(ctx).Warn("catalog cache generation read failed", "error", err)
		return "", false
	}
	return Versioned(base, gen), true
}

func (s *CatalogService) Create(ctx context.Context, p *models.Package) (primitive.ObjectID, error) {
	if p.Title == "" {
		return primitive.NilObjectID, common.Missing("Missing required fields", "title")
	}
	id, err := s.store.Create(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.invalidate(ctx, id)
	return id, nil
}

func (s *CatalogService) Update(ctx context.Context, id primitive.ObjectID, p *models.Package) (models.UpdateResult, error) {
	res, err := s.store.Update(ctx, id, p)
	if err != nil {
		return models.UpdateResult{}, err
	}
	s.invalidate(ctx, id)
	return res, nil
}

func (s *CatalogService) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	res, err := s.store.Delete(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	s.invalidate(ctx, id)
	return res, nil
}

func (s *CatalogService) fill(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		logging.FromContext(ctx).Warn("catalog cache write failed", "key", key, "error", err)
	}
}

func (s *CatalogService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.Bump(ctx, catalogCacheResource); err != nil {
		logging.FromContext(ctx).Error("catalog cache invalidation failed", "package_id", id.Hex(), "error", err)
	}
}

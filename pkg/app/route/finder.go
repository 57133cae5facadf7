package route

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	domain "github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/infra/cache"
)

var ErrInvalidCacheType = errors.New("invalid type assertion for route policy")

//go:generate mockery --name=Finder --dir=. --output=./mocks --filename=route_finder_mock.go --case=underscore --with-expecter
type Finder interface {
	Find(ctx context.Context, slug string) (*domain.Policy, error)
}

type finder struct {
	repo        domain.Repository
	cache       cache.Client
	memoryCache *cache.TTLMap
	logger      *logrus.Logger
}

// NewFinder resolves routes through a memory TTL map, then redis, then the
// repository.
func NewFinder(
	repository domain.Repository,
	c cache.Client,
	logger *logrus.Logger,
) Finder {
	return &finder{
		repo:        repository,
		cache:       c,
		logger:      logger,
		memoryCache: c.GetTTLMap(cache.RouteTTLName),
	}
}

func (f *finder) Find(ctx context.Context, slug string) (*domain.Policy, error) {
	if entity, err := f.getFromMemoryCache(slug); err == nil {
		return entity, nil
	} else if errors.Is(err, ErrInvalidCacheType) {
		f.logger.WithError(err).Debug("memory cache read route failure")
	}

	if cached, err := f.cache.GetRoute(ctx, slug); err == nil && cached != nil {
		f.memoryCache.Set(slug, cached)
		return cached, nil
	}

	entity, err := f.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	f.saveToCaches(ctx, entity)
	return entity, nil
}

func (f *finder) getFromMemoryCache(slug string) (*domain.Policy, error) {
	cachedValue, found := f.memoryCache.Get(slug)
	if !found {
		return nil, errors.New("route not found in memory cache")
	}
	entity, ok := cachedValue.(*domain.Policy)
	if !ok {
		return nil, ErrInvalidCacheType
	}
	return entity, nil
}

func (f *finder) saveToCaches(ctx context.Context, entity *domain.Policy) {
	f.memoryCache.Set(entity.Slug, entity)
	if err := f.cache.SaveRoute(ctx, entity); err != nil {
		f.logger.WithError(err).Debug("failed to save route to distributed cache")
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/linkveil/cloakgate/pkg/domain/route"
)

var (
	ErrRouteNotFound = fmt.Errorf("route not found")
	ErrSlugTaken     = fmt.Errorf("slug already in use")
)

type routeRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewRouteRepository(db *gorm.DB, logger *logrus.Logger) route.Repository {
	return &routeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *routeRepository) GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*route.Policy, error) {
	var policy route.Policy
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND slug = ?", tenantID, slug).First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &policy, nil
}

func (r *routeRepository) FindBySlug(ctx context.Context, slug string) (*route.Policy, error) {
	var policy route.Policy
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &policy, nil
}

func (r *routeRepository) Create(ctx context.Context, policy *route.Policy) error {
	err := r.db.WithContext(ctx).Create(policy).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugTaken
	}
	return err
}

func (r *routeRepository) List(ctx context.Context, tenantID uuid.UUID) ([]route.Policy, error) {
	var policies []route.Policy
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("created_at").Find(&policies).Error
	if err != nil {
		return nil, err
	}
	return policies, nil
}

func (r *routeRepository) Update(ctx context.Context, policy *route.Policy) error {
	result := r.db.WithContext(ctx).Save(policy)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRouteNotFound
	}
	return nil
}

func (r *routeRepository) Delete(ctx context.Context, tenantID uuid.UUID, slug string) error {
	result := r.db.WithContext(ctx).Where("tenant_id = ? AND slug = ?", tenantID, slug).
		Delete(&route.Policy{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRouteNotFound
	}
	return nil
}

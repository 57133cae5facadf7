package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/linkveil/cloakgate/pkg/domain/accesslog"
)

type accessLogRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewAccessLogRepository(db *gorm.DB, logger *logrus.Logger) accesslog.Repository {
	return &accessLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accessLogRepository) Create(ctx context.Context, entry *accesslog.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *accessLogRepository) RecentByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	limit int,
) ([]accesslog.Entry, error) {
	var entries []accesslog.Entry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

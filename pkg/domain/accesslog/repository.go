package accesslog

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	// RecentByTenant returns the newest entries for a tenant, newest first,
	// bounded by limit.
	RecentByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]Entry, error)
}

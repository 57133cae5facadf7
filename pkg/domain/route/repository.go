package route

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*Policy, error)
	FindBySlug(ctx context.Context, slug string) (*Policy, error)
	Create(ctx context.Context, policy *Policy) error
	List(ctx context.Context, tenantID uuid.UUID) ([]Policy, error)
	Update(ctx context.Context, policy *Policy) error
	Delete(ctx context.Context, tenantID uuid.UUID, slug string) error
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/relengar/shopping-list-server/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListByList(ctx context.Context, listID uuid.UUID, limit, offset int) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

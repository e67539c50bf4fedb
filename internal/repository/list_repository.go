package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/relengar/shopping-list-server/internal/domain"
)

type ListRepository interface {
	Create(ctx context.Context, list *domain.ShoppingList) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ShoppingList, error)
	// ListForUser returns lists the user owns or has a share grant on,
	// with the unpaginated total.
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ShoppingList, int, error)
	Update(ctx context.Context, list *domain.ShoppingList) error
	// DeleteWithItems removes the list, its items and its share grants in a
	// single transaction.
	DeleteWithItems(ctx context.Context, listID uuid.UUID) error

	// IsOwner reports whether userID owns the list.
	IsOwner(ctx context.Context, listID, userID uuid.UUID) (bool, error)
	// HasAccess reports whether userID owns the list or holds a share grant
	// on it.
	HasAccess(ctx context.Context, listID, userID uuid.UUID) (bool, error)
}

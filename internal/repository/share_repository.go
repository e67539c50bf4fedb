package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/relengar/shopping-list-server/internal/domain"
)

type ShareRepository interface {
	// Create inserts a grant; an existing identical grant is ErrDuplicate.
	Create(ctx context.Context, listID, targetUserID uuid.UUID) error
	// Delete removes a grant; deleting an absent grant is a no-op.
	Delete(ctx context.Context, listID, targetUserID uuid.UUID) error
	Exists(ctx context.Context, listID, targetUserID uuid.UUID) (bool, error)
	ListByList(ctx context.Context, listID uuid.UUID) ([]domain.ShareGrant, error)
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/relengar/shopping-list-server/internal/domain"
)

// UserSearchParams filters a username search. ForListID scopes the sharing
// flag of each row to that list; ExcludeShared additionally drops users the
// list is already shared with.
type UserSearchParams struct {
	Username      string
	RequesterID   uuid.UUID
	ForListID     *uuid.UUID
	ExcludeShared bool
	Limit         int
	Offset        int
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params UserSearchParams) ([]domain.UserSearchRow, int, error)
}

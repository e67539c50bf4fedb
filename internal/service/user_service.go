package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/relengar/shopping-list-server/internal/apperr"
	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/internal/repository"
)

// UserService serves user lookups and the username search.
type UserService struct {
	users repository.UserRepository
	lists repository.ListRepository
}

func NewUserService(users repository.UserRepository, lists repository.ListRepository) *UserService {
	return &UserService{users: users, lists: lists}
}

// SearchRequest filters the username search. ForListID scopes the sharing
// flag to one list and is only available to that list's owner.
type SearchRequest struct {
	Username      string     `query:"username"`
	ForListID     *uuid.UUID `query:"forListId"`
	ExcludeShared bool       `query:"excludeShared"`
	Pagination    domain.Pagination
}

// Current returns the authenticated user's own record.
func (s *UserService) Current(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// Search finds users by username, excluding the requester. A list-scoped
// search is owner-gated so sharing state never leaks to non-owners.
func (s *UserService) Search(ctx context.Context, requesterID uuid.UUID, req SearchRequest) (*domain.QueryResponse[domain.UserSearchRow], error) {
	if req.ForListID != nil {
		owner, err := s.lists.IsOwner(ctx, *req.ForListID, requesterID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if !owner {
			return nil, apperr.Unauthorized("Not allowed to view this list data")
		}
	}

	limit := req.Pagination.LimitOr(10)
	rows, total, err := s.users.Search(ctx, repository.UserSearchParams{
		Username:      req.Username,
		RequesterID:   requesterID,
		ForListID:     req.ForListID,
		ExcludeShared: req.ExcludeShared,
		Limit:         limit,
		Offset:        req.Pagination.Offset(limit),
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if rows == nil {
		rows = []domain.UserSearchRow{}
	}
	return &domain.QueryResponse[domain.UserSearchRow]{Items: rows, Total: total}, nil
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/relengar/shopping-list-server/internal/apperr"
	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/internal/repository"
	"github.com/relengar/shopping-list-server/pkg/email"
)

// ListService owns shopping list CRUD and the sharing workflow. Every
// operation checks access before touching the resource; access failures win
// over not-found so existence never leaks to unauthorized callers.
type ListService struct {
	lists  repository.ListRepository
	shares repository.ShareRepository
	users  repository.UserRepository
	mail   email.Sender
	logger zerolog.Logger
}

func NewListService(
	lists repository.ListRepository,
	shares repository.ShareRepository,
	users repository.UserRepository,
	mail email.Sender,
	logger zerolog.Logger,
) *ListService {
	return &ListService{
		lists:  lists,
		shares: shares,
		users:  users,
		mail:   mail,
		logger: logger.With().Str("component", "lists").Logger(),
	}
}

type CreateListRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

type ShareRequest struct {
	TargetUserID uuid.UUID `json:"targetUserId" validate:"required"`
}

// Lists returns the lists the user owns or was granted access to.
func (s *ListService) Lists(ctx context.Context, userID uuid.UUID, p domain.Pagination) (*domain.QueryResponse[domain.ShoppingList], error) {
	limit := p.LimitOr(10)
	lists, total, err := s.lists.ListForUser(ctx, userID, limit, p.Offset(limit))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if lists == nil {
		lists = []domain.ShoppingList{}
	}
	return &domain.QueryResponse[domain.ShoppingList]{Items: lists, Total: total}, nil
}

func (s *ListService) Create(ctx context.Context, ownerID uuid.UUID, req CreateListRequest) (*domain.ShoppingList, error) {
	list := &domain.ShoppingList{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     ownerID,
	}

	if err := s.lists.Create(ctx, list); err != nil {
		return nil, apperr.Internal(err)
	}

	return list, nil
}

// Update merges the partial update into the list. Requires has-access.
func (s *ListService) Update(ctx context.Context, userID, listID uuid.UUID, update *domain.ShoppingListUpdate) (*domain.ShoppingList, error) {
	if err := s.requireAccess(ctx, listID, userID); err != nil {
		return nil, err
	}

	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Shopping list not found")
		}
		return nil, apperr.Internal(err)
	}

	list.Apply(update)

	if err := s.lists.Update(ctx, list); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Shopping list not found")
		}
		return nil, apperr.Internal(err)
	}

	return list, nil
}

// Delete removes the list with all its items. Owner only.
func (s *ListService) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	if err := s.requireOwner(ctx, listID, userID, "Unauthorized"); err != nil {
		return err
	}

	if err := s.lists.DeleteWithItems(ctx, listID); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

// Share grants the target user access to the list. Owner only; a duplicate
// grant is a conflict. A notification email goes out best-effort when the
// target user has an address on file.
func (s *ListService) Share(ctx context.Context, ownerID, listID uuid.UUID, req ShareRequest) error {
	if err := s.requireOwner(ctx, listID, ownerID, "Not allowed to share this list"); err != nil {
		return err
	}

	shared, err := s.shares.Exists(ctx, listID, req.TargetUserID)
	if err != nil {
		return apperr.Internal(err)
	}
	if shared {
		return apperr.Conflict("List already shared")
	}

	if err := s.shares.Create(ctx, listID, req.TargetUserID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperr.Conflict("List already shared")
		}
		return apperr.Internal(err)
	}

	s.notifyShared(ctx, ownerID, listID, req.TargetUserID)
	return nil
}

// Unshare removes the grant. Owner only; removing an absent grant succeeds.
func (s *ListService) Unshare(ctx context.Context, ownerID, listID uuid.UUID, req ShareRequest) error {
	if err := s.requireOwner(ctx, listID, ownerID, "Not allowed to share this list"); err != nil {
		return err
	}

	if err := s.shares.Delete(ctx, listID, req.TargetUserID); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

// Sharing lists the grants on the list. Owner only.
func (s *ListService) Sharing(ctx context.Context, ownerID, listID uuid.UUID) ([]domain.ShareGrant, error) {
	if err := s.requireOwner(ctx, listID, ownerID, "Not allowed to view this list data"); err != nil {
		return nil, err
	}

	grants, err := s.shares.ListByList(ctx, listID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if grants == nil {
		grants = []domain.ShareGrant{}
	}
	return grants, nil
}

func (s *ListService) requireOwner(ctx context.Context, listID, userID uuid.UUID, message string) error {
	owner, err := s.lists.IsOwner(ctx, listID, userID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !owner {
		return apperr.Unauthorized(message)
	}
	return nil
}

func (s *ListService) requireAccess(ctx context.Context, listID, userID uuid.UUID) error {
	access, err := s.lists.HasAccess(ctx, listID, userID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !access {
		return apperr.Forbidden("Can't access this shopping list")
	}
	return nil
}

func (s *ListService) notifyShared(ctx context.Context, ownerID, listID, targetUserID uuid.UUID) {
	target, err := s.users.GetByID(ctx, targetUserID)
	if err != nil || target.Email == nil {
		return
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return
	}

	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return
	}

	if err := s.mail.SendListShared(ctx, *target.Email, target.Username, list.Title, owner.Username); err != nil {
		s.logger.Warn().Err(err).Str("list_id", listID.String()).Msg("share notification failed")
	}
}

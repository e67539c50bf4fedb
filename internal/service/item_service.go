package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/relengar/shopping-list-server/internal/apperr"
	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/internal/repository"
)

// ItemService owns item CRUD. All operations require has-access on the
// enclosing list; sharing grants carry full item read/write.
type ItemService struct {
	items  repository.ItemRepository
	lists  repository.ListRepository
	logger zerolog.Logger
}

func NewItemService(items repository.ItemRepository, lists repository.ListRepository, logger zerolog.Logger) *ItemService {
	return &ItemService{
		items:  items,
		lists:  lists,
		logger: logger.With().Str("component", "items").Logger(),
	}
}

type ItemInput struct {
	Name          string   `json:"name" validate:"required,min=1,max=120"`
	Description   string   `json:"description" validate:"max=1000"`
	TotalAmount   float64  `json:"totalAmount" validate:"gte=0,lte=5000"`
	CurrentAmount float64  `json:"currentAmount" validate:"gte=0,lte=5000"`
	Unit          string   `json:"unit" validate:"required"`
	Bought        bool     `json:"bought"`
	Tags          []string `json:"tags"`
}

// BatchResult is the partial-success reply of a bulk item insert: created
// items and one message per failed input.
type BatchResult struct {
	Items  []domain.Item `json:"items"`
	Errors []string      `json:"errors"`
}

// Items returns one page of the list's items.
func (s *ItemService) Items(ctx context.Context, userID, listID uuid.UUID, p domain.Pagination) ([]domain.Item, error) {
	if err := s.requireAccess(ctx, listID, userID); err != nil {
		return nil, err
	}

	limit := p.LimitOr(10)
	items, err := s.items.ListByList(ctx, listID, limit, p.Offset(limit))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

// CreateBatch inserts the inputs one by one, collecting per-item failures
// instead of aborting the batch.
func (s *ItemService) CreateBatch(ctx context.Context, userID, listID uuid.UUID, inputs []ItemInput) (*BatchResult, error) {
	if err := s.requireAccess(ctx, listID, userID); err != nil {
		return nil, err
	}

	result := &BatchResult{
		Items:  []domain.Item{},
		Errors: []string{},
	}

	for _, input := range inputs {
		unit, err := domain.ParseUnit(input.Unit)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Insert failed for item %s: invalid unit", input.Name))
			continue
		}

		item := &domain.Item{
			ID:             uuid.New(),
			Name:           input.Name,
			Description:    input.Description,
			TotalAmount:    input.TotalAmount,
			CurrentAmount:  input.CurrentAmount,
			Unit:           unit,
			Bought:         input.Bought,
			Tags:           pq.StringArray(input.Tags),
			ShoppingListID: listID,
		}
		if item.Tags == nil {
			item.Tags = pq.StringArray{}
		}

		if err := s.items.Create(ctx, item); err != nil {
			s.logger.Error().Err(err).Str("item", input.Name).Msg("item insert failed")
			result.Errors = append(result.Errors, fmt.Sprintf("Insert failed for item %s", input.Name))
			continue
		}

		result.Items = append(result.Items, *item)
	}

	return result, nil
}

// Update merges a partial update into the item.
func (s *ItemService) Update(ctx context.Context, userID, listID, itemID uuid.UUID, update *domain.ItemUpdate) (*domain.Item, error) {
	if err := s.requireAccess(ctx, listID, userID); err != nil {
		return nil, err
	}

	if update.Unit != nil {
		if _, err := domain.ParseUnit(*update.Unit); err != nil {
			return nil, apperr.BadRequest("invalid unit")
		}
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Item not found")
		}
		return nil, apperr.Internal(err)
	}

	item.Apply(update)

	if err := s.items.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Item not found")
		}
		return nil, apperr.Internal(err)
	}

	return item, nil
}

// Delete removes one item. Deleting an absent item succeeds.
func (s *ItemService) Delete(ctx context.Context, userID, listID, itemID uuid.UUID) error {
	if err := s.requireAccess(ctx, listID, userID); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

func (s *ItemService) requireAccess(ctx context.Context, listID, userID uuid.UUID) error {
	access, err := s.lists.HasAccess(ctx, listID, userID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !access {
		return apperr.Forbidden("Can't access this shopping list")
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/internal/repository"
)

type itemRepository struct {
	db *sqlx.DB
}

// NewItemRepository creates a new PostgreSQL item repository
func NewItemRepository(db *sqlx.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO item (id, name, description, total_amount, current_amount, unit, bought, tags, shopping_list_id)
		VALUES (:id, :name, :description, :total_amount, :current_amount, :unit, :bought, :tags, :shopping_list_id)`

	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `
		SELECT id, name, description, total_amount, current_amount, unit, bought, tags, shopping_list_id
		FROM item WHERE id = $1`

	var item domain.Item
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

func (r *itemRepository) ListByList(ctx context.Context, listID uuid.UUID, limit, offset int) ([]domain.Item, error) {
	query := `
		SELECT id, name, description, total_amount, current_amount, unit, bought, tags, shopping_list_id
		FROM item
		WHERE shopping_list_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`

	var items []domain.Item
	if err := r.db.SelectContext(ctx, &items, query, listID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE item
		SET name = :name,
			description = :description,
			total_amount = :total_amount,
			current_amount = :current_amount,
			unit = :unit,
			bought = :bought,
			tags = :tags
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM item WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

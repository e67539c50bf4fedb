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

type listRepository struct {
	db *sqlx.DB
}

// NewListRepository creates a new PostgreSQL shopping list repository
func NewListRepository(db *sqlx.DB) repository.ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(ctx context.Context, list *domain.ShoppingList) error {
	query := `
		INSERT INTO shopping_list (id, title, description, owner_id)
		VALUES (:id, :title, :description, :owner_id)`

	if _, err := r.db.NamedExecContext(ctx, query, list); err != nil {
		return fmt.Errorf("failed to create shopping list: %w", err)
	}

	return nil
}

func (r *listRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShoppingList, error) {
	query := `SELECT id, title, description, owner_id FROM shopping_list WHERE id = $1`

	var list domain.ShoppingList
	err := r.db.GetContext(ctx, &list, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	return &list, nil
}

func (r *listRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ShoppingList, int, error) {
	query := `
		SELECT DISTINCT l.id, l.title, l.description, l.owner_id
		FROM shopping_list l
		LEFT JOIN shopping_list_share sh ON sh.shopping_list_id = l.id
		WHERE l.owner_id = $1 OR sh.target_user_id = $1
		ORDER BY l.title
		LIMIT $2 OFFSET $3`

	countQuery := `
		SELECT count(DISTINCT l.id)
		FROM shopping_list l
		LEFT JOIN shopping_list_share sh ON sh.shopping_list_id = l.id
		WHERE l.owner_id = $1 OR sh.target_user_id = $1`

	var lists []domain.ShoppingList
	if err := r.db.SelectContext(ctx, &lists, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list shopping lists: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count shopping lists: %w", err)
	}

	return lists, total, nil
}

func (r *listRepository) Update(ctx context.Context, list *domain.ShoppingList) error {
	query := `UPDATE shopping_list SET title = :title, description = :description WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, list)
	if err != nil {
		return fmt.Errorf("failed to update shopping list: %w", err)
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

// DeleteWithItems removes the list with its items and share grants in one
// transaction, so a failure partway leaves no orphaned rows. The transaction
// is rolled back on context cancellation.
func (r *listRepository) DeleteWithItems(ctx context.Context, listID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM item WHERE shopping_list_id = $1`, listID); err != nil {
		return fmt.Errorf("failed to delete list items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shopping_list_share WHERE shopping_list_id = $1`, listID); err != nil {
		return fmt.Errorf("failed to delete list shares: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shopping_list WHERE id = $1`, listID); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit list deletion: %w", err)
	}

	return nil
}

func (r *listRepository) IsOwner(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	query := `SELECT count(id) > 0 FROM shopping_list WHERE id = $1 AND owner_id = $2`

	var owner bool
	if err := r.db.GetContext(ctx, &owner, query, listID, userID); err != nil {
		return false, fmt.Errorf("failed to check list ownership: %w", err)
	}

	return owner, nil
}

func (r *listRepository) HasAccess(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT count(l.id) > 0
		FROM shopping_list l
		LEFT JOIN shopping_list_share sh ON sh.shopping_list_id = l.id
		WHERE l.id = $1 AND (l.owner_id = $2 OR sh.target_user_id = $2)`

	var access bool
	if err := r.db.GetContext(ctx, &access, query, listID, userID); err != nil {
		return false, fmt.Errorf("failed to check list access: %w", err)
	}

	return access, nil
}

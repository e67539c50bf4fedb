package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/internal/repository"
)

type shareRepository struct {
	db *sqlx.DB
}

// NewShareRepository creates a new PostgreSQL share grant repository
func NewShareRepository(db *sqlx.DB) repository.ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, listID, targetUserID uuid.UUID) error {
	query := `INSERT INTO shopping_list_share (shopping_list_id, target_user_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, listID, targetUserID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create share grant: %w", err)
	}

	return nil
}

func (r *shareRepository) Delete(ctx context.Context, listID, targetUserID uuid.UUID) error {
	query := `DELETE FROM shopping_list_share WHERE shopping_list_id = $1 AND target_user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, listID, targetUserID); err != nil {
		return fmt.Errorf("failed to delete share grant: %w", err)
	}

	return nil
}

func (r *shareRepository) Exists(ctx context.Context, listID, targetUserID uuid.UUID) (bool, error) {
	query := `SELECT count(*) > 0 FROM shopping_list_share WHERE shopping_list_id = $1 AND target_user_id = $2`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, listID, targetUserID); err != nil {
		return false, fmt.Errorf("failed to check share grant: %w", err)
	}

	return exists, nil
}

func (r *shareRepository) ListByList(ctx context.Context, listID uuid.UUID) ([]domain.ShareGrant, error) {
	query := `SELECT shopping_list_id, target_user_id FROM shopping_list_share WHERE shopping_list_id = $1`

	var grants []domain.ShareGrant
	if err := r.db.SelectContext(ctx, &grants, query, listID); err != nil {
		return nil, fmt.Errorf("failed to list share grants: %w", err)
	}

	return grants, nil
}

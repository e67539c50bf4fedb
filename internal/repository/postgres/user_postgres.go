package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/internal/repository"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, password, created_at)
		VALUES (:id, :username, :email, :password, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, username, email, password, created_at FROM users WHERE id = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, email, password, created_at FROM users WHERE username = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT count(username) > 0 FROM users WHERE username = $1`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, username); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return exists, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// Search finds users by username pattern, excluding the requester. When the
// search is scoped to a list, each row carries whether that list is already
// shared with the user, and ExcludeShared drops those rows entirely.
func (r *userRepository) Search(ctx context.Context, params repository.UserSearchParams) ([]domain.UserSearchRow, int, error) {
	pattern := fmt.Sprintf("%%%s%%", params.Username)

	sharedCondition := ""
	if params.ExcludeShared {
		sharedCondition = "AND NOT (sls.target_user_id IS NOT NULL AND sls.target_user_id = u.id)"
	}

	query := fmt.Sprintf(`
		SELECT
			u.id,
			u.username,
			(sls.target_user_id IS NOT NULL AND sls.target_user_id = u.id) AS sharing
		FROM users u
		LEFT JOIN shopping_list_share sls
			ON u.id = sls.target_user_id AND sls.shopping_list_id = $3
		WHERE
			u.username ILIKE $1
			AND NOT u.id = $2
			%s
		LIMIT $4 OFFSET $5`, sharedCondition)

	countQuery := fmt.Sprintf(`
		SELECT count(u.id)
		FROM users u
		LEFT JOIN shopping_list_share sls
			ON u.id = sls.target_user_id AND sls.shopping_list_id = $3
		WHERE
			u.username ILIKE $1
			AND NOT u.id = $2
			%s`, sharedCondition)

	var rows []domain.UserSearchRow
	err := r.db.SelectContext(ctx, &rows, query, pattern, params.RequesterID, params.ForListID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search users: %w", err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, countQuery, pattern, params.RequesterID, params.ForListID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count user search: %w", err)
	}

	return rows, total, nil
}

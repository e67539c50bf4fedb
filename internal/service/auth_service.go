package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/relengar/shopping-list-server/internal/apperr"
	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/internal/repository"
	"github.com/relengar/shopping-list-server/pkg/hash"
	"github.com/relengar/shopping-list-server/pkg/sessionstore"
	"github.com/relengar/shopping-list-server/pkg/token"
)

// AuthService owns registration, login and the session lifecycle.
type AuthService struct {
	users    repository.UserRepository
	tokens   *token.Service
	sessions *sessionstore.Store
	hasher   *hash.Hasher
	logger   zerolog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *token.Service,
	sessions *sessionstore.Store,
	hasher *hash.Hasher,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		hasher:   hasher,
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=60"`
	Password string  `json:"password" validate:"required,min=8,max=128"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the login/registration reply: the subject id and the
// bearer token for the fresh session.
type TokenResponse struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`
}

// Register creates the user and logs them in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	exists, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, apperr.Conflict("User already exists")
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: s.hasher.Hash(req.Password),
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Concurrent registration can slip past the exists check; the unique
		// constraint catches it.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, apperr.Internal(err)
	}

	return s.openSession(ctx, user.ID)
}

// Login verifies the credentials and opens a new session. Unknown usernames
// and wrong passwords yield the same response so callers learn nothing about
// which was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, apperr.Internal(err)
	}

	valid, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		// A hash that no longer decodes is corrupt configuration or data,
		// not a wrong password. The caller still only sees unauthorized.
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("stored password hash is malformed")
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !valid {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	return s.openSession(ctx, user.ID)
}

// Logout revokes the presented session only. Revoking twice is harmless.
func (s *AuthService) Logout(ctx context.Context, userID, sessionID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, userID, sessionID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// DeleteAccount revokes every session of the user concurrently with the
// relational delete. Both are always attempted; if either fails the whole
// operation is reported as failed, without rolling back the other.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	var wg sync.WaitGroup
	var revokeErr, deleteErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		revokeErr = s.sessions.RevokeAll(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		deleteErr = s.users.Delete(ctx, userID)
	}()
	wg.Wait()

	if revokeErr != nil {
		return apperr.Internal(revokeErr)
	}
	if deleteErr != nil {
		return apperr.Internal(deleteErr)
	}

	return nil
}

func (s *AuthService) openSession(ctx context.Context, userID uuid.UUID) (*TokenResponse, error) {
	signed, sessionID, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.sessions.Put(ctx, userID, sessionID, signed, s.tokens.Expiry()); err != nil {
		return nil, apperr.Internal(err)
	}

	return &TokenResponse{ID: userID, Token: signed}, nil
}

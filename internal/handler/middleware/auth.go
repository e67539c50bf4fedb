package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/relengar/shopping-list-server/internal/apperr"
	"github.com/relengar/shopping-list-server/pkg/sessionstore"
	"github.com/relengar/shopping-list-server/pkg/token"
)

// Locals keys set by Auth for downstream handlers.
const (
	LocalUserID    = "user_id"
	LocalSessionID = "session_id"
)

// Auth is the request-time guard on every protected route. It extracts the
// bearer token, verifies its signature, and confirms the session is still
// live in the store with exactly the presented token. It performs one store
// read per request and caches nothing, so a revocation takes effect on the
// very next request.
func Auth(tokens *token.Service, sessions *sessionstore.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperr.InvalidToken()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return apperr.InvalidToken()
		}
		bearer := parts[1]

		claims, err := tokens.Verify(bearer)
		if err != nil {
			return apperr.InvalidToken()
		}

		userID, err := claims.UserID()
		if err != nil {
			return apperr.InvalidToken()
		}
		sessionID, err := claims.SessionUUID()
		if err != nil {
			return apperr.InvalidToken()
		}

		stored, found, err := sessions.Get(c.UserContext(), userID, sessionID)
		if err != nil {
			return apperr.Internal(err)
		}
		if !found {
			// Expired and revoked sessions are indistinguishable on purpose.
			return apperr.Unauthorized("Session expired")
		}
		if stored != bearer {
			// The slot holds a different token than the one presented.
			// Should not happen with fresh session ids per login, but is
			// checked before trusting the claims.
			return apperr.InvalidToken()
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalSessionID, sessionID)

		return c.Next()
	}
}

// UserID reads the authenticated subject set by Auth.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(LocalUserID).(uuid.UUID)
	return id
}

// SessionID reads the session id set by Auth.
func SessionID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(LocalSessionID).(uuid.UUID)
	return id
}

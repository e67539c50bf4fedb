package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The ID is assigned once at registration and
// never reused. PasswordHash holds the argon2id encoded hash, never the plain
// secret.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        *string   `db:"email" json:"email,omitempty"`
	PasswordHash string    `db:"password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// UserSearchRow is one row of a username search, with the sharing flag
// computed relative to the list the search was scoped to.
type UserSearchRow struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`
	Sharing  bool      `db:"sharing" json:"sharing"`
}

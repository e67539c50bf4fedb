package domain

import (
	"github.com/google/uuid"
)

// ShoppingList is the shared resource of the system. OwnerID is set at
// creation and never changes; access for anyone else goes through a
// ShareGrant.
type ShoppingList struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner"`
}

// ShoppingListUpdate carries a partial update; nil fields are left untouched.
type ShoppingListUpdate struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// Apply merges the non-nil fields of u into l.
func (l *ShoppingList) Apply(u *ShoppingListUpdate) {
	if u.Title != nil {
		l.Title = *u.Title
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
}

// ShareGrant gives TargetUserID read/write access to a list. It never conveys
// ownership.
type ShareGrant struct {
	ShoppingListID uuid.UUID `db:"shopping_list_id" json:"shoppingListId"`
	TargetUserID   uuid.UUID `db:"target_user_id" json:"targetUserId"`
}

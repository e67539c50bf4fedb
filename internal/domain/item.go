package domain

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Item is a single entry of a shopping list.
type Item struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Description    string         `db:"description" json:"description"`
	TotalAmount    float64        `db:"total_amount" json:"totalAmount"`
	CurrentAmount  float64        `db:"current_amount" json:"currentAmount"`
	Unit           Unit           `db:"unit" json:"unit"`
	Bought         bool           `db:"bought" json:"bought"`
	Tags           pq.StringArray `db:"tags" json:"tags"`
	ShoppingListID uuid.UUID      `db:"shopping_list_id" json:"-"`
}

// ItemUpdate carries a partial item update; nil fields are left untouched.
// Unit is validated by the handler before it gets here.
type ItemUpdate struct {
	Name          *string   `json:"name" validate:"omitempty,min=1,max=120"`
	Description   *string   `json:"description" validate:"omitempty,max=1000"`
	TotalAmount   *float64  `json:"totalAmount" validate:"omitempty,gte=0,lte=5000"`
	CurrentAmount *float64  `json:"currentAmount" validate:"omitempty,gte=0,lte=5000"`
	Unit          *string   `json:"unit"`
	Bought        *bool     `json:"bought"`
	Tags          *[]string `json:"tags"`
}

// Apply merges the non-nil fields of u into i.
func (i *Item) Apply(u *ItemUpdate) {
	if u.Name != nil {
		i.Name = *u.Name
	}
	if u.Description != nil {
		i.Description = *u.Description
	}
	if u.TotalAmount != nil {
		i.TotalAmount = *u.TotalAmount
	}
	if u.CurrentAmount != nil {
		i.CurrentAmount = *u.CurrentAmount
	}
	if u.Unit != nil {
		i.Unit = Unit(*u.Unit)
	}
	if u.Bought != nil {
		i.Bought = *u.Bought
	}
	if u.Tags != nil {
		i.Tags = pq.StringArray(*u.Tags)
	}
}

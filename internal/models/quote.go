package models

import "time"

// Quote is a memorable saying pinned to the quote wall. Anyone can add one;
// only sfeerbeheer can remove them.
type Quote struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Text      string    `json:"text" validate:"required,max=500"`
	SaidBy    string    `json:"said_by" validate:"required,max=100"`
	AddedBy   string    `json:"added_by" gorm:"type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`
}

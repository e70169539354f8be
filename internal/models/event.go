package models

import "time"

// Event represents an entry on the chapter agenda.
type Event struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"omitempty,max=1000"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"omitempty,max=200"`
	CreatedBy   string    `json:"created_by" gorm:"type:varchar(36)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

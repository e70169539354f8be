package models

import "time"

// Streak is one logged consumption ("streep"): a single drink attributed to a
// user at a point in time. Streaks are append-only; they are created on a
// quick streep and only ever deleted by an explicit admin removal, never
// mutated. The streak log is the sole source of truth for consumption
// aggregates.
type Streak struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	DrinkID   string    `json:"drink_id" gorm:"index;type:varchar(36)"`
	DrinkName string    `json:"drink_name"` // Copied at streep time
	Price     float64   `json:"price"`      // Price at streep time
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

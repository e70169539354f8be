package models

import "time"

// Order statuses. Pending orders become completed in bulk when the fry-order
// session is archived; that archive step is the only status transition.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderItem represents a single line within a fry order. Name and price are
// copied from the cart at submission time, so later menu edits do not
// retroactively change placed orders.
type OrderItem struct {
	DrinkID  string  `json:"drink_id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category,omitempty"`
}

// Order represents one member's fry order within a session.
type Order struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string      `json:"user_id" gorm:"index;type:varchar(36)"`
	UserName   string      `json:"user_name"`
	Items      []OrderItem `json:"items" gorm:"serializer:json"`
	TotalPrice float64     `json:"total_price"` // Sum of price*quantity at submission time
	Date       time.Time   `json:"date"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

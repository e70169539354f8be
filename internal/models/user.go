package models

import "gorm.io/gorm"

// Roles within the chapter. Sfeerbeheer members have admin rights over
// quotes, the agenda and the streak log.
const (
	RoleLid         = "lid"
	RoleSfeerbeheer = "sfeerbeheer"
)

// User represents a member of the chapter.
type User struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string  `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string  `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string  `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Name       string  `json:"name" validate:"omitempty,max=100"`
	Nickname   string  `json:"nickname" validate:"omitempty,max=100"`
	Role       string  `json:"role" gorm:"type:varchar(32);default:lid"`
	Balance    float64 `json:"balance"` // Running tab: streaks and fry orders add to it
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// DisplayName returns the name shown in lists and on the weekly tab:
// nickname if set, otherwise the full name, otherwise the username.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

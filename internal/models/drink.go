package models

import "gorm.io/gorm"

// Drink represents an item in the drink catalog ("dranken").
type Drink struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string  `json:"name" validate:"required,min=2,max=100"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	Category   string  `json:"category" validate:"omitempty,max=100"`
	Stock      int     `json:"stock" validate:"gte=0"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// FallbackCatalog is the hardcoded drink list substituted when the catalog
// cannot be loaded or comes back empty. Prices are fixed.
func FallbackCatalog() []Drink {
	return []Drink{
		{ID: "fallback-1", Name: "Cola", Price: 0.80, Category: "drank", Stock: 24},
		{ID: "fallback-2", Name: "Bier", Price: 1.20, Category: "drank", Stock: 24},
		{ID: "fallback-3", Name: "Water", Price: 0.50, Category: "drank", Stock: 24},
		{ID: "fallback-4", Name: "Chips", Price: 1.00, Category: "snack", Stock: 12},
		{ID: "fallback-5", Name: "Ice-Tea", Price: 0.80, Category: "drank", Stock: 24},
	}
}

package repositories

import (
	"fmt"
	"ksabeheer/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMDrinkRepository is a GORM implementation of DrinkRepository.
type GORMDrinkRepository struct {
	db *gorm.DB
}

// NewGORMDrinkRepository creates a new instance of GORMDrinkRepository.
func NewGORMDrinkRepository(db *gorm.DB) *GORMDrinkRepository {
	return &GORMDrinkRepository{
		db: db,
	}
}

// GetAll retrieves all drinks from the database, ordered by name.
func (r *GORMDrinkRepository) GetAll() ([]models.Drink, error) {
	var drinks []models.Drink
	if err := r.db.Order("name").Find(&drinks).Error; err != nil {
		return nil, fmt.Errorf("failed to get all drinks: %w", err)
	}
	return drinks, nil
}

// GetByID retrieves a single drink by its ID from the database.
func (r *GORMDrinkRepository) GetByID(id string) (*models.Drink, error) {
	var drink models.Drink
	if err := r.db.First(&drink, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("drink with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get drink by ID %s: %w", id, err)
	}
	return &drink, nil
}

// Create creates a new drink in the database.
func (r *GORMDrinkRepository) Create(drink *models.Drink) error {
	if drink.ID == "" {
		drink.ID = uuid.New().String()
	}
	if err := r.db.Create(drink).Error; err != nil {
		return fmt.Errorf("failed to create drink: %w", err)
	}
	return nil
}

// Update updates an existing drink in the database.
func (r *GORMDrinkRepository) Update(drink *models.Drink) error {
	res := r.db.Save(drink) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update drink: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("drink with ID %s not found for update", drink.ID)
	}
	return nil
}

// Delete deletes a drink by its ID from the database.
func (r *GORMDrinkRepository) Delete(id string) error {
	res := r.db.Delete(&models.Drink{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete drink: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("drink with ID %s not found for deletion", id)
	}
	return nil
}

// AdjustStock changes a drink's stock level by delta. The WHERE clause
// guards the floor in the same statement as the update, so two concurrent
// decrements of the last unit cannot both pass a stale read.
func (r *GORMDrinkRepository) AdjustStock(id string, delta int) error {
	res := r.db.Model(&models.Drink{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust stock for drink %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Drink{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to adjust stock for drink %s: %w", id, err)
		}
		if count == 0 {
			return fmt.Errorf("drink with ID %s not found for stock adjustment", id)
		}
		return fmt.Errorf("%w for drink %s", ErrInsufficientStock, id)
	}
	return nil
}

package repository

import (
	"gorm.io/gorm"

	"github.com/blogram/blogram/app/models"
)

// locationRepository implements the LocationRepository interface
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository instance
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

// Create creates a new location in the database
func (r *locationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

// GetByID retrieves a location by its ID
func (r *locationRepository) GetByID(id uint) (*models.Location, error) {
	var location models.Location
	err := r.db.First(&location, id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// ListPublished retrieves all published locations ordered by name
func (r *locationRepository) ListPublished() ([]models.Location, error) {
	var locations []models.Location
	err := r.db.Where("is_published = ?", true).Order("name").Find(&locations).Error
	return locations, err
}

// Delete removes a location; posts referencing it keep existing with a
// nulled location.
func (r *locationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Location{}, id).Error
}

package repository

import (
	"gorm.io/gorm"

	"github.com/blogram/blogram/app/models"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category in the database
func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetPublishedBySlug retrieves a published category by its slug. Hidden
// categories are indistinguishable from missing ones.
func (r *categoryRepository) GetPublishedBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ? AND is_published = ?", slug, true).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListPublished retrieves all published categories ordered by slug
func (r *categoryRepository) ListPublished() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("is_published = ?", true).Order("slug").Find(&categories).Error
	return categories, err
}

// SlugExists checks if a slug already exists
func (r *categoryRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Delete removes a category; posts referencing it keep existing with a
// nulled category.
func (r *categoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

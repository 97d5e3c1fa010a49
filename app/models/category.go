package models

import "github.com/go-playground/validator/v10"

// Category classifies posts. Deleting a category keeps its posts and nulls
// their reference.
type Category struct {
	Published
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(255)" json:"title" validate:"required,min=1,max=255"`
	Description string `gorm:"type:text" json:"description" validate:"required"`
	Slug        string `gorm:"uniqueIndex;type:varchar(255)" json:"slug" validate:"required,max=255"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

func (c *Category) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

package models

// Location marks where a post was written. Optional on posts; deleting a
// location nulls the reference instead of deleting the post.
type Location struct {
	Published
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255)" json:"name" validate:"required,max=255"`
}

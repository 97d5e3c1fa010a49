package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Comment belongs to a post and dies with it (cascade on post delete).
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text" json:"text" validate:"required,min=1"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (cm *Comment) Validate() error {
	v := validator.New()

	return v.Struct(cm)
}

// OwnerID identifies the author for mutation checks.
func (cm *Comment) OwnerID() uint {
	return cm.AuthorID
}

// RelatedPostID resolves the parent post for redirects after a denied
// mutation.
func (cm *Comment) RelatedPostID() uint {
	return cm.PostID
}

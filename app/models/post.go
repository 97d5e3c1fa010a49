package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Post is a blog entry. PubDate may lie in the future for scheduled
// publications; such posts stay hidden from everyone but their author
// until the date passes.
type Post struct {
	Published
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(255)" json:"title" validate:"required,min=1,max=255"`
	Text         string    `gorm:"type:text" json:"text" validate:"required"`
	PubDate      time.Time `json:"pub_date" validate:"required"`
	ImagePath    string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	AuthorID     uint      `gorm:"index;not null" json:"author_id"`
	Author       User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	LocationID   *uint     `gorm:"index" json:"location_id,omitempty"`
	Location     *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`
	CategoryID   *uint     `gorm:"index" json:"category_id,omitempty"`
	Category     *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	// CommentCount is filled by the feed query; it has no column.
	CommentCount int64     `gorm:"->;-:migration" json:"comment_count"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Post) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// OwnerID identifies the author for mutation checks.
func (p *Post) OwnerID() uint {
	return p.AuthorID
}

// RelatedPostID resolves the post a denied mutation should redirect to.
// For a post that is the post itself.
func (p *Post) RelatedPostID() uint {
	return p.ID
}

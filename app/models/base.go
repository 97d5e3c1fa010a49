package models

import "time"

// Published is the shared base for content that can be hidden without
// deleting it. IsPublished is a visibility flag, not a deletion marker.
type Published struct {
	IsPublished bool      `gorm:"type:tinyint(1)" json:"is_published"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

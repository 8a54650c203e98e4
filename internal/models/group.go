package models

import "gorm.io/gorm"

// Group is a named collection of posts, addressed by its URL slug.
type Group struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:50"`
	Description string `json:"description"`
}

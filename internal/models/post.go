package models

import "time"

// Post is an authored entry. The author never changes after creation and the
// creation timestamp is server-assigned. A post may optionally belong to a
// group; deleting the group detaches its posts, deleting the post removes
// its comments.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index;autoCreateTime"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	GroupID   *uint     `json:"group_id" gorm:"index"`
	Image     string    `json:"image"` // media-relative path of the attached image

	Author   User      `json:"author" gorm:"constraint:OnDelete:CASCADE"`
	Group    *Group    `json:"group,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Comments []Comment `json:"comments" gorm:"constraint:OnDelete:CASCADE"`
}

// PostForm defines the submitted fields of the post create/edit form
type PostForm struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group" validate:"omitempty,numeric"`
}

package models

import "time"

// Comment is an authored reply on a post. It is removed together with its
// parent post.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index;autoCreateTime"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`

	Post   Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Author User `json:"author" gorm:"constraint:OnDelete:CASCADE"`
}

// CommentForm defines the submitted fields of the comment form
type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

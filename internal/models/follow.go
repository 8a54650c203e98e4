package models

import "time"

// Follow is a directed edge meaning "user sees author's posts in their
// followed feed". The pair is unique and self-follows are rejected by the
// storage layer, not only by handler checks, so concurrent duplicate follow
// requests cannot produce two edges.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_author;check:prevent_self_follow,user_id <> author_id"`
	AuthorID  uint      `json:"author_id" gorm:"index;uniqueIndex:idx_user_author"`
	CreatedAt time.Time `json:"created_at"`
}

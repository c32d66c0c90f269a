package models

import "time"

// Post is immutable once recorded. The attachment URL doubles as the post
// reference delivered into follower feeds; the post itself is never copied.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Attachment string  `json:"attachment"`
	Caption    *string `json:"caption"`
	Language   string  `json:"language"`

	AuthorID string  `json:"author_id" gorm:"index"`
	Author   Account `json:"author"`
}

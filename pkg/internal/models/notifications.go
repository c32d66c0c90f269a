package models

import "time"

// Notification is one delivery event in a recipient's append-only log.
// Ordering follows the auto increment primary key, which equals the order
// the backing store accepted the writes.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	RecipientID string `json:"recipient_id" gorm:"index"`
	SourceID    string `json:"source_id"`
	SourceName  string `json:"source_name"`
}

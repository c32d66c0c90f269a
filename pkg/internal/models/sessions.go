package models

import "time"

// Session is one issued bearer token. An account may hold several at once
// (multi device); logging out removes exactly one of them, which revokes the
// matching token even before its expiry.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	ExpiredAt time.Time `json:"expired_at"`

	AccountID string  `json:"account_id" gorm:"index"`
	Account   Account `json:"account"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// Account is a registered user. The followers and following columns are the
// two sides of the social graph; they are mutated only through the graph
// store so an edge always appears in both of them or in neither.
type Account struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `json:"name"`
	Username string `json:"username" gorm:"uniqueIndex"`
	Password string `json:"-"`

	Followers datatypes.JSONSlice[string] `json:"followers"`
	Following datatypes.JSONSlice[string] `json:"following"`

	Posts []Post `json:"posts" gorm:"foreignKey:AuthorID"`
}

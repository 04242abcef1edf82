// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. The username is the natural display
// key used when serializing authors and follow targets.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Deleting a user hard-deletes their posts, comments and follow edges
	// through the FK constraints declared on those models.
	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

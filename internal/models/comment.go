package models

import "time"

// Comment belongs to exactly one post. Created is assigned once and indexed
// because per-post listings are ordered by it. Both FKs cascade: deleting the
// post or the author removes the comment.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Created   time.Time `gorm:"autoCreateTime;index" json:"created"`
	UpdatedAt time.Time `json:"updated_at"`
}

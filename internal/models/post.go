package models

import "time"

// Post represents a published entry in the blog.
//
// PubDate is assigned once at creation and never written again; the post
// repository omits it from updates. GroupID carries ON DELETE SET NULL so a
// post survives its group, while UserID cascades so posts disappear with
// their author.
type Post struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Text    string    `gorm:"type:text;not null" json:"text"`
	PubDate time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
	UserID  uint      `gorm:"not null;index" json:"author_id"`
	Author  User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	// Image is the relative path of the stored image file, empty when the
	// post has none.
	Image     string    `gorm:"size:255" json:"image,omitempty"`
	GroupID   *uint     `gorm:"index" json:"group_id,omitempty"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

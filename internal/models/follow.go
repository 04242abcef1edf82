package models

import "time"

// Follow is a one-directional subscription edge from UserID (the follower) to
// FollowingID (the target).
//
// Both invariants live in the schema, not just in application pre-checks:
// the composite unique index makes the second of two concurrent inserts for
// the same pair fail, and the CHECK constraint rejects self-follows. The
// follow repository translates those constraint violations into validation
// errors.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_follows_user_following" json:"user_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_user_following;check:chk_follows_no_self,user_id <> following_id" json:"following_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"following,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}

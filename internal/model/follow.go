package model

import "time"

// Follow 关注关系，仅供关注流排序使用
type Follow struct {
	ID         uint64 `gorm:"primaryKey"`
	FollowerID uint64 `gorm:"not null;index:idx_follower_id;uniqueIndex:uk_follower_followee"`
	FolloweeID uint64 `gorm:"not null;index:idx_followee_id;uniqueIndex:uk_follower_followee"`
	Status     int8   `gorm:"not null;default:1;comment:'1=follow,0=unfollow'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Follow) TableName() string {
	return "follow"
}

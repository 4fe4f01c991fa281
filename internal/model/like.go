package model

import "time"

// LikeTarget 点赞目标类型
type LikeTarget string

const (
	LikePost    LikeTarget = "post"
	LikeComment LikeTarget = "comment"
)

// Like 多态点赞关系，(user_id, target_type, target_id) 唯一，切换即删有插无
type Like struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement"`
	UserID     uint64     `gorm:"not null;uniqueIndex:uk_user_target"`
	TargetType LikeTarget `gorm:"size:16;not null;uniqueIndex:uk_user_target"`
	TargetID   uint64     `gorm:"not null;uniqueIndex:uk_user_target;index"`
	CreatedAt  time.Time
}

func (Like) TableName() string {
	return "likes"
}

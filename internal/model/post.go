package model

import "time"

// Post 帖子。作者名/头像在写入时快照，之后不随档案变动（读多写少的取舍）
type Post struct {
	ID       uint64 `gorm:"primaryKey"`
	SpaceID  uint64 `gorm:"not null;index:idx_space_time,priority:1"`
	AuthorID uint64 `gorm:"not null;index:idx_author_time"`
	Title    string `gorm:"size:200"`
	// Content 为编辑器结构化 JSON，ContentHTML 为渲染快照
	Content     string `gorm:"type:text"`
	ContentHTML string `gorm:"type:text"`
	// MediaRefs 上传对象 key 的 JSON 数组
	MediaRefs    string `gorm:"type:text"`
	AuthorName   string `gorm:"size:64;not null"`
	AuthorAvatar string `gorm:"size:255"`
	LikeCount    int64  `gorm:"not null;default:0"`
	CommentCount int64  `gorm:"not null;default:0"`
	PinnedAt     *time.Time
	EditedAt     *time.Time
	DeletedAt    *time.Time `gorm:"index"`
	CreatedAt    time.Time  `gorm:"index:idx_space_time,priority:2,sort:desc;index:idx_author_time"`
	UpdatedAt    time.Time
}

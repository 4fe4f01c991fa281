package model

import "time"

// Comment 评论。ParentID 只允许指向同帖的根评论（嵌套深度 ≤ 2），
// 对回复的回复在写入时被重定向到原根评论
type Comment struct {
	ID           uint64  `gorm:"primaryKey"`
	PostID       uint64  `gorm:"not null;index"`
	AuthorID     uint64  `gorm:"not null;index"`
	ParentID     *uint64 `gorm:"index"`
	Content      string  `gorm:"size:500;not null"`
	AuthorName   string  `gorm:"size:64;not null"`
	AuthorAvatar string  `gorm:"size:255"`
	LikeCount    int64   `gorm:"not null;default:0"`
	EditedAt     *time.Time
	// DeletedAt 软删：行保留以撑住子回复，内容读出时替换为删除占位
	DeletedAt *time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

package model

import "time"

// SpaceVisibility 空间可见性
type SpaceVisibility string

const (
	SpacePublic  SpaceVisibility = "public"
	SpaceMembers SpaceVisibility = "members"
	SpacePaid    SpaceVisibility = "paid"
)

// PostPermission 发帖门槛
type PostPermission string

const (
	PostByAll        PostPermission = "all"
	PostByModerators PostPermission = "moderators"
	PostByAdmin      PostPermission = "admin"
)

// Space 内容空间。Order 在任何重排后保持从 1 起连续且唯一
type Space struct {
	ID             uint64          `gorm:"primaryKey"`
	Name           string          `gorm:"size:50;not null"`
	Description    string          `gorm:"size:200"`
	Icon           string          `gorm:"size:32"`
	Visibility     SpaceVisibility `gorm:"size:16;not null;default:'public'"`
	PostPermission PostPermission  `gorm:"size:16;not null;default:'all'"`
	// RequiredTier 仅 paid 可见性使用；为空表示任意有效会员可见
	RequiredTier string     `gorm:"size:32"`
	Order        int        `gorm:"column:display_order;not null;index"`
	DeletedAt    *time.Time `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SpaceVisit 每 (user, space) 的最近访问时间，和空间最新帖时间比对得出未读标记
type SpaceVisit struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_visit_user_space"`
	SpaceID   uint64 `gorm:"not null;uniqueIndex:uk_visit_user_space"`
	VisitedAt time.Time
}

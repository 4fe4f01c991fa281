package model

import "time"

// Role 社区角色，数值即权限序：member(1) < moderator(2) < admin(3)
type Role int8

const (
	RoleMember    Role = 1
	RoleModerator Role = 2
	RoleAdmin     Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

// ProfileVisibility 主页可见性
type ProfileVisibility string

const (
	ProfilePublic  ProfileVisibility = "public"
	ProfilePrivate ProfileVisibility = "private"
)

// Profile 社区档案，按小写 email 与登录账号关联；首次解析身份时幂等创建，永不硬删
type Profile struct {
	ID          uint64            `gorm:"primaryKey"`
	Email       string            `gorm:"uniqueIndex;size:64;not null"`
	DisplayName string            `gorm:"size:64;not null"`
	Bio         string            `gorm:"size:500"`
	AvatarRef   string            `gorm:"size:255"`
	Visibility  ProfileVisibility `gorm:"size:16;not null;default:'public'"`
	Role        Role              `gorm:"not null;default:1"`
	// Points 累计积分，只由积分流水在同一事务里递增，客户端不可写
	Points       int64 `gorm:"not null;default:0"`
	NotifyOnPost bool  `gorm:"not null;default:true"`
	NotifyOnLike bool  `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MembershipStatus 付费会员状态
type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipTrialing MembershipStatus = "trialing"
	MembershipCanceled MembershipStatus = "canceled"
)

// Membership 会员记录，paid 空间的准入依据
type Membership struct {
	ID        uint64           `gorm:"primaryKey"`
	UserID    uint64           `gorm:"not null;uniqueIndex"`
	Tier      string           `gorm:"size:32;not null"`
	Status    MembershipStatus `gorm:"size:16;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

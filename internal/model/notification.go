package model

import "time"

// NotificationType 通知类型标签
type NotificationType string

const (
	NotifyNewComment NotificationType = "new_comment"
	NotifyNewReply   NotificationType = "new_reply"
	NotifyNewPost    NotificationType = "new_post"
)

// Notification 站内通知，内容事件的副产物；自己触发的动作不通知自己
type Notification struct {
	ID          uint64           `gorm:"primaryKey"`
	RecipientID uint64           `gorm:"not null;index:idx_recipient_time,priority:1"`
	Type        NotificationType `gorm:"size:32;not null"`
	ActorID     uint64           `gorm:"not null"`
	ActorName   string           `gorm:"size:64;not null"`
	// Payload 透传给客户端的 JSON
	Payload   string    `gorm:"type:json"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index:idx_recipient_time,priority:2,sort:desc"`
}

// NotificationOutbox 通知事件投递表，与通知同事务写入，由 relayer 异步推给 Kafka
type NotificationOutbox struct {
	ID             uint64 `gorm:"primaryKey"`
	NotificationID uint64 `gorm:"not null;index"`
	Payload        string `gorm:"type:json;not null"`
	Status         int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry          int    `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (NotificationOutbox) TableName() string { return "notification_outbox" }
